package router

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"

	"shortmovie-about/internal/http/v1/handler"
)

type AboutRouter struct {
	handler *handler.AboutHandler
}

func NewAboutRouter(
	newPage handler.PageFactory,
	newNoise handler.NoiseFactory,
	memberService handler.MemberService,
	renderTimeout time.Duration,
	log *slog.Logger,
) *AboutRouter {
	return &AboutRouter{
		handler: handler.NewAboutHandler(newPage, newNoise, memberService, renderTimeout, log),
	}
}

func (ar *AboutRouter) SetupRoutes(r chi.Router) {
	r.Route("/about", func(r chi.Router) {
		r.Get("/", ar.handler.About)
		r.Get("/noise", ar.handler.Noise)
		r.Get("/members/{id}/instagram", ar.handler.Instagram)
	})
}
