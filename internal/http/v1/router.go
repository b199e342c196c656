package v1

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"shortmovie-about/internal/http/v1/handler"
	"shortmovie-about/internal/http/v1/middleware"
	"shortmovie-about/internal/http/v1/router"
)

type Router interface {
	SetupRoutes(r chi.Router)
}

type RouterDependencies struct {
	MemberService handler.MemberService
	NewPage       handler.PageFactory
	NewNoise      handler.NoiseFactory
	RenderTimeout time.Duration
	AssetsDir     string
}

func SetupRoutes(r chi.Router, deps *RouterDependencies, log *slog.Logger) {
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS())

	routers := []Router{
		router.NewMemberRouter(deps.MemberService, log),
		router.NewAboutRouter(deps.NewPage, deps.NewNoise, deps.MemberService, deps.RenderTimeout, log),
		router.NewAssetsRouter(deps.AssetsDir),
	}

	for _, serviceRouter := range routers {
		serviceRouter.SetupRoutes(r)
	}
}
