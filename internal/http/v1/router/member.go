package router

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"shortmovie-about/internal/http/v1/handler"
)

type MemberRouter struct {
	handler *handler.MemberHandler
}

func NewMemberRouter(memberService handler.MemberService, log *slog.Logger) *MemberRouter {
	return &MemberRouter{
		handler: handler.NewMemberHandler(memberService, log),
	}
}

func (mr *MemberRouter) SetupRoutes(r chi.Router) {
	r.Get("/ping", mr.handler.Ping)

	r.Route("/api/members", func(r chi.Router) {
		r.Get("/", mr.handler.ListMembers)
		r.Get("/{id}", mr.handler.GetMember)
	})
}
