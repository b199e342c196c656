package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	v1 "shortmovie-about/internal/http/v1"
)

const readHeaderTimeout = 5 * time.Second

type App struct {
	log        *slog.Logger
	deps       *v1.RouterDependencies
	httpServer *http.Server
}

func New(
	log *slog.Logger,
	deps *v1.RouterDependencies,
	port string,
) *App {
	r := chi.NewRouter()

	v1.SetupRoutes(r, deps, log)

	httpServer := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	return &App{
		log:        log,
		deps:       deps,
		httpServer: httpServer,
	}
}

// Handler exposes the configured router, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

func (a *App) Run() error {
	const op = "app.rest.Run"
	a.log.With(slog.String("op", op)).Info("starting REST server", slog.String("addr", a.httpServer.Addr))
	return a.httpServer.ListenAndServe()
}

func (a *App) Stop(ctx context.Context) error {
	const op = "app.rest.Stop"
	a.log.With(slog.String("op", op)).Info("stopping REST server")
	return a.httpServer.Shutdown(ctx)
}
