package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-multierror"

	"shortmovie-about/internal/app/rest"
	"shortmovie-about/internal/config"
	v1 "shortmovie-about/internal/http/v1"
	"shortmovie-about/internal/lib/logger/sl"
	"shortmovie-about/internal/lib/migrator"
	"shortmovie-about/internal/noise"
	"shortmovie-about/internal/page"
	"shortmovie-about/internal/repo"
	"shortmovie-about/internal/roster"
	"shortmovie-about/internal/service"
	"shortmovie-about/internal/storage/postgresql"
)

type App struct {
	log             *slog.Logger
	storage         *postgresql.Storage
	restApp         *rest.App
	shutdownTimeout time.Duration
}

func MustNew(log *slog.Logger, cfg *config.Config) *App {
	if err := migrator.RunMigrations(cfg.Postgres, log); err != nil {
		log.Error("failed to run migrations", sl.Err(err))
		panic(err)
	}

	storage := postgresql.Init(cfg.Postgres)

	memberRepo := repo.NewMemberRepo(storage.GetDB())
	memberService := service.NewMemberService(log, memberRepo)

	return &App{
		log:             log,
		storage:         storage,
		restApp:         rest.New(log, NewRouterDependencies(log, cfg, memberService), cfg.Server.Port),
		shutdownTimeout: cfg.Server.ShutdownTimeout,
	}
}

// NewRouterDependencies builds the page and noise factories around the
// given member service. Each About render gets a fresh page and generator.
func NewRouterDependencies(log *slog.Logger, cfg *config.Config, memberService *service.MemberService) *v1.RouterDependencies {
	loader := roster.NewLoader(log, cfg.Roster.Endpoint, cfg.Roster.Timeout)
	images := page.NewHTTPImageServer(cfg.ImageBaseURL, cfg.Roster.Timeout)

	newNoise := func() *noise.Generator {
		return noise.New(cfg.Noise.Points, cfg.Noise.Interval)
	}

	return &v1.RouterDependencies{
		MemberService: memberService,
		NewPage: func() *page.Page {
			return page.New(log, loader, images, newNoise())
		},
		NewNoise:      newNoise,
		RenderTimeout: cfg.Server.Timeout,
		AssetsDir:     cfg.AssetsDir,
	}
}

func (a *App) MustRun() {
	const op = "app.MustRun"
	a.log.With(slog.String("op", op)).Info("starting application")

	if err := a.restApp.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	}
}

func (a *App) GracefulShutdown() error {
	const op = "app.GracefulShutdown"

	log := a.log.With(slog.String("op", op))
	log.Info("shutting down application")

	ctx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	var result *multierror.Error

	if err := a.restApp.Stop(ctx); err != nil {
		result = multierror.Append(result, fmt.Errorf("%s: failed to stop HTTP server: %w", op, err))
	}

	if a.storage != nil {
		if err := a.storage.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: failed to close database: %w", op, err))
		} else {
			log.Info("database connection closed")
		}
	}

	return result.ErrorOrNil()
}
