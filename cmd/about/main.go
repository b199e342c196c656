package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"shortmovie-about/internal/app"
	"shortmovie-about/internal/config"
	"shortmovie-about/internal/lib/logger/sl"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg)
	log.Info("starting about service", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application := app.MustNew(log, cfg)

	go application.MustRun()

	<-ctx.Done()

	if err := application.GracefulShutdown(); err != nil {
		log.Error("shutdown finished with errors", sl.Err(err))
		os.Exit(1)
	}

	log.Info("application stopped")
}

func setupLogger(cfg *config.Config) *slog.Logger {
	if cfg.IsProd() {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
