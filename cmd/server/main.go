package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/econbrief/econbrief/internal/api"
	"github.com/econbrief/econbrief/internal/app"
	"github.com/econbrief/econbrief/internal/config"
	"github.com/econbrief/econbrief/internal/database"
	"github.com/econbrief/econbrief/internal/logging"
	"github.com/econbrief/econbrief/internal/server"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to load .env", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to init logger", "error", err)
		os.Exit(1)
	}

	logger.Info("starting econbrief", "version", app.Version)

	ctx := context.Background()
	a, err := app.Build(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	countries := api.NewCountryHandler(a.Countries, a.Provider, a.Summarizer, logger)
	ops := api.NewOpsHandler(func(ctx context.Context) error {
		return database.HealthCheck(ctx, a.DB)
	}, a.InferenceLogs, app.Version, logger)

	srv := server.New(cfg.Server, logger, api.NewRouter(countries, ops, a.Metrics, logger))

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(runCtx); err != nil {
		logger.Error("server error", "error", err)
		return
	}
	logger.Info("shutdown complete", "db", database.Stats(a.DB))
}
