package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/dashgames/scrambledash/internal/api"
	"github.com/dashgames/scrambledash/internal/config"
	"github.com/dashgames/scrambledash/internal/factory"
	"github.com/dashgames/scrambledash/internal/model"
	redisstorage "github.com/dashgames/scrambledash/internal/storage/redis"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// .env is optional; the environment itself wins
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	factoryCfg := factory.Config{
		CatalogPath:   cfg.CatalogPath,
		AdminPassword: cfg.AdminPassword,
		Logger:        logger,
		StorageType:   cfg.StorageType,
		SQLitePath:    cfg.SQLitePath,
	}
	if cfg.StorageType == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.AdminPassword == "" {
		logger.Warn("ADMIN_PASSWORD not set, admin surface disabled")
	}

	// Load the acronym catalog: file first, stored copy as fallback
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := app.CatalogService.LoadFromFile(ctx, cfg.CatalogPath); err != nil {
		logger.Warn("could not load catalog from file, trying storage",
			slog.String("path", cfg.CatalogPath),
			slog.String("error", err.Error()),
		)
		if err := app.CatalogService.LoadFromStorage(ctx); err != nil {
			if !errors.Is(err, model.ErrCatalogNotLoaded) {
				logger.Error("failed to load catalog", slog.String("error", err.Error()))
				os.Exit(1)
			}
			logger.Warn("no catalog available, rounds cannot start")
		}
	}
	logger.Info("catalog ready", slog.Int("entries", app.CatalogService.Len()))

	// Background loops: round transitions and the leaderboard snapshot
	go app.RoundController.Run(ctx)
	defer app.RoundController.Close()

	app.LeaderboardPoller.Start(ctx)
	defer app.LeaderboardPoller.Stop()

	router := api.NewRouter(api.RouterConfig{
		Logger:             logger,
		Clock:              app.Clock,
		AuthService:        app.AuthService,
		IdentityService:    app.IdentityService,
		GateService:        app.GateService,
		LeaderboardService: app.LeaderboardService,
		LeaderboardPoller:  app.LeaderboardPoller,
		RoundController:    app.RoundController,
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Port = cfg.Port
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
