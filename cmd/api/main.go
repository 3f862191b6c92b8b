package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ota-rewards/internal/cart"
	"ota-rewards/internal/config"
	"ota-rewards/internal/database"
	"ota-rewards/internal/handler"
	"ota-rewards/internal/repository"
	"ota-rewards/internal/router"
	"ota-rewards/internal/seed"
	"ota-rewards/internal/service"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().
		Str("backend", cfg.Store.Backend).
		Msg("starting ota-rewards API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fixture, err := seed.LoadAll(ctx, seedLoader(ctx, cfg, logger), cfg.Store.SeedFiles, seed.Default(), logger)
	if err != nil {
		return fmt.Errorf("failed to load seed data: %w", err)
	}

	var repos repository.Repositories
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer pool.Close()

		if err := repository.Bootstrap(ctx, pool, fixture, logger); err != nil {
			return fmt.Errorf("failed to bootstrap database: %w", err)
		}
		repos = repository.NewPostgresRepositories(pool, logger)
	default:
		repos = repository.NewMemoryStore(fixture, logger).Repositories()
	}

	delayer := service.NoDelay()
	if cfg.Latency.Enabled {
		delayer = service.NewFixedDelayer(service.DefaultLatencies(), cfg.Latency.Scale)
	}
	gate := service.NewWriteGate(cfg.Store.SerializeWrites)
	opts := service.Options{
		Delayer:       delayer,
		Gate:          gate,
		VerifyCatalog: cfg.Store.VerifyPurchases,
	}
	logger.Info().
		Bool("latency", cfg.Latency.Enabled).
		Bool("serialize_writes", gate.Enabled()).
		Bool("verify_purchases", opts.VerifyCatalog).
		Msg("store options configured")

	rewardService := service.NewRewardService(repos, opts, logger)
	addOnService := service.NewAddOnService(repos, opts, logger)
	cartService := service.NewCartService(cart.NewSessions(), addOnService, logger)

	mux := router.New(router.Handlers{
		Rewards: handler.NewRewardHandler(rewardService, logger),
		AddOns:  handler.NewAddOnHandler(addOnService, logger),
		Cart:    handler.NewCartHandler(cartService, logger),
	}, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// seedLoader reads seed fixtures from S3 with a local fallback when S3 is
// enabled, and from the local file system otherwise.
func seedLoader(ctx context.Context, cfg *config.Config, logger zerolog.Logger) seed.Loader {
	fileLoader := seed.NewFileLoader(logger)
	if !cfg.S3.Enabled {
		logger.Info().Msg("using local file system for seed files (S3 disabled)")
		return fileLoader
	}

	s3Loader, err := seed.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 loader, falling back to local file system only")
		return fileLoader
	}

	return seed.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, logger)
}
