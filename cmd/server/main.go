package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vanshika/fintrace/backend/internal/cache"
	"github.com/vanshika/fintrace/backend/internal/config"
	"github.com/vanshika/fintrace/backend/internal/graphexport"
	"github.com/vanshika/fintrace/backend/internal/logging"
	"github.com/vanshika/fintrace/backend/internal/metrics"
	"github.com/vanshika/fintrace/backend/internal/server"
	"github.com/vanshika/fintrace/backend/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)
	metrics.Register()

	reportCache, closeCache := buildReportCache(cfg)
	defer closeCache()

	graphClient, err := buildGraphClient(ctx, logger, cfg)
	if err != nil {
		logger.Error("graph export disabled", "error", err)
	}
	defer func() {
		if graphClient != nil {
			if err := graphClient.Close(context.Background()); err != nil {
				logger.Warn("closing graph client failed", "error", err)
			}
		}
	}()

	var opts []service.Option
	if graphClient != nil {
		opts = append(opts, service.WithExporter(graphexport.NewExporter(graphClient)))
	}
	reportService := service.NewReportService(cfg.Thresholds.Forensics(), reportCache, cfg.Cache.TTL, logger, opts...)

	apiHandlers := server.NewAPIHandlers(reportService, logger)
	router := server.NewRouter(logger, server.RouterDependencies{
		Health:         server.GraphHealthService{Client: graphClient},
		API:            apiHandlers,
		MetricsEnabled: cfg.HTTP.MetricsEnabled,
	})

	srv := server.New(logger, cfg.HTTP, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("server stopped unexpectedly", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func buildReportCache(cfg config.Config) (cache.ReportCache, func()) {
	if cfg.Cache.Addr == "" {
		return cache.NewMemoryCache(), func() {}
	}
	redisCache := cache.NewRedisCache(cfg.Cache.Addr, cfg.Cache.Password)
	return redisCache, func() { _ = redisCache.Close() }
}

func buildGraphClient(ctx context.Context, logger *slog.Logger, cfg config.Config) (graphexport.Client, error) {
	if cfg.GraphExport.URI == "" {
		return nil, nil
	}
	opts := graphexport.Options{
		URI:      cfg.GraphExport.URI,
		Database: cfg.GraphExport.Database,
		Username: cfg.GraphExport.Username,
		Password: cfg.GraphExport.Password,
	}
	client, err := graphexport.NewNeo4jClient(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger.Info("connected to graph export store", "uri", cfg.GraphExport.URI, "database", cfg.GraphExport.Database)
	return client, nil
}
