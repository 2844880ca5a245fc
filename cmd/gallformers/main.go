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

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/gallformers/internal/config"
	"github.com/kailas-cloud/gallformers/internal/db/driver"
	"github.com/kailas-cloud/gallformers/internal/domain/glossary/linker"
	"github.com/kailas-cloud/gallformers/internal/domain/search/request"
	logpkg "github.com/kailas-cloud/gallformers/internal/logger"
	"github.com/kailas-cloud/gallformers/internal/metrics"
	gallrepo "github.com/kailas-cloud/gallformers/internal/repository/gall"
	glossrepo "github.com/kailas-cloud/gallformers/internal/repository/glossary"
	"github.com/kailas-cloud/gallformers/internal/repository/glosscache"
	chiTransport "github.com/kailas-cloud/gallformers/internal/transport/chi"
	galluc "github.com/kailas-cloud/gallformers/internal/usecase/gall"
	glossaryuc "github.com/kailas-cloud/gallformers/internal/usecase/glossary"
	healthuc "github.com/kailas-cloud/gallformers/internal/usecase/health"
	searchuc "github.com/kailas-cloud/gallformers/internal/usecase/search"
	"github.com/kailas-cloud/gallformers/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting gallformers API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	store, err := driver.Open(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register domain metrics explicitly (no init())
	metrics.RegisterDomainMetrics()

	// Repositories
	glossRepo := glossrepo.New(store, cfg.Storage.KeyPrefix)
	gallRepo := gallrepo.New(store, cfg.Storage.KeyPrefix)
	snapshot := glosscache.New(glossRepo, cfg.Glossary.CacheTTL(), metrics.GlossaryCacheTotal, logger)

	// Use cases
	glossSvc := glossaryuc.New(glossRepo, snapshot, linker.Default, logger)
	gallSvc := galluc.New(gallRepo, glossSvc)
	searchSvc := searchuc.New(gallRepo)
	healthSvc := healthuc.New(store, snapshot)

	server := chiTransport.NewServer(
		glossSvc, gallSvc, searchSvc, healthSvc,
		request.Limits{Default: cfg.Search.DefaultLimit, Max: cfg.Search.MaxLimit},
		logger,
	)

	var limiter *chiTransport.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = chiTransport.NewRateLimiter(
			cfg.RateLimit.RPS, cfg.RateLimit.Burst, time.Duration(cfg.RateLimit.IdleSec)*time.Second,
		)
	}

	r := chi.NewRouter()
	r.Use(chiTransport.JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.WideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Register(r, chiTransport.RouteOptions{APIKeys: cfg.Auth.APIKeys, Limiter: limiter})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
