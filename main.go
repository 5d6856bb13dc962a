package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"quickgfe/config"
	httpLayer "quickgfe/http"
	"quickgfe/observability"
	"quickgfe/repository"
	"quickgfe/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("quickgfe exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	logger := observability.NewLogger(observability.LogConfig{Level: cfg.LogLevel, Format: cfg.LogFormat})
	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)

	defaults, err := service.LoadDefaultsFile(cfg.ProgramDefaultsFile)
	if err != nil {
		return err
	}

	var (
		cache  repository.CacheRepository
		health httpLayer.HealthChecker
	)
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisCache, err := repository.NewRedisCache(ctx, cfg.RedisURL)
		cancel()
		if err != nil {
			return err
		}
		defer redisCache.Close()
		cache, health = redisCache, redisCache
		logger.Info("quote cache: redis")
	} else {
		memoryCache := repository.NewMemoryCache()
		defer memoryCache.Stop()
		cache = memoryCache
		logger.Info("quote cache: in-memory")
	}

	quotes := service.NewQuoteService(defaults,
		service.WithCache(cache, cfg.QuoteCacheTTL),
		service.WithMetrics(metrics),
		service.WithLogger(logger),
	)
	leads := service.NewLeadService(repository.NewLeadRepositoryMemory(), metrics, logger)
	rates := service.NewRateComparisonService()

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Refill)
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(httpLayer.RouterConfig{
		Logger:      logger,
		Metrics:     metrics,
		RateLimiter: rateLimiter,
		Quotes:      httpLayer.NewQuoteHandler(quotes, logger),
		Leads:       httpLayer.NewLeadHandler(leads, logger),
		Programs:    httpLayer.NewProgramHandler(defaults, logger),
		Rates:       httpLayer.NewRateComparisonHandler(rates, logger),
		Health:      health,

		TrustProxyHeaders: cfg.HTTP.TrustProxyHeaders,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("quickgfe listening", "addr", cfg.HTTP.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case <-quit:
		logger.Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", "error", err)
	}

	logger.Info("server exited")
	return nil
}
