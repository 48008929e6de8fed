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

	"basket-backtest/internal/api"
	"basket-backtest/internal/config"
	"basket-backtest/internal/data"
	"basket-backtest/internal/logging"
	"basket-backtest/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.MustNew(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rec := metrics.New(prometheus.DefaultRegisterer)

	var cache *data.SeriesCache
	if cfg.EnableSeriesCache {
		cache = data.NewSeriesCache(cfg.SeriesCacheTTL)
		go cache.Run(ctx, cfg.SeriesCacheTTL)
		logger.Info().Dur("ttl", cfg.SeriesCacheTTL).Msg("series cache enabled")
	}
	loader := data.NewLoader(cache, logger)
	loader.Observer = rec

	if wd, err := os.Getwd(); err == nil {
		logger.Info().
			Str("working_directory", wd).
			Str("asset_dir", cfg.AssetDir).
			Str("data_dir", cfg.DataDir).
			Msg("resolved directories")
	}

	router := api.NewRouter(api.Options{
		Loader:         loader,
		Metrics:        rec,
		Gatherer:       prometheus.DefaultGatherer,
		Logger:         logger,
		AssetDir:       cfg.AssetDir,
		DataDir:        cfg.DataDir,
		StaticDir:      cfg.StaticDir,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("starting API server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
