package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"basket-backtest/internal/api/handlers"
	"basket-backtest/internal/api/middleware"
	"basket-backtest/internal/data"
	"basket-backtest/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Options carries the router's dependencies.
type Options struct {
	Loader         *data.Loader
	Metrics        *metrics.Recorder
	Gatherer       prometheus.Gatherer
	Logger         zerolog.Logger
	AssetDir       string
	DataDir        string
	StaticDir      string
	AllowedOrigins []string
}

// NewRouter wires middleware, API routes and, when StaticDir exists, the SPA.
func NewRouter(opts Options) *gin.Engine {
	router := gin.New()

	router.Use(middleware.ErrorHandler(opts.Logger))
	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(middleware.Logger(opts.Logger))
	router.Use(middleware.Metrics(opts.Metrics))

	assetHandler := handlers.NewAssetHandler(opts.AssetDir, opts.Logger)
	backtestHandler := handlers.NewBacktestHandler(opts.Loader, assetHandler, opts.Metrics, opts.DataDir, opts.Logger)
	strategyHandler := handlers.NewStrategyHandler()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := router.Group("/api/v1")
	{
		api.POST("/backtest", backtestHandler.RunBacktest)
		api.POST("/backtest/chart", backtestHandler.RenderChart)

		api.GET("/assets", assetHandler.ListAssets)
		api.GET("/assets/:id", assetHandler.GetAsset)
		api.GET("/strategies", strategyHandler.ListStrategies)
	}

	serveStatic(router, opts.StaticDir, opts.Logger)
	return router
}

func serveStatic(router *gin.Engine, staticDir string, logger zerolog.Logger) {
	if staticDir == "" {
		router.NoRoute(middleware.NotFound)
		return
	}
	if _, err := os.Stat(staticDir); err != nil {
		logger.Info().Str("dir", staticDir).Msg("static directory not found, skipping static file serving")
		router.NoRoute(middleware.NotFound)
		return
	}

	router.Static("/assets", filepath.Join(staticDir, "assets"))
	router.StaticFile("/favicon.ico", filepath.Join(staticDir, "favicon.ico"))

	// Serve index.html for all non-API routes (SPA routing)
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			middleware.NotFound(c)
			return
		}
		c.File(filepath.Join(staticDir, "index.html"))
	})
	logger.Info().Str("dir", staticDir).Msg("serving static files")
}
