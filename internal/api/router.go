// Package api wires the HTTP handlers into a gin router.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"rotation-backtest/internal/api/handlers"
	"rotation-backtest/internal/api/middleware"
	"rotation-backtest/internal/data"
	"rotation-backtest/internal/metrics"
	"rotation-backtest/internal/strategy"
)

type Options struct {
	DataDir     string
	PresetDir   string
	CORSOrigins []string
	Cache       *data.SeriesCache
	Logger      zerolog.Logger
}

func NewRouter(opt Options) *gin.Engine {
	router := gin.New()
	router.Use(middleware.CORS(opt.CORSOrigins))
	router.Use(middleware.Logger(opt.Logger))
	router.Use(middleware.ErrorHandler(opt.Logger))

	registry := strategy.DefaultRegistry()
	backtestHandler := handlers.NewBacktestHandler(opt.DataDir, opt.PresetDir, opt.Cache, registry, opt.Logger)
	strategyHandler := handlers.NewStrategyHandler(registry)
	presetHandler := handlers.NewPresetHandler(opt.PresetDir, opt.Logger)
	datasetHandler := handlers.NewDatasetHandler(opt.DataDir)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/backtest", backtestHandler.RunBacktest)
		v1.POST("/backtest/sweep", backtestHandler.SweepBacktests)
		v1.GET("/rank", backtestHandler.RankWindows)

		v1.GET("/strategies", strategyHandler.ListStrategies)
		v1.GET("/presets", presetHandler.ListPresets)
		v1.GET("/datasets", datasetHandler.ListDatasets)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
	})
	return router
}
