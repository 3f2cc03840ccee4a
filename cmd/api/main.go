package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"rotation-backtest/internal/api"
	"rotation-backtest/internal/data"
	"rotation-backtest/internal/util"
)

func main() {
	_ = godotenv.Load()

	log := util.NewLogger(getenv("LOG_LEVEL", "info"))

	port := getenv("API_PORT", "8080")
	dataDir := getenv("ROTATION_DATA_DIR", "files")
	presetDir := getenv("PRESET_DIR", "examples/presets")

	if info, err := os.Stat(dataDir); err != nil || !info.IsDir() {
		log.Warn().Str("dir", dataDir).Err(err).Msg("data directory not found")
	}
	if info, err := os.Stat(presetDir); err != nil || !info.IsDir() {
		log.Warn().Str("dir", presetDir).Err(err).Msg("preset directory not found")
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ttl := 10 * time.Minute
	if v := os.Getenv("SERIES_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Fatal().Err(err).Str("value", v).Msg("invalid SERIES_CACHE_TTL")
		}
		ttl = d
	}
	cache := data.NewSeriesCache(ttl)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		t := time.NewTicker(ttl)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if n := cache.Prune(); n > 0 {
					log.Debug().Int("evicted", n).Msg("series cache pruned")
				}
			}
		}
	}()

	router := api.NewRouter(api.Options{
		DataDir:     dataDir,
		PresetDir:   presetDir,
		CORSOrigins: splitList(os.Getenv("CORS_ORIGINS")),
		Cache:       cache,
		Logger:      log,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	log.Info().
		Str("addr", srv.Addr).
		Str("data_dir", dataDir).
		Str("preset_dir", presetDir).
		Dur("cache_ttl", ttl).
		Msg("starting API server")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("failed to start server")
	}
	log.Info().Msg("server stopped")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
