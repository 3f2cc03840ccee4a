package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"rotation-backtest/internal/api/models"
	"rotation-backtest/internal/strategy"
)

// RankWindows handles GET /api/v1/rank
func (h *BacktestHandler) RankWindows(c *gin.Context) {
	var req models.RankRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err, nil)
		return
	}

	windows, err := parseWindows(req.Windows)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err, nil)
		return
	}
	params, err := runParams(models.BacktestConfig{
		LookbackWindow: windows[0],
		InitialCapital: req.Capital,
		Warmup:         req.Warmup,
	})
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_CONFIG", err, nil)
		return
	}
	factory, _ := h.registry.Get(strategy.MomentumName)

	series, names, source, err := h.loadSeries(models.DataSourceConfig{
		Preset:    req.Preset,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		h.writeLoadError(c, err)
		return
	}

	ranked, err := h.sweep(c, series, windows, params, factory, names, source)
	if err != nil {
		writeRunError(c, err)
		return
	}

	limit := req.Limit
	if limit <= 0 || limit > len(ranked) {
		limit = len(ranked)
	}
	rankings := make([]models.Ranking, limit)
	for i, r := range ranked[:limit] {
		rankings[i] = models.Ranking{
			Rank:             r.Rank,
			LookbackWindow:   r.LookbackWindow,
			Rotations:        r.Summary.Rotations,
			FinalValue:       r.Summary.Strategy.FinalValue,
			AnnualizedReturn: r.Summary.Strategy.AnnualizedReturn,
		}
	}
	c.JSON(http.StatusOK, models.RankResponse{Preset: req.Preset, Rankings: rankings})
}

// parseWindows parses a comma-separated list of lookback windows.
func parseWindows(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		w, err := strconv.Atoi(part)
		if err != nil || w < 1 {
			return nil, fmt.Errorf("invalid lookback window %q", part)
		}
		out = append(out, w)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no lookback windows")
	}
	return out, nil
}
