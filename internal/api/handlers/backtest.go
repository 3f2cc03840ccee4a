package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"rotation-backtest/internal/analysis"
	"rotation-backtest/internal/api/models"
	"rotation-backtest/internal/backtest"
	"rotation-backtest/internal/config"
	"rotation-backtest/internal/data"
	"rotation-backtest/internal/metrics"
	"rotation-backtest/internal/model"
	"rotation-backtest/internal/strategy"
)

const (
	sourceInline = "inline"
	sourcePreset = "preset"
)

var presetIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// BacktestHandler handles backtest-related requests
type BacktestHandler struct {
	dataDir   string
	presetDir string
	cache     *data.SeriesCache
	registry  *strategy.Registry
	log       zerolog.Logger
}

// NewBacktestHandler creates a new backtest handler. Index files are read
// from dataDir and presets from presetDir; a nil cache disables caching.
func NewBacktestHandler(dataDir, presetDir string, cache *data.SeriesCache, registry *strategy.Registry, log zerolog.Logger) *BacktestHandler {
	if registry == nil {
		registry = strategy.DefaultRegistry()
	}
	return &BacktestHandler{
		dataDir:   dataDir,
		presetDir: presetDir,
		cache:     cache,
		registry:  registry,
		log:       log,
	}
}

// RunBacktest handles POST /api/v1/backtest
func (h *BacktestHandler) RunBacktest(c *gin.Context) {
	var req models.BacktestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err, nil)
		return
	}

	params, err := runParams(req.Config)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_CONFIG", err, nil)
		return
	}
	factory, ok := h.registry.Get(req.Config.Strategy)
	if !ok {
		writeError(c, http.StatusBadRequest, "INVALID_CONFIG", fmt.Errorf("unknown strategy %q", req.Config.Strategy), nil)
		return
	}

	series, names, source, err := h.loadSeries(req.DataSource)
	if err != nil {
		h.writeLoadError(c, err)
		return
	}

	result, err := backtest.New().Run(series, factory(params.LookbackWindow), params)
	if err != nil {
		metrics.ObserveRun(source, 0, err)
		writeRunError(c, err)
		return
	}
	summary, err := analysis.Summarize(result, names)
	metrics.ObserveRun(source, result.Rotations, err)
	if err != nil {
		writeRunError(c, err)
		return
	}

	id := uuid.NewString()
	h.log.Info().
		Str("id", id).
		Str("source", source).
		Int("lookback", params.LookbackWindow).
		Int("rotations", result.Rotations).
		Float64("final_value", result.FinalValue).
		Msg("backtest completed")

	resp := models.BacktestResponse{
		ID:          id,
		Status:      "completed",
		Instruments: names,
		Params:      toRunParams(req.Config.Strategy, params),
		Summary:     buildSummary(summary, len(result.Ledger)),
	}
	if req.Options.IncludeLedger {
		resp.Ledger = convertLedger(result.Ledger)
	}
	c.JSON(http.StatusOK, resp)
}

// SweepBacktests handles POST /api/v1/backtest/sweep
func (h *BacktestHandler) SweepBacktests(c *gin.Context) {
	var req models.SweepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err, nil)
		return
	}

	base := req.BaseConfig
	if base.LookbackWindow == 0 {
		base.LookbackWindow = req.LookbackWindows[0]
	}
	params, err := runParams(base)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_CONFIG", err, nil)
		return
	}
	factory, ok := h.registry.Get(base.Strategy)
	if !ok {
		writeError(c, http.StatusBadRequest, "INVALID_CONFIG", fmt.Errorf("unknown strategy %q", base.Strategy), nil)
		return
	}

	series, names, source, err := h.loadSeries(req.DataSource)
	if err != nil {
		h.writeLoadError(c, err)
		return
	}

	ranked, err := h.sweep(c, series, req.LookbackWindows, params, factory, names, source)
	if err != nil {
		writeRunError(c, err)
		return
	}

	comparison := make([]models.ComparisonResult, len(ranked))
	for i, r := range ranked {
		comparison[i] = models.ComparisonResult{
			Rank:           r.Rank,
			LookbackWindow: r.LookbackWindow,
			Summary:        buildSummary(r.Summary, r.Observations),
		}
	}
	c.JSON(http.StatusOK, models.SweepResponse{
		ID:          uuid.NewString(),
		Instruments: names,
		Comparison:  comparison,
	})
}

type rankedSweep struct {
	analysis.RankedRun
	Observations int
}

func (h *BacktestHandler) sweep(c *gin.Context, series model.Series, windows []int, params model.RunParams, factory strategy.Factory, names model.Instruments, source string) ([]rankedSweep, error) {
	metrics.SweepWindows.Observe(float64(len(windows)))

	runs, err := backtest.Sweep(c.Request.Context(), series, windows, params, factory)
	if err != nil {
		metrics.ObserveRun(source, 0, err)
		return nil, err
	}
	ranked, err := analysis.RankByAnnualizedReturn(runs, names)
	if err != nil {
		return nil, err
	}

	observations := make(map[int]int, len(runs))
	for _, r := range runs {
		metrics.ObserveRun(source, r.Result.Rotations, nil)
		observations[r.Params.LookbackWindow] = len(r.Result.Ledger)
	}
	out := make([]rankedSweep, len(ranked))
	for i, r := range ranked {
		out[i] = rankedSweep{RankedRun: r, Observations: observations[r.LookbackWindow]}
	}
	h.log.Info().Str("source", source).Ints("windows", windows).Msg("sweep completed")
	return out, nil
}

// loadSeries resolves the request's data source into an aligned series.
func (h *BacktestHandler) loadSeries(ds models.DataSourceConfig) (model.Series, model.Instruments, string, error) {
	start, end, err := parseRange(ds.StartDate, ds.EndDate)
	if err != nil {
		return nil, model.Instruments{}, "", err
	}

	if len(ds.Observations) > 0 {
		series := model.Series(ds.Observations)
		if err := series.Validate(); err != nil {
			return nil, model.Instruments{}, "", err
		}
		return data.Truncate(series, start, end), model.Instruments{}, sourceInline, nil
	}
	if ds.Preset == "" {
		return nil, model.Instruments{}, "", errors.New("data_source needs observations or a preset")
	}

	preset, err := h.loadPreset(ds.Preset)
	if err != nil {
		return nil, model.Instruments{}, "", err
	}
	var series model.Series
	if h.cache != nil {
		series, err = h.cache.Load(h.dataDir, preset.Data, start, end)
	} else {
		series, err = data.LoadSeries(h.dataDir, preset.Data, start, end)
	}
	if err != nil {
		return nil, model.Instruments{}, "", err
	}
	return series, preset.Data.Instruments(), sourcePreset, nil
}

func (h *BacktestHandler) loadPreset(id string) (*config.Preset, error) {
	if !presetIDPattern.MatchString(id) {
		return nil, fmt.Errorf("invalid preset id %q", id)
	}
	return config.LoadPreset(filepath.Join(h.presetDir, id+".yaml"))
}

func (h *BacktestHandler) writeLoadError(c *gin.Context, err error) {
	if errors.Is(err, model.ErrMisalignedSeries) || errors.Is(err, model.ErrNonPositivePrice) {
		writeRunError(c, err)
		return
	}
	h.log.Warn().Err(err).Msg("data load failed")
	writeError(c, http.StatusBadRequest, "DATA_LOAD_ERROR", err, nil)
}

func parseRange(startStr, endStr string) (start, end time.Time, err error) {
	if startStr != "" {
		if start, err = data.ParseDate(startStr); err != nil {
			return start, end, fmt.Errorf("start_date: %w", err)
		}
	}
	if endStr != "" {
		if end, err = data.ParseDate(endStr); err != nil {
			return start, end, fmt.Errorf("end_date: %w", err)
		}
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return start, end, fmt.Errorf("end_date %s is before start_date %s", endStr, startStr)
	}
	return start, end, nil
}

func runParams(cfg models.BacktestConfig) (model.RunParams, error) {
	p := model.DefaultRunParams()
	if cfg.LookbackWindow != 0 {
		p.LookbackWindow = cfg.LookbackWindow
	}
	if cfg.InitialCapital != 0 {
		p.InitialCapital = cfg.InitialCapital
	}
	warmup, err := model.ParseWarmupPolicy(cfg.Warmup)
	if err != nil {
		return model.RunParams{}, err
	}
	p.Warmup = warmup
	if err := p.Validate(); err != nil {
		return model.RunParams{}, err
	}
	return p, nil
}

func toRunParams(name string, p model.RunParams) models.RunParams {
	if name == "" {
		name = strategy.MomentumName
	}
	return models.RunParams{
		Strategy:       name,
		LookbackWindow: p.LookbackWindow,
		InitialCapital: p.InitialCapital,
		Warmup:         string(p.Warmup),
	}
}

func buildSummary(s *analysis.Summary, observations int) models.BacktestSummary {
	return models.BacktestSummary{
		BacktestWindow: models.TimeWindow{Start: s.Start, End: s.End},
		Years:          s.Years,
		Observations:   observations,
		Rotations:      s.Rotations,
		Strategy:       convertPerformance(s.Strategy),
		ShortBaseline:  convertPerformance(s.Short),
		LongBaseline:   convertPerformance(s.Long),
	}
}

func convertPerformance(p analysis.Performance) models.Performance {
	return models.Performance{
		Name:             p.Name,
		FinalValue:       p.FinalValue,
		TotalReturn:      p.TotalReturn,
		AnnualizedReturn: p.AnnualizedReturn,
	}
}

func convertLedger(ledger []backtest.LedgerRow) []models.LedgerRow {
	out := make([]models.LedgerRow, len(ledger))
	for i, row := range ledger {
		out[i] = models.LedgerRow{
			Index:       row.Index,
			Date:        row.Date.Format(dateLayout),
			SignalValue: row.SignalValue,
			ShortPrice:  row.ShortPrice,
			LongPrice:   row.LongPrice,
			Signal:      string(row.Regime),
			Held:        string(row.Held),
			Rotated:     row.Rotated,
			Units:       row.Units,
			Value:       row.Value,
		}
	}
	return out
}
