package models

import "rotation-backtest/internal/model"

// BacktestRequest represents the request body for running a backtest
type BacktestRequest struct {
	DataSource DataSourceConfig `json:"data_source" binding:"required"`
	Config     BacktestConfig   `json:"config"`
	Options    BacktestOptions  `json:"options,omitempty"`
}

// DataSourceConfig selects the input series. Inline observations win over a
// server-side preset.
type DataSourceConfig struct {
	Preset       string              `json:"preset,omitempty"`
	Observations []model.Observation `json:"observations,omitempty"`
	StartDate    string              `json:"start_date,omitempty"` // YYYY-MM-DD, inclusive
	EndDate      string              `json:"end_date,omitempty"`   // YYYY-MM-DD, inclusive
}

// BacktestConfig carries per-run parameters. Zero values take the defaults.
type BacktestConfig struct {
	Strategy       string  `json:"strategy,omitempty"`
	LookbackWindow int     `json:"lookback_window,omitempty"`
	InitialCapital float64 `json:"initial_capital,omitempty"`
	Warmup         string  `json:"warmup,omitempty"`
}

// BacktestOptions contains optional backtest parameters
type BacktestOptions struct {
	IncludeLedger bool `json:"include_ledger,omitempty"`
}

// SweepRequest runs the same data through several lookback windows.
type SweepRequest struct {
	DataSource      DataSourceConfig `json:"data_source" binding:"required"`
	BaseConfig      BacktestConfig   `json:"base_config"`
	LookbackWindows []int            `json:"lookback_windows" binding:"required,min=1,max=64,dive,min=1"`
}

// RankRequest ranks lookback windows over a preset, from query parameters.
type RankRequest struct {
	Preset    string  `form:"preset" binding:"required"`
	Windows   string  `form:"windows" binding:"required"` // comma-separated
	StartDate string  `form:"start_date"`
	EndDate   string  `form:"end_date"`
	Capital   float64 `form:"initial_capital"`
	Warmup    string  `form:"warmup"`
	Limit     int     `form:"limit"` // default: all
}
