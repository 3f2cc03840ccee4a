package models

import (
	"time"

	"rotation-backtest/internal/model"
)

// BacktestResponse represents the response from a backtest run
type BacktestResponse struct {
	ID          string            `json:"id,omitempty"`
	Status      string            `json:"status"`
	Instruments model.Instruments `json:"instruments"`
	Params      RunParams         `json:"params"`
	Summary     BacktestSummary   `json:"summary"`
	Ledger      []LedgerRow       `json:"ledger,omitempty"`
}

type RunParams struct {
	Strategy       string  `json:"strategy"`
	LookbackWindow int     `json:"lookback_window"`
	InitialCapital float64 `json:"initial_capital"`
	Warmup         string  `json:"warmup"`
}

// BacktestSummary contains aggregated backtest results
type BacktestSummary struct {
	BacktestWindow TimeWindow  `json:"backtest_window"`
	Years          float64     `json:"years"`
	Observations   int         `json:"observations"`
	Rotations      int         `json:"rotations"`
	Strategy       Performance `json:"strategy"`
	ShortBaseline  Performance `json:"short_baseline"`
	LongBaseline   Performance `json:"long_baseline"`
}

// TimeWindow represents a time range
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type Performance struct {
	Name             string  `json:"name"`
	FinalValue       float64 `json:"final_value"`
	TotalReturn      float64 `json:"total_return"`
	AnnualizedReturn float64 `json:"annualized_return"`
}

// LedgerRow represents one simulated day
type LedgerRow struct {
	Index       int     `json:"index"`
	Date        string  `json:"date"`
	SignalValue float64 `json:"signal_value"`
	ShortPrice  float64 `json:"short_price"`
	LongPrice   float64 `json:"long_price"`
	Signal      string  `json:"signal"`
	Held        string  `json:"held"`
	Rotated     bool    `json:"rotated"`
	Units       float64 `json:"units"`
	Value       float64 `json:"value"`
}

// SweepResponse lists sweep runs, best annualised return first.
type SweepResponse struct {
	ID          string             `json:"id,omitempty"`
	Instruments model.Instruments  `json:"instruments"`
	Comparison  []ComparisonResult `json:"comparison"`
}

// ComparisonResult contains results for one lookback window
type ComparisonResult struct {
	Rank           int             `json:"rank"`
	LookbackWindow int             `json:"lookback_window"`
	Summary        BacktestSummary `json:"summary"`
}

// RankResponse represents the response from ranking lookback windows
type RankResponse struct {
	Preset   string    `json:"preset"`
	Rankings []Ranking `json:"rankings"`
}

type Ranking struct {
	Rank             int     `json:"rank"`
	LookbackWindow   int     `json:"lookback_window"`
	Rotations        int     `json:"rotations"`
	FinalValue       float64 `json:"final_value"`
	AnnualizedReturn float64 `json:"annualized_return"`
}

// PresetInfo represents information about an instruments preset
type PresetInfo struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Instruments model.Instruments `json:"instruments"`
}

// StrategyInfo represents information about a strategy
type StrategyInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a strategy parameter
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "float", "int", "string"
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
}

// DatasetInfo describes one index file under the data directory
type DatasetInfo struct {
	ID           string    `json:"id"`
	File         string    `json:"file"`
	Observations int       `json:"observations"`
	FirstDate    time.Time `json:"first_date"`
	LastDate     time.Time `json:"last_date"`
	Error        string    `json:"error,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
