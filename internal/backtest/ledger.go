package backtest

import (
	"time"

	"rotation-backtest/internal/model"
)

// LedgerRow is one row of per-date output.
// This is the primary artifact for "what happened" in a backtest.
type LedgerRow struct {
	Index int
	Date  time.Time

	SignalValue float64
	ShortPrice  float64
	LongPrice   float64

	// Regime is what the resolved signal asked for; Held is what the
	// portfolio actually holds after this row's decision.
	Regime  model.Regime
	Held    model.Regime
	Rotated bool

	Units float64
	Value float64
}

// Result is produced once per run and not mutated afterwards.
type Result struct {
	InitialCapital float64
	FinalValue     float64
	Rotations      int
	Ledger         []LedgerRow
}

// PortfolioValues returns the (date, value) series.
func (r *Result) PortfolioValues() []model.Point {
	out := make([]model.Point, len(r.Ledger))
	for i, row := range r.Ledger {
		out[i] = model.Point{Date: row.Date, Value: row.Value}
	}
	return out
}

// Regimes returns the held-regime trace, one entry per ledger row.
func (r *Result) Regimes() []model.Regime {
	out := make([]model.Regime, len(r.Ledger))
	for i, row := range r.Ledger {
		out[i] = row.Held
	}
	return out
}

// Series rebuilds the simulated window of input rows.
func (r *Result) Series() model.Series {
	out := make(model.Series, len(r.Ledger))
	for i, row := range r.Ledger {
		out[i] = model.Observation{Date: row.Date, Signal: row.SignalValue, Short: row.ShortPrice, Long: row.LongPrice}
	}
	return out
}
