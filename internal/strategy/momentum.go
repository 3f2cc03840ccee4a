package strategy

import (
	"fmt"
	"math"

	"rotation-backtest/internal/model"
)

const MomentumName = "momentum"

// Momentum goes LONG when the signal-source index rose over the trailing
// Lookback observations and SHORT otherwise:
//
//	trend(t) = source[t] / source[t-Lookback] - 1
//	signal(t) = LONG if trend(t) > 0 else SHORT
//
// Lookback counts observations (trading days), not calendar days.
// Rows t < Lookback get SignalUndefined.
type Momentum struct {
	Lookback int
}

func NewMomentum(lookback int) *Momentum {
	return &Momentum{Lookback: lookback}
}

func (m *Momentum) Name() string { return MomentumName }

func (m *Momentum) Signals(series model.Series) ([]model.Signal, error) {
	if m.Lookback < 1 {
		return nil, fmt.Errorf("lookback window must be >= 1, got %d", m.Lookback)
	}
	if len(series) < m.Lookback+1 {
		return nil, &model.InsufficientDataError{Have: len(series), Need: m.Lookback + 1}
	}
	trend := TrendReturns(series.SignalValues(), m.Lookback)
	out := make([]model.Signal, len(trend))
	for i, r := range trend {
		out[i] = model.SignalFromTrend(r)
	}
	return out, nil
}

// TrendReturns computes the trailing return over w observations.
// Entries before index w are NaN.
func TrendReturns(values []float64, w int) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		if i < w || values[i-w] == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = values[i]/values[i-w] - 1
	}
	return out
}
