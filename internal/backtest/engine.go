package backtest

import (
	"fmt"

	"rotation-backtest/internal/model"
	"rotation-backtest/internal/strategy"
)

type Engine struct{}

func New() *Engine { return &Engine{} }

// Run generates signals with strat, applies the warm-up policy and simulates
// the rotation over the remaining rows.
func (e *Engine) Run(series model.Series, strat strategy.Strategy, params model.RunParams) (*Result, error) {
	if strat == nil {
		return nil, fmt.Errorf("strategy is nil")
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}

	signals, err := strat.Signals(series)
	if err != nil {
		return nil, fmt.Errorf("%s signals: %w", strat.Name(), err)
	}
	simulated, regimes, err := strategy.ApplyWarmup(series, signals, params.Warmup)
	if err != nil {
		return nil, err
	}
	return e.Simulate(simulated, regimes, params.InitialCapital)
}

// Simulate walks the rows in date order holding a single position.
//
// Row 0 always opens SHORT with value == capital. On every later row the
// position rotates at that day's close if regimes[t] differs from the held
// regime, and is then marked to market. A price <= 0 aborts the run and no
// partial result is returned.
func (e *Engine) Simulate(series model.Series, regimes []model.Regime, capital float64) (*Result, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("no observations")
	}
	if len(regimes) != len(series) {
		return nil, fmt.Errorf("regimes length %d does not match series length %d", len(regimes), len(series))
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}

	pos, err := model.OpenPosition(capital, 0, series[0])
	if err != nil {
		return nil, fmt.Errorf("row 0 open position: %w", err)
	}

	ledger := make([]LedgerRow, 0, len(series))
	rotations := 0

	for idx, o := range series {
		rotated := false
		value := capital

		if idx > 0 {
			if regimes[idx] != pos.Regime {
				if _, err := pos.Rotate(regimes[idx], idx, o); err != nil {
					return nil, fmt.Errorf("row %d rotate: %w", idx, err)
				}
				rotations++
				rotated = true
			}
			value, err = pos.Value(idx, o)
			if err != nil {
				return nil, fmt.Errorf("row %d valuation: %w", idx, err)
			}
		}

		ledger = append(ledger, LedgerRow{
			Index: idx,
			Date:  o.Date,

			SignalValue: o.Signal,
			ShortPrice:  o.Short,
			LongPrice:   o.Long,

			Regime:  regimes[idx],
			Held:    pos.Regime,
			Rotated: rotated,

			Units: pos.Units,
			Value: value,
		})
	}

	return &Result{
		InitialCapital: capital,
		FinalValue:     ledger[len(ledger)-1].Value,
		Rotations:      rotations,
		Ledger:         ledger,
	}, nil
}
