package report

import (
	"fmt"
	"time"

	"rotation-backtest/internal/backtest"
	"rotation-backtest/internal/model"
)

// Normalize rescales values so the first one is 100.
func Normalize(values []float64) ([]float64, error) {
	if len(values) == 0 {
		return nil, nil
	}
	base := values[0]
	if !(base > 0) {
		return nil, fmt.Errorf("cannot normalise from base %v", base)
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v / base * 100
	}
	return out, nil
}

// EquityCurves holds base-100 curves over the simulated window plus the
// regime held on each row, for colouring.
type EquityCurves struct {
	Title string
	Names model.Instruments

	Dates    []time.Time
	Strategy []float64
	Short    []float64
	Long     []float64
	Held     []model.Regime
}

func Curves(res *backtest.Result, names model.Instruments) (*EquityCurves, error) {
	if res == nil || len(res.Ledger) == 0 {
		return nil, fmt.Errorf("empty result")
	}
	n := len(res.Ledger)
	c := &EquityCurves{
		Names: names,
		Dates: make([]time.Time, n),
		Held:  res.Regimes(),
	}
	strat := make([]float64, n)
	short := make([]float64, n)
	long := make([]float64, n)
	for i, row := range res.Ledger {
		c.Dates[i] = row.Date
		strat[i] = row.Value
		short[i] = row.ShortPrice
		long[i] = row.LongPrice
	}

	var err error
	if c.Strategy, err = Normalize(strat); err != nil {
		return nil, fmt.Errorf("strategy: %w", err)
	}
	if c.Short, err = Normalize(short); err != nil {
		return nil, fmt.Errorf("short: %w", err)
	}
	if c.Long, err = Normalize(long); err != nil {
		return nil, fmt.Errorf("long: %w", err)
	}
	return c, nil
}
