package analysis

import (
	"fmt"
	"sort"

	"rotation-backtest/internal/backtest"
	"rotation-backtest/internal/model"
)

type RankedRun struct {
	Rank           int      `json:"rank"`
	LookbackWindow int      `json:"lookback_window"`
	Summary        *Summary `json:"summary"`
}

// RankByAnnualizedReturn summarises each sweep run and sorts descending by
// the strategy's annualised return. Ties keep the shorter window first.
func RankByAnnualizedReturn(runs []backtest.SweepRun, names model.Instruments) ([]RankedRun, error) {
	out := make([]RankedRun, 0, len(runs))
	for _, r := range runs {
		s, err := Summarize(r.Result, names)
		if err != nil {
			return nil, fmt.Errorf("lookback %d: %w", r.Params.LookbackWindow, err)
		}
		out = append(out, RankedRun{LookbackWindow: r.Params.LookbackWindow, Summary: s})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Summary.Strategy.AnnualizedReturn, out[j].Summary.Strategy.AnnualizedReturn
		if a != b {
			return a > b
		}
		return out[i].LookbackWindow < out[j].LookbackWindow
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}
