package backtest

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"rotation-backtest/internal/model"
	"rotation-backtest/internal/strategy"
)

// SweepRun is the outcome of one what-if run inside a sweep.
type SweepRun struct {
	Params model.RunParams
	Result *Result
}

// Sweep runs one backtest per lookback window over the same series.
// Runs are independent and execute in parallel; each run is still a strict
// sequential scan. Results keep the order of windows. The first error
// cancels the remaining runs.
func Sweep(ctx context.Context, series model.Series, windows []int, base model.RunParams, newStrategy strategy.Factory) ([]SweepRun, error) {
	if len(windows) == 0 {
		return nil, fmt.Errorf("no lookback windows")
	}
	if newStrategy == nil {
		return nil, fmt.Errorf("strategy factory is nil")
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}

	out := make([]SweepRun, len(windows))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, w := range windows {
		i, w := i, w
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			params := base
			params.LookbackWindow = w
			res, err := New().Run(series, newStrategy(w), params)
			if err != nil {
				return fmt.Errorf("lookback %d: %w", w, err)
			}
			out[i] = SweepRun{Params: params, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
