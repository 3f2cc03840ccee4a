package model

import (
	"errors"
	"fmt"
)

const (
	DefaultLookbackWindow = 90
	DefaultInitialCapital = 100_000
)

// WarmupPolicy decides what happens to rows that precede the first full
// lookback window, where the trend return is undefined.
type WarmupPolicy string

const (
	// WarmupHoldShort simulates every row; undefined signals resolve to SHORT.
	WarmupHoldShort WarmupPolicy = "hold_short"
	// WarmupExclude drops the warm-up rows and starts the simulation at the
	// first row with a defined signal.
	WarmupExclude WarmupPolicy = "exclude"
)

func ParseWarmupPolicy(s string) (WarmupPolicy, error) {
	switch WarmupPolicy(s) {
	case "", WarmupHoldShort:
		return WarmupHoldShort, nil
	case WarmupExclude:
		return WarmupExclude, nil
	default:
		return "", fmt.Errorf("unknown warmup policy %q (want %q or %q)", s, WarmupHoldShort, WarmupExclude)
	}
}

// RunParams is the per-run configuration the core accepts. Nothing here is
// global; every run states its own capital.
type RunParams struct {
	LookbackWindow int
	InitialCapital float64
	Warmup         WarmupPolicy
}

func DefaultRunParams() RunParams {
	return RunParams{
		LookbackWindow: DefaultLookbackWindow,
		InitialCapital: DefaultInitialCapital,
		Warmup:         WarmupHoldShort,
	}
}

func (p RunParams) Validate() error {
	if p.LookbackWindow < 1 {
		return errors.New("LookbackWindow must be >= 1")
	}
	if !(p.InitialCapital > 0) {
		return errors.New("InitialCapital must be > 0")
	}
	if _, err := ParseWarmupPolicy(string(p.Warmup)); err != nil {
		return err
	}
	return nil
}
