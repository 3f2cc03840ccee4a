package strategy

import (
	"fmt"

	"rotation-backtest/internal/model"
)

// ApplyWarmup resolves signals into regimes the simulator can consume.
//
// Under WarmupHoldShort every row is kept and undefined signals become SHORT.
// Under WarmupExclude rows up to the first defined signal are dropped.
// Either way the returned regimes contain no undefined entries.
func ApplyWarmup(series model.Series, signals []model.Signal, policy model.WarmupPolicy) (model.Series, []model.Regime, error) {
	if len(series) != len(signals) {
		return nil, nil, fmt.Errorf("signals length %d does not match series length %d", len(signals), len(series))
	}

	start := 0
	switch policy {
	case model.WarmupHoldShort, "":
	case model.WarmupExclude:
		for start < len(signals) && signals[start] == model.SignalUndefined {
			start++
		}
		if start == len(signals) {
			return nil, nil, &model.InsufficientDataError{Have: len(series), Need: len(series) + 1}
		}
	default:
		return nil, nil, fmt.Errorf("unknown warmup policy %q", policy)
	}

	regimes := make([]model.Regime, 0, len(signals)-start)
	for _, s := range signals[start:] {
		r, ok := s.Regime()
		if !ok {
			r = model.RegimeShort
		}
		regimes = append(regimes, r)
	}
	return series[start:], regimes, nil
}
