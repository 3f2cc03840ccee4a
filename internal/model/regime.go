package model

import "math"

// Regime names the instrument that currently holds all capital.
// Keep these values stable; they are intended for CSV output.
type Regime string

const (
	RegimeShort Regime = "SHORT"
	RegimeLong  Regime = "LONG"
)

// Other returns the opposite regime.
func (r Regime) Other() Regime {
	if r == RegimeLong {
		return RegimeShort
	}
	return RegimeLong
}

// Signal is the per-row rotation signal. SignalUndefined marks rows that do
// not yet have a full lookback window behind them.
type Signal string

const (
	SignalShort     Signal = "SHORT"
	SignalLong      Signal = "LONG"
	SignalUndefined Signal = "UNDEFINED"
)

func SignalFromTrend(trendReturn float64) Signal {
	switch {
	case math.IsNaN(trendReturn):
		return SignalUndefined
	case trendReturn > 0:
		return SignalLong
	default:
		return SignalShort
	}
}

// Regime maps a defined signal to the regime it asks for.
// ok is false for SignalUndefined.
func (s Signal) Regime() (r Regime, ok bool) {
	switch s {
	case SignalLong:
		return RegimeLong, true
	case SignalShort:
		return RegimeShort, true
	default:
		return "", false
	}
}
