package model

import (
	"math"
	"time"
)

// Observation is one aligned row: the signal-source index value and the two
// tradable index values on the same calendar date.
type Observation struct {
	Date   time.Time `json:"date"`
	Signal float64   `json:"signal"`
	Short  float64   `json:"short"`
	Long   float64   `json:"long"`
}

// Price returns the closing index value of the instrument held under r.
func (o Observation) Price(r Regime) float64 {
	if r == RegimeLong {
		return o.Long
	}
	return o.Short
}

// Series is an ordered, date-ascending sequence of observations.
// The engine only reads it; derived columns live in separate slices.
type Series []Observation

// Validate rejects rows that are out of order, duplicated or missing a field,
// and rows where any of the three values is not positive. A non-positive
// instrument price is a *NonPositivePriceError whether or not it is held.
func (s Series) Validate() error {
	for i, o := range s {
		if o.Date.IsZero() {
			return &MisalignedSeriesError{Index: i, Date: o.Date, Reason: "missing date"}
		}
		if missing(o.Signal) || missing(o.Short) || missing(o.Long) {
			return &MisalignedSeriesError{Index: i, Date: o.Date, Reason: "missing value"}
		}
		if i > 0 && !o.Date.After(s[i-1].Date) {
			return &MisalignedSeriesError{Index: i, Date: o.Date, Reason: "date not strictly increasing"}
		}
		if o.Signal <= 0 {
			return &MisalignedSeriesError{Index: i, Date: o.Date, Reason: "non-positive signal value"}
		}
		for _, r := range []Regime{RegimeShort, RegimeLong} {
			if p := o.Price(r); p <= 0 {
				return &NonPositivePriceError{Index: i, Date: o.Date, Instrument: r, Price: p}
			}
		}
	}
	return nil
}

// SignalValues returns the signal-source column.
func (s Series) SignalValues() []float64 {
	out := make([]float64, len(s))
	for i, o := range s {
		out[i] = o.Signal
	}
	return out
}

// First and Last assume a non-empty series.
func (s Series) First() Observation { return s[0] }
func (s Series) Last() Observation  { return s[len(s)-1] }

// Point is one (date, value) sample of a derived series.
type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Instruments carries display names for the three series.
type Instruments struct {
	Signal string `json:"signal"`
	Short  string `json:"short"`
	Long   string `json:"long"`
}

func missing(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
