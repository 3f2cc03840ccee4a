package model

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInsufficientData = errors.New("insufficient data")
	ErrNonPositivePrice = errors.New("non-positive price")
	ErrDegenerateRange  = errors.New("degenerate date range")
	ErrMisalignedSeries = errors.New("misaligned series")
)

// InsufficientDataError is returned when the series is too short to produce
// a single defined signal.
type InsufficientDataError struct {
	Have int
	Need int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: have %d observations, need at least %d", e.Have, e.Need)
}

func (e *InsufficientDataError) Unwrap() error { return ErrInsufficientData }

// NonPositivePriceError aborts a run: valuation with a price <= 0 is undefined.
type NonPositivePriceError struct {
	Index      int
	Date       time.Time
	Instrument Regime
	Price      float64
}

func (e *NonPositivePriceError) Error() string {
	return fmt.Sprintf("non-positive %s price %v at row %d (%s)",
		e.Instrument, e.Price, e.Index, e.Date.Format("2006-01-02"))
}

func (e *NonPositivePriceError) Unwrap() error { return ErrNonPositivePrice }

// DegenerateRangeError is returned when first and last observation share a
// date, so annualisation would divide by zero.
type DegenerateRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *DegenerateRangeError) Error() string {
	return fmt.Sprintf("degenerate date range %s..%s", e.Start.Format("2006-01-02"), e.End.Format("2006-01-02"))
}

func (e *DegenerateRangeError) Unwrap() error { return ErrDegenerateRange }

// MisalignedSeriesError reports the first row that breaks ordering or is
// missing a required field.
type MisalignedSeriesError struct {
	Index  int
	Date   time.Time
	Reason string
}

func (e *MisalignedSeriesError) Error() string {
	return fmt.Sprintf("misaligned series at row %d (%s): %s", e.Index, e.Date.Format("2006-01-02"), e.Reason)
}

func (e *MisalignedSeriesError) Unwrap() error { return ErrMisalignedSeries }
