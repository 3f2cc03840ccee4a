package analysis

import (
	"errors"
	"fmt"
	"math"
	"time"

	"rotation-backtest/internal/backtest"
	"rotation-backtest/internal/model"
)

const daysPerYear = 365.25

// ErrNonPositiveValue is returned when a value ratio is <= 0, where a
// fractional power would be undefined.
var ErrNonPositiveValue = errors.New("non-positive value ratio")

// Performance summarises one equity curve: the strategy or a buy-and-hold
// baseline over the same window.
type Performance struct {
	Name string `json:"name"`

	InitialCapital float64 `json:"initial_capital"`
	FinalValue     float64 `json:"final_value"`

	TotalReturn      float64 `json:"total_return"`
	AnnualizedReturn float64 `json:"annualized_return"`
}

// Summary is the scalar output of a run, compared against holding either
// instrument for the whole simulated window.
type Summary struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Years float64   `json:"years"`

	Rotations int `json:"rotations"`

	Strategy Performance `json:"strategy"`
	Short    Performance `json:"short"`
	Long     Performance `json:"long"`
}

// ElapsedYears measures calendar time, not trading days.
func ElapsedYears(first, last time.Time) (float64, error) {
	days := last.Sub(first).Hours() / 24
	if days <= 0 {
		return 0, &model.DegenerateRangeError{Start: first, End: last}
	}
	return days / daysPerYear, nil
}

// Annualize converts a value ratio (final/initial) into a compound yearly rate.
func Annualize(ratio, years float64) (float64, error) {
	if !(years > 0) {
		return 0, fmt.Errorf("%w: %v years", model.ErrDegenerateRange, years)
	}
	if !(ratio > 0) {
		return 0, fmt.Errorf("%w: %v", ErrNonPositiveValue, ratio)
	}
	return math.Pow(ratio, 1/years) - 1, nil
}

func newPerformance(name string, capital, final, years float64) (Performance, error) {
	ratio := final / capital
	annual, err := Annualize(ratio, years)
	if err != nil {
		return Performance{}, fmt.Errorf("%s: %w", name, err)
	}
	return Performance{
		Name:             name,
		InitialCapital:   capital,
		FinalValue:       final,
		TotalReturn:      ratio - 1,
		AnnualizedReturn: annual,
	}, nil
}

// BuyAndHold puts capital into one instrument at first and values it at last.
func BuyAndHold(name string, first, last, capital, years float64) (Performance, error) {
	if !(first > 0) || !(last > 0) {
		return Performance{}, fmt.Errorf("%s: %w (first %v, last %v)", name, model.ErrNonPositivePrice, first, last)
	}
	return newPerformance(name, capital, capital*last/first, years)
}

// Summarize computes strategy and baseline performance over the rows the
// simulator actually walked. Empty names fall back to the regime labels.
func Summarize(res *backtest.Result, names model.Instruments) (*Summary, error) {
	if res == nil || len(res.Ledger) == 0 {
		return nil, errors.New("empty result")
	}
	first, last := res.Ledger[0], res.Ledger[len(res.Ledger)-1]

	years, err := ElapsedYears(first.Date, last.Date)
	if err != nil {
		return nil, err
	}

	strat, err := newPerformance("Momentum strategy", res.InitialCapital, res.FinalValue, years)
	if err != nil {
		return nil, err
	}
	short, err := BuyAndHold(orDefault(names.Short, string(model.RegimeShort)), first.ShortPrice, last.ShortPrice, res.InitialCapital, years)
	if err != nil {
		return nil, err
	}
	long, err := BuyAndHold(orDefault(names.Long, string(model.RegimeLong)), first.LongPrice, last.LongPrice, res.InitialCapital, years)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Start:     first.Date,
		End:       last.Date,
		Years:     years,
		Rotations: res.Rotations,
		Strategy:  strat,
		Short:     short,
		Long:      long,
	}, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
