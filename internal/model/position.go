package model

import "errors"

// Position holds all capital in exactly one instrument.
// Units are denominated in the held instrument's index points:
// units = capital / index value at entry.
type Position struct {
	Regime Regime
	Units  float64
}

// OpenPosition allocates capital fully to the SHORT instrument on row o.
// The initial allocation ignores that row's signal.
func OpenPosition(capital float64, index int, o Observation) (*Position, error) {
	if capital <= 0 {
		return nil, errors.New("initial capital must be > 0")
	}
	price, err := priceOf(index, o, RegimeShort)
	if err != nil {
		return nil, err
	}
	return &Position{Regime: RegimeShort, Units: capital / price}, nil
}

// Value marks the position to the held instrument's close on row o.
func (p *Position) Value(index int, o Observation) (float64, error) {
	price, err := priceOf(index, o, p.Regime)
	if err != nil {
		return 0, err
	}
	return p.Units * price, nil
}

// Rotate sells the held instrument and buys the other one at the same row's
// closing values. It returns the cash moved across, so callers can check
// units_before*price_old == units_after*price_new.
// Rotating into the regime already held is a no-op.
func (p *Position) Rotate(to Regime, index int, o Observation) (cash float64, err error) {
	if to == p.Regime {
		return p.Value(index, o)
	}
	cash, err = p.Value(index, o)
	if err != nil {
		return 0, err
	}
	price, err := priceOf(index, o, to)
	if err != nil {
		return 0, err
	}
	p.Units = cash / price
	p.Regime = to
	return cash, nil
}

func priceOf(index int, o Observation, r Regime) (float64, error) {
	price := o.Price(r)
	// NaN fails the > 0 check too.
	if !(price > 0) {
		return 0, &NonPositivePriceError{Index: index, Date: o.Date, Instrument: r, Price: price}
	}
	return price, nil
}
