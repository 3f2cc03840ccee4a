package model

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

func day(n int) time.Time {
	return time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestSeriesValidate(t *testing.T) {
	tests := []struct {
		name    string
		series  Series
		wantIdx int
	}{
		{
			name: "ordered",
			series: Series{
				{Date: day(0), Signal: 1, Short: 1, Long: 1},
				{Date: day(1), Signal: 1, Short: 1, Long: 1},
			},
			wantIdx: -1,
		},
		{
			name: "out of order",
			series: Series{
				{Date: day(1), Signal: 1, Short: 1, Long: 1},
				{Date: day(0), Signal: 1, Short: 1, Long: 1},
			},
			wantIdx: 1,
		},
		{
			name: "duplicate date",
			series: Series{
				{Date: day(0), Signal: 1, Short: 1, Long: 1},
				{Date: day(0), Signal: 1, Short: 1, Long: 1},
			},
			wantIdx: 1,
		},
		{
			name: "infinite long",
			series: Series{
				{Date: day(0), Signal: 1, Short: 1, Long: math.Inf(1)},
			},
			wantIdx: 0,
		},
		{
			name: "non-positive signal",
			series: Series{
				{Date: day(0), Signal: 1, Short: 1, Long: 1},
				{Date: day(1), Signal: -1, Short: 1, Long: 1},
			},
			wantIdx: 1,
		},
		{
			name: "zero signal",
			series: Series{
				{Date: day(0), Signal: 0, Short: 1, Long: 1},
			},
			wantIdx: 0,
		},
		{
			name: "nan signal",
			series: Series{
				{Date: day(0), Signal: math.NaN(), Short: 1, Long: 1},
			},
			wantIdx: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.series.Validate()
			if tt.wantIdx < 0 {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			var me *MisalignedSeriesError
			if !errors.As(err, &me) {
				t.Fatalf("Validate() = %v, want *MisalignedSeriesError", err)
			}
			if me.Index != tt.wantIdx {
				t.Errorf("Index = %d, want %d", me.Index, tt.wantIdx)
			}
			if !errors.Is(err, ErrMisalignedSeries) {
				t.Errorf("errors.Is(err, ErrMisalignedSeries) = false")
			}
		})
	}
}

func TestSeriesValidatePrices(t *testing.T) {
	tests := []struct {
		name       string
		short      float64
		long       float64
		instrument Regime
	}{
		{name: "zero short", short: 0, long: 1, instrument: RegimeShort},
		{name: "negative long", short: 1, long: -5, instrument: RegimeLong},
		{name: "zero long", short: 1, long: 0, instrument: RegimeLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Series{
				{Date: day(0), Signal: 1, Short: 1, Long: 1},
				{Date: day(1), Signal: 1, Short: tt.short, Long: tt.long},
			}
			err := s.Validate()
			var pe *NonPositivePriceError
			if !errors.As(err, &pe) {
				t.Fatalf("Validate() = %v, want *NonPositivePriceError", err)
			}
			if pe.Index != 1 || pe.Instrument != tt.instrument {
				t.Errorf("got row %d %s, want row 1 %s", pe.Index, pe.Instrument, tt.instrument)
			}
			if !errors.Is(err, ErrNonPositivePrice) {
				t.Error("errors.Is(err, ErrNonPositivePrice) = false")
			}
		})
	}
}

func TestPositionRotateIsValueNeutral(t *testing.T) {
	o0 := Observation{Date: day(0), Signal: 1, Short: 100, Long: 200}
	p, err := OpenPosition(1000, 0, o0)
	if err != nil {
		t.Fatalf("OpenPosition: %v", err)
	}
	if p.Regime != RegimeShort || p.Units != 10 {
		t.Fatalf("OpenPosition = %+v, want SHORT with 10 units", p)
	}

	o1 := Observation{Date: day(1), Signal: 1, Short: 110, Long: 250}
	before := p.Units * o1.Short
	cash, err := p.Rotate(RegimeLong, 1, o1)
	if err != nil {
		t.Fatalf("Rotate: %v", err)
	}
	after := p.Units * o1.Long
	if math.Abs(before-after) > 1e-9 || math.Abs(cash-before) > 1e-9 {
		t.Errorf("rotation not value-neutral: before=%v after=%v cash=%v", before, after, cash)
	}
	if p.Regime != RegimeLong {
		t.Errorf("Regime = %s, want LONG", p.Regime)
	}
}

func TestPositionNonPositivePrice(t *testing.T) {
	_, err := OpenPosition(1000, 0, Observation{Date: day(0), Signal: 1, Short: 0, Long: 1})
	var pe *NonPositivePriceError
	if !errors.As(err, &pe) {
		t.Fatalf("OpenPosition = %v, want *NonPositivePriceError", err)
	}
	if pe.Instrument != RegimeShort {
		t.Errorf("Instrument = %s, want SHORT", pe.Instrument)
	}

	p := &Position{Regime: RegimeShort, Units: 1}
	if _, err := p.Rotate(RegimeLong, 3, Observation{Date: day(3), Signal: 1, Short: 1, Long: -5}); !errors.Is(err, ErrNonPositivePrice) {
		t.Fatalf("Rotate = %v, want ErrNonPositivePrice", err)
	}
	if p.Regime != RegimeShort || p.Units != 1 {
		t.Errorf("failed rotation mutated position: %+v", p)
	}
}

func TestSignalFromTrend(t *testing.T) {
	if got := SignalFromTrend(0.01); got != SignalLong {
		t.Errorf("SignalFromTrend(0.01) = %s, want LONG", got)
	}
	if got := SignalFromTrend(0); got != SignalShort {
		t.Errorf("SignalFromTrend(0) = %s, want SHORT", got)
	}
	if got := SignalFromTrend(math.NaN()); got != SignalUndefined {
		t.Errorf("SignalFromTrend(NaN) = %s, want UNDEFINED", got)
	}
	if _, ok := SignalUndefined.Regime(); ok {
		t.Error("UNDEFINED signal should not map to a regime")
	}
}

func TestRunParamsValidate(t *testing.T) {
	if err := DefaultRunParams().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	p := DefaultRunParams()
	p.LookbackWindow = 0
	if err := p.Validate(); err == nil {
		t.Error("expected error for zero lookback")
	}
	p = DefaultRunParams()
	p.InitialCapital = -1
	if err := p.Validate(); err == nil {
		t.Error("expected error for negative capital")
	}
	if _, err := ParseWarmupPolicy("sometimes"); err == nil {
		t.Error("expected error for unknown warmup policy")
	}
}

func TestObservationJSONDates(t *testing.T) {
	var got []Observation
	in := `[{"date":"2021-03-04","signal":1,"short":2,"long":3},{"date":"2021-03-05T10:00:00Z","signal":1,"short":2,"long":3}]`
	if err := json.Unmarshal([]byte(in), &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	want := time.Date(2021, 3, 5, 0, 0, 0, 0, time.UTC)
	if !got[1].Date.Equal(want) {
		t.Errorf("date = %s, want %s", got[1].Date, want)
	}

	out, err := json.Marshal(got[0])
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(out), `"date":"2021-03-04"`) {
		t.Errorf("Marshal = %s", out)
	}

	if err := json.Unmarshal([]byte(`{"date":"04/03/2021"}`), &Observation{}); err == nil {
		t.Error("expected error for unparsable date")
	}
}
