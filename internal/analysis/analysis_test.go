package analysis

import (
	"errors"
	"math"
	"testing"
	"time"

	"rotation-backtest/internal/backtest"
	"rotation-backtest/internal/model"
)

var day0 = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

func near(a, b float64) bool { return math.Abs(a-b) <= 1e-9 }

func TestElapsedYears(t *testing.T) {
	got, err := ElapsedYears(day0, day0.AddDate(0, 0, 1461))
	if err != nil {
		t.Fatalf("ElapsedYears: %v", err)
	}
	if !near(got, 4) {
		t.Errorf("got %v, want 4", got)
	}

	_, err = ElapsedYears(day0, day0)
	var de *model.DegenerateRangeError
	if !errors.As(err, &de) {
		t.Fatalf("got %v, want *DegenerateRangeError", err)
	}
}

func TestAnnualize(t *testing.T) {
	got, err := Annualize(1.21, 2)
	if err != nil {
		t.Fatalf("Annualize: %v", err)
	}
	if !near(got, 0.1) {
		t.Errorf("got %v, want 0.1", got)
	}

	for _, ratio := range []float64{0, -0.5, math.NaN()} {
		if _, err := Annualize(ratio, 1); !errors.Is(err, ErrNonPositiveValue) {
			t.Errorf("Annualize(%v) = %v, want ErrNonPositiveValue", ratio, err)
		}
	}
	if _, err := Annualize(1.1, 0); !errors.Is(err, model.ErrDegenerateRange) {
		t.Errorf("zero years: got %v, want ErrDegenerateRange", err)
	}
}

func TestBuyAndHold(t *testing.T) {
	p, err := BuyAndHold("10Y", 200, 242, 1_000_000, 2)
	if err != nil {
		t.Fatalf("BuyAndHold: %v", err)
	}
	if !near(p.FinalValue, 1_210_000) || !near(p.TotalReturn, 0.21) || !near(p.AnnualizedReturn, 0.1) {
		t.Errorf("unexpected %+v", p)
	}
	if _, err := BuyAndHold("bad", 0, 1, 100, 1); !errors.Is(err, model.ErrNonPositivePrice) {
		t.Errorf("got %v, want ErrNonPositivePrice", err)
	}
}

func flatSeries(n int, step int) model.Series {
	s := make(model.Series, n)
	for i := range s {
		s[i] = model.Observation{
			Date:   day0.AddDate(0, 0, i*step),
			Signal: 100,
			Short:  100 * (1 + 0.01*float64(i)),
			Long:   50 * (1 + 0.02*float64(i)),
		}
	}
	return s
}

func TestSummarize(t *testing.T) {
	series := flatSeries(5, 365)
	regimes := make([]model.Regime, len(series))
	for i := range regimes {
		regimes[i] = model.RegimeShort
	}
	res, err := backtest.New().Simulate(series, regimes, 100_000)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}

	sum, err := Summarize(res, model.Instruments{Short: "RUGBITR1Y"})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if !sum.Start.Equal(day0) || !sum.End.Equal(series.Last().Date) {
		t.Errorf("range %s..%s", sum.Start, sum.End)
	}
	if !near(sum.Years, 1460/daysPerYear) {
		t.Errorf("Years = %v", sum.Years)
	}
	// Held SHORT throughout, so the strategy equals the short baseline.
	if !near(sum.Strategy.FinalValue, sum.Short.FinalValue) {
		t.Errorf("strategy %v != short baseline %v", sum.Strategy.FinalValue, sum.Short.FinalValue)
	}
	if !near(sum.Short.TotalReturn, 0.04) || !near(sum.Long.TotalReturn, 0.08) {
		t.Errorf("baseline returns short=%v long=%v", sum.Short.TotalReturn, sum.Long.TotalReturn)
	}
	if sum.Short.Name != "RUGBITR1Y" || sum.Long.Name != "LONG" {
		t.Errorf("names %q %q", sum.Short.Name, sum.Long.Name)
	}
}

func TestSummarizeSingleRow(t *testing.T) {
	series := flatSeries(1, 1)
	res, err := backtest.New().Simulate(series, []model.Regime{model.RegimeShort}, 100)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if _, err := Summarize(res, model.Instruments{}); !errors.Is(err, model.ErrDegenerateRange) {
		t.Fatalf("got %v, want ErrDegenerateRange", err)
	}
}

func TestRankByAnnualizedReturn(t *testing.T) {
	series := flatSeries(3, 365)
	mk := func(regimes ...model.Regime) *backtest.Result {
		res, err := backtest.New().Simulate(series, regimes, 100)
		if err != nil {
			t.Fatalf("Simulate: %v", err)
		}
		return res
	}
	s, l := model.RegimeShort, model.RegimeLong
	runs := []backtest.SweepRun{
		{Params: model.RunParams{LookbackWindow: 30}, Result: mk(s, s, s)},
		{Params: model.RunParams{LookbackWindow: 60}, Result: mk(s, l, l)},
		{Params: model.RunParams{LookbackWindow: 10}, Result: mk(s, s, s)},
	}

	ranked, err := RankByAnnualizedReturn(runs, model.Instruments{})
	if err != nil {
		t.Fatalf("RankByAnnualizedReturn: %v", err)
	}
	want := []int{60, 10, 30}
	for i, r := range ranked {
		if r.LookbackWindow != want[i] || r.Rank != i+1 {
			t.Errorf("rank %d: got lookback %d (rank %d), want %d", i+1, r.LookbackWindow, r.Rank, want[i])
		}
	}
}
