package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rotation-backtest/internal/model"
)

var (
	RunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "rotation_backtest_runs_total", Help: "Backtest runs by data source and outcome"},
		[]string{"source", "status"},
	)
	Rotations = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rotation_backtest_rotations",
			Help:    "Rotations per successful run",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
	)
	SweepWindows = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rotation_backtest_sweep_windows",
			Help:    "Lookback windows per sweep request",
			Buckets: prometheus.LinearBuckets(1, 4, 8),
		},
	)
)

func init() {
	prometheus.MustRegister(RunsTotal, Rotations, SweepWindows)
}

// ObserveRun records the outcome of one backtest run.
func ObserveRun(source string, rotations int, err error) {
	RunsTotal.WithLabelValues(source, Status(err)).Inc()
	if err == nil {
		Rotations.Observe(float64(rotations))
	}
}

// Status buckets an error into a low-cardinality label.
func Status(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, model.ErrInsufficientData):
		return "insufficient_data"
	case errors.Is(err, model.ErrNonPositivePrice):
		return "non_positive_price"
	case errors.Is(err, model.ErrDegenerateRange):
		return "degenerate_range"
	case errors.Is(err, model.ErrMisalignedSeries):
		return "misaligned_series"
	default:
		return "error"
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
