// Package strategy turns an aligned series into per-row rotation signals.
package strategy

import (
	"sort"

	"rotation-backtest/internal/model"
)

// Strategy derives one signal per row. Implementations must be pure: the same
// series always yields the same signals, and the series is never mutated.
type Strategy interface {
	Name() string
	Signals(series model.Series) ([]model.Signal, error)
}

// Factory builds a strategy for a given lookback window.
type Factory func(lookback int) Strategy

// Registry maps strategy names to factories for the CLI and API.
type Registry struct {
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry contains every built-in strategy.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(MomentumName, func(lookback int) Strategy { return NewMomentum(lookback) })
	return r
}

func (r *Registry) Register(name string, f Factory) {
	r.factories[name] = f
}

// Get returns the factory for name. An empty name selects momentum.
func (r *Registry) Get(name string) (Factory, bool) {
	if name == "" {
		name = MomentumName
	}
	f, ok := r.factories[name]
	return f, ok
}

// List returns the registered names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
