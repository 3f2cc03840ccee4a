package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"rotation-backtest/internal/config"
	"rotation-backtest/internal/model"
	"rotation-backtest/internal/strategy"
	"rotation-backtest/internal/util"
)

var (
	cfgPath  string
	logLevel string

	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "rotation",
	Short: "Momentum rotation backtester for bond indices",
	Long: `Backtest a rotation between a short-duration and a long-duration bond index,
driven by the trailing trend of a signal index.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log = util.NewConsoleLogger(logLevel, os.Stderr)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "examples/config.yaml", "Path to YAML config")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}

// runFlags are the per-run overrides shared by backtest and sweep.
type runFlags struct {
	start    string
	end      string
	strategy string
	lookback int
	capital  float64
	warmup   string
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.start, "start", "", "First date to simulate (YYYY-MM-DD), overrides backtest.start")
	cmd.Flags().StringVar(&f.end, "end", "", "Last date to simulate (YYYY-MM-DD), overrides backtest.end")
	cmd.Flags().StringVar(&f.strategy, "strategy", "", "Strategy name, overrides backtest.strategy")
	cmd.Flags().Float64Var(&f.capital, "capital", 0, "Initial capital, overrides backtest.initial_capital")
	cmd.Flags().StringVar(&f.warmup, "warmup", "", "Warm-up policy (hold_short, exclude), overrides backtest.warmup")
}

func (f *runFlags) apply(cfg *config.Config) {
	if f.start != "" {
		cfg.Backtest.Start = f.start
	}
	if f.end != "" {
		cfg.Backtest.End = f.end
	}
	if f.strategy != "" {
		cfg.Backtest.Strategy = f.strategy
	}
	if f.lookback != 0 {
		cfg.Backtest.LookbackWindow = f.lookback
	}
	if f.capital != 0 {
		cfg.Backtest.InitialCapital = f.capital
	}
	if f.warmup != "" {
		cfg.Backtest.Warmup = f.warmup
	}
}

// loadRun loads the config, applies overrides and resolves everything a run
// needs.
func loadRun(f *runFlags) (*config.Config, model.Series, model.RunParams, strategy.Factory, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, model.RunParams{}, nil, fmt.Errorf("load config: %w", err)
	}
	f.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, nil, model.RunParams{}, nil, err
	}
	params, err := cfg.RunParams()
	if err != nil {
		return nil, nil, model.RunParams{}, nil, err
	}
	factory, ok := strategy.DefaultRegistry().Get(cfg.Backtest.Strategy)
	if !ok {
		return nil, nil, model.RunParams{}, nil, fmt.Errorf("unknown strategy %q", cfg.Backtest.Strategy)
	}

	series, err := cfg.LoadSeries()
	if err != nil {
		return nil, nil, model.RunParams{}, nil, fmt.Errorf("load series: %w", err)
	}
	log.Debug().
		Str("dir", cfg.Data.Dir).
		Int("rows", len(series)).
		Msg("series loaded")
	return cfg, series, params, factory, nil
}

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
