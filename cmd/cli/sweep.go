package main

import (
	"time"

	"github.com/spf13/cobra"

	"rotation-backtest/internal/analysis"
	"rotation-backtest/internal/backtest"
	"rotation-backtest/internal/report"
)

var (
	sweepFlags   runFlags
	sweepWindows []int
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Compare lookback windows over the same data",
	Long: `Run one backtest per lookback window in parallel and rank the windows by
annualized strategy return.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, series, params, factory, err := loadRun(&sweepFlags)
		if err != nil {
			return err
		}
		names := cfg.Data.Sources.Instruments()

		started := time.Now()
		runs, err := backtest.Sweep(cmd.Context(), series, sweepWindows, params, factory)
		if err != nil {
			return err
		}
		ranked, err := analysis.RankByAnnualizedReturn(runs, names)
		if err != nil {
			return err
		}
		log.Debug().
			Ints("windows", sweepWindows).
			Dur("elapsed", time.Since(started)).
			Msg("sweep completed")
		return report.PrintSweep(cmd.OutOrStdout(), ranked)
	},
}

func init() {
	sweepFlags.register(sweepCmd)
	sweepCmd.Flags().IntSliceVar(&sweepWindows, "windows", []int{30, 60, 90, 120, 180}, "Comma-separated lookback windows")
	rootCmd.AddCommand(sweepCmd)
}
