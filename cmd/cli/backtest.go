package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rotation-backtest/internal/analysis"
	"rotation-backtest/internal/backtest"
	"rotation-backtest/internal/report"
)

var (
	backtestFlags runFlags
	ledgerOut     string
	plotOut       string
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run one momentum rotation backtest",
	Long: `Run the rotation over the configured window, print the summary against the
buy-and-hold baselines, and optionally write the ledger CSV and an equity chart.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, series, params, factory, err := loadRun(&backtestFlags)
		if err != nil {
			return err
		}
		names := cfg.Data.Sources.Instruments()

		res, err := backtest.New().Run(series, factory(params.LookbackWindow), params)
		if err != nil {
			return err
		}
		summary, err := analysis.Summarize(res, names)
		if err != nil {
			return err
		}
		if err := report.PrintSummary(cmd.OutOrStdout(), summary, names); err != nil {
			return err
		}

		if ledgerOut != "" {
			if err := ensureDir(ledgerOut); err != nil {
				return err
			}
			if err := backtest.WriteLedgerCSV(ledgerOut, res.Ledger); err != nil {
				return err
			}
			log.Info().Str("path", ledgerOut).Int("rows", len(res.Ledger)).Msg("ledger written")
		}
		if plotOut != "" {
			curves, err := report.Curves(res, names)
			if err != nil {
				return err
			}
			curves.Title = fmt.Sprintf("Momentum rotation, lookback %d", params.LookbackWindow)
			svg, err := report.RenderEquitySVG(curves, report.SVGChartOptions{})
			if err != nil {
				return err
			}
			if err := ensureDir(plotOut); err != nil {
				return err
			}
			if err := os.WriteFile(plotOut, svg, 0o644); err != nil {
				return err
			}
			log.Info().Str("path", plotOut).Msg("chart written")
		}
		return nil
	},
}

func init() {
	backtestFlags.register(backtestCmd)
	backtestCmd.Flags().IntVar(&backtestFlags.lookback, "lookback", 0, "Lookback window in observations, overrides backtest.lookback_window")
	backtestCmd.Flags().StringVar(&ledgerOut, "out", "", "Write the per-date ledger to this CSV path")
	backtestCmd.Flags().StringVar(&plotOut, "plot", "", "Write the normalized equity chart to this SVG path")
	rootCmd.AddCommand(backtestCmd)
}
