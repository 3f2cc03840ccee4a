package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rotation-backtest/internal/config"
	"rotation-backtest/internal/data"
)

var snapshotOut string

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Write the aligned input series to a parquet or JSON file",
	Long: `Load and align the three configured index files once and store the result,
so later runs can point data.snapshot at it instead of the CSV files.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		series, err := cfg.LoadSeries()
		if err != nil {
			return fmt.Errorf("load series: %w", err)
		}
		if len(series) == 0 {
			return fmt.Errorf("no aligned observations to write")
		}
		if err := ensureDir(snapshotOut); err != nil {
			return err
		}
		if err := data.WriteSnapshot(snapshotOut, series); err != nil {
			return err
		}
		log.Info().
			Str("path", snapshotOut).
			Int("rows", len(series)).
			Time("first", series.First().Date).
			Time("last", series.Last().Date).
			Msg("snapshot written")
		return nil
	},
}

func init() {
	snapshotCmd.Flags().StringVar(&snapshotOut, "out", "results/series.parquet", "Output path (.parquet or .json)")
	rootCmd.AddCommand(snapshotCmd)
}
