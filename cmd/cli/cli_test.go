package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"rotation-backtest/internal/data"
)

// writeFixture lays out three index files and a config that points at them.
// The signal rises every day, so a short lookback rotates to LONG once.
func writeFixture(t *testing.T) string {
	t.Helper()
	t.Setenv("ROTATION_DATA_DIR", "")
	t.Setenv("LOG_LEVEL", "")

	dir := t.TempDir()
	start := time.Date(2022, 1, 3, 0, 0, 0, 0, time.UTC)
	files := map[string]func(i int) float64{
		"sig.csv":   func(i int) float64 { return 100 + float64(i) },
		"short.csv": func(i int) float64 { return 100 + 0.01*float64(i) },
		"long.csv":  func(i int) float64 { return 200 + 0.05*float64(i) },
	}
	for name, f := range files {
		var b strings.Builder
		b.WriteString("date,value\n")
		for i := 0; i < 150; i++ {
			fmt.Fprintf(&b, "%s,%.4f\n", start.AddDate(0, 0, i).Format("2006-01-02"), f(i))
		}
		if err := os.WriteFile(filepath.Join(dir, name), []byte(b.String()), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	cfg := fmt.Sprintf(`data:
  dir: %s
  signal: {name: SIG, file: sig.csv, column: value}
  short: {name: SHORTIDX, file: short.csv, column: value}
  long: {name: LONGIDX, file: long.csv, column: value}
backtest:
  lookback_window: 90
  initial_capital: 100000
`, dir)
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append(args, "--log-level", "error"))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestBacktestCommand(t *testing.T) {
	cfg := writeFixture(t)
	outDir := t.TempDir()
	ledger := filepath.Join(outDir, "ledger.csv")
	plot := filepath.Join(outDir, "plot.svg")

	out, err := execute(t, "backtest", "--config", cfg, "--lookback", "10", "--out", ledger, "--plot", plot)
	if err != nil {
		t.Fatalf("backtest: %v", err)
	}
	for _, want := range []string{"Number of rotations: 1", "Buy and hold SHORTIDX", "Buy and hold LONGIDX", "100,000.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	raw, err := os.ReadFile(ledger)
	if err != nil {
		t.Fatalf("read ledger: %v", err)
	}
	if lines := strings.Count(string(raw), "\n"); lines != 151 {
		t.Errorf("ledger has %d lines, want 151", lines)
	}
	svg, err := os.ReadFile(plot)
	if err != nil {
		t.Fatalf("read plot: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) || !bytes.HasSuffix(bytes.TrimSpace(svg), []byte("</svg>")) {
		t.Errorf("plot is not an SVG document: %.60s", svg)
	}
}

func TestSweepCommand(t *testing.T) {
	cfg := writeFixture(t)

	out, err := execute(t, "sweep", "--config", cfg, "--windows", "5,10,20")
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header + 3:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[1]), "1 ") {
		t.Errorf("first ranked line = %q", lines[1])
	}
}

func TestSnapshotCommand(t *testing.T) {
	cfg := writeFixture(t)
	path := filepath.Join(t.TempDir(), "series.parquet")

	if _, err := execute(t, "snapshot", "--config", cfg, "--out", path); err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	series, err := data.ReadSnapshot(path)
	if err != nil {
		t.Fatalf("ReadSnapshot: %v", err)
	}
	if len(series) != 150 || series.First().Signal != 100 {
		t.Errorf("snapshot has %d rows, first %+v", len(series), series.First())
	}
}

func TestMissingConfigFails(t *testing.T) {
	_, err := execute(t, "backtest", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
