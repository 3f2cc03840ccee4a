package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"rotation-backtest/internal/data"
	"rotation-backtest/internal/model"
)

func write(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadMergesPresetAndDefaults(t *testing.T) {
	t.Setenv("ROTATION_DATA_DIR", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("API_PORT", "")

	dir := t.TempDir()
	write(t, filepath.Join(dir, "presets", "ofz.yaml"), `
name: OFZ
data:
  signal: {name: RUGBICP3Y, file: RUGBICP3Y.INDX, column: RUGBICP3Y.INDX}
  short: {name: RUGBITR1Y, file: RUGBITR1Y.INDX, column: RUGBITR1Y.INDX}
  long: {name: RUGBITR10Y, file: RUGBITR10Y.INDX, column: RUGBITR10Y.INDX}
`)
	cfgPath := filepath.Join(dir, "config.yaml")
	write(t, cfgPath, `
instruments_file: presets/ofz.yaml
data:
  dir: /srv/indices
  long: {file: RUGBITR10Y.csv}
backtest:
  start: "2020-01-01"
  end: "2026-01-01"
`)

	c, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Data.Long.File != "RUGBITR10Y.csv" || c.Data.Long.Column != "RUGBITR10Y.INDX" {
		t.Errorf("long source not merged: %+v", c.Data.Long)
	}
	if c.Data.Signal.Name != "RUGBICP3Y" {
		t.Errorf("signal name = %q", c.Data.Signal.Name)
	}

	p, err := c.RunParams()
	if err != nil {
		t.Fatalf("RunParams: %v", err)
	}
	if p != model.DefaultRunParams() {
		t.Errorf("RunParams = %+v, want defaults", p)
	}

	start, end, err := c.DateRange()
	if err != nil {
		t.Fatalf("DateRange: %v", err)
	}
	if !start.Equal(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)) || end.Year() != 2026 {
		t.Errorf("range %s..%s", start, end)
	}
	if c.Server.Port != 8080 || c.Logging.Level != "info" {
		t.Errorf("server/logging defaults: %+v %+v", c.Server, c.Logging)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ROTATION_DATA_DIR", "/data/moex")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("API_PORT", "9090")

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	write(t, cfgPath, `
data:
  signal: {file: a.csv}
  short: {file: b.csv}
  long: {file: c.csv}
`)
	c, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Data.Dir != "/data/moex" || c.Logging.Level != "debug" || c.Server.Port != 9090 {
		t.Errorf("overrides not applied: dir=%q level=%q port=%d", c.Data.Dir, c.Logging.Level, c.Server.Port)
	}
	if c.Data.Short.Name != "b.csv" {
		t.Errorf("name should default to file, got %q", c.Data.Short.Name)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := &Config{}
		c.Data.Signal.File = "a"
		c.Data.Short.File = "b"
		c.Data.Long.File = "c"
		c.applyDefaults()
		return c
	}
	if err := valid().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"missing file", func(c *Config) { c.Data.Long.File = "" }},
		{"bad lookback", func(c *Config) { c.Backtest.LookbackWindow = -1 }},
		{"bad capital", func(c *Config) { c.Backtest.InitialCapital = -5 }},
		{"bad warmup", func(c *Config) { c.Backtest.Warmup = "maybe" }},
		{"bad date", func(c *Config) { c.Backtest.Start = "yesterday" }},
		{"reversed range", func(c *Config) { c.Backtest.Start, c.Backtest.End = "2025-01-01", "2020-01-01" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			if err := c.Validate(); err == nil {
				t.Error("expected error")
			}
		})
	}

	snap := &Config{}
	snap.Data.Snapshot = "series.parquet"
	snap.applyDefaults()
	if err := snap.Validate(); err != nil {
		t.Errorf("snapshot config without files rejected: %v", err)
	}
}

func TestListPresets(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "ofz.yaml"), "name: OFZ momentum\ndata:\n  short: {file: s}\n")
	write(t, filepath.Join(dir, "corp.yml"), "data:\n  long: {file: l}\n")
	write(t, filepath.Join(dir, "README.md"), "not a preset")

	got, err := ListPresets(dir)
	if err != nil {
		t.Fatalf("ListPresets: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d presets, want 2", len(got))
	}
	byID := map[string]Preset{}
	for _, p := range got {
		byID[p.ID] = p
	}
	if byID["ofz"].Name != "OFZ momentum" || byID["corp"].Name != "corp" {
		t.Errorf("presets = %+v", got)
	}
}

func TestMergeSources(t *testing.T) {
	base := MergeSources(presetSources("x"), presetSources(""))
	if base.Short.File != "x" {
		t.Errorf("empty override replaced base: %+v", base.Short)
	}
	over := MergeSources(presetSources("x"), presetSources("y"))
	if over.Long.File != "y" {
		t.Errorf("override ignored: %+v", over.Long)
	}
}

func presetSources(file string) data.Sources {
	s := data.Source{File: file}
	return data.Sources{Signal: s, Short: s, Long: s}
}
