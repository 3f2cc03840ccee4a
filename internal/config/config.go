package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"rotation-backtest/internal/data"
	"rotation-backtest/internal/model"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load the three index sources from a preset (e.g. examples/presets/*.yaml).
	// Fields set under data.signal/short/long override the preset.
	InstrumentsFile string         `yaml:"instruments_file"`
	Data            DataConfig     `yaml:"data"`
	Backtest        BacktestConfig `yaml:"backtest"`
	Logging         LoggingConfig  `yaml:"logging"`
	Server          ServerConfig   `yaml:"server"`
}

type DataConfig struct {
	Dir string `yaml:"dir"`
	// Snapshot, if set, is read instead of the CSV files (.parquet or .json).
	Snapshot string `yaml:"snapshot"`

	data.Sources `yaml:",inline"`
}

type BacktestConfig struct {
	Start          string  `yaml:"start"`
	End            string  `yaml:"end"`
	Strategy       string  `yaml:"strategy"`
	LookbackWindow int     `yaml:"lookback_window"`
	InitialCapital float64 `yaml:"initial_capital"`
	Warmup         string  `yaml:"warmup"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

// Preset is an instruments file: a named set of signal/short/long sources.
type Preset struct {
	ID          string       `yaml:"-" json:"id"`
	Name        string       `yaml:"name" json:"name"`
	Description string       `yaml:"description" json:"description"`
	Data        data.Sources `yaml:"data" json:"data"`
}

// Load reads .env (if present), the YAML file and environment overrides,
// fills defaults and validates the result.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.applyDefaults()
	applyEnvOverrides(c)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	if c.InstrumentsFile != "" {
		presetPath := c.InstrumentsFile
		if !filepath.IsAbs(presetPath) {
			// Relative to the config file first, then to the working directory.
			cand := filepath.Join(filepath.Dir(path), presetPath)
			if _, err := os.Stat(cand); err == nil {
				presetPath = cand
			}
		}
		p, err := LoadPreset(presetPath)
		if err != nil {
			return nil, fmt.Errorf("instruments_file: %w", err)
		}
		c.Data.Sources = MergeSources(p.Data, c.Data.Sources)
	}
	if c.Data.Dir != "" && !filepath.IsAbs(c.Data.Dir) {
		if _, err := os.Stat(c.Data.Dir); err != nil {
			c.Data.Dir = filepath.Join(filepath.Dir(path), c.Data.Dir)
		}
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Data.Dir == "" {
		c.Data.Dir = "files"
	}
	for _, s := range []*data.Source{&c.Data.Signal, &c.Data.Short, &c.Data.Long} {
		if s.Name == "" {
			s.Name = s.File
		}
	}
	if c.Backtest.LookbackWindow == 0 {
		c.Backtest.LookbackWindow = model.DefaultLookbackWindow
	}
	if c.Backtest.InitialCapital == 0 {
		c.Backtest.InitialCapital = model.DefaultInitialCapital
	}
	if c.Backtest.Warmup == "" {
		c.Backtest.Warmup = string(model.WarmupHoldShort)
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
}

// applyEnvOverrides checks well-known environment variables and overrides the
// corresponding configuration fields when they are set.
func applyEnvOverrides(c *Config) {
	if v := os.Getenv("ROTATION_DATA_DIR"); v != "" {
		c.Data.Dir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("API_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Data.Snapshot == "" {
		for role, s := range map[string]data.Source{"signal": c.Data.Signal, "short": c.Data.Short, "long": c.Data.Long} {
			if s.File == "" {
				return fmt.Errorf("data.%s.file is required", role)
			}
		}
	}
	start, end, err := c.DateRange()
	if err != nil {
		return err
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return fmt.Errorf("backtest.end %s is before backtest.start %s", c.Backtest.End, c.Backtest.Start)
	}
	if _, err := c.RunParams(); err != nil {
		return fmt.Errorf("backtest config invalid: %w", err)
	}
	return nil
}

// DateRange parses backtest.start/end. Empty values are open bounds.
func (c *Config) DateRange() (start, end time.Time, err error) {
	if c.Backtest.Start != "" {
		if start, err = data.ParseDate(c.Backtest.Start); err != nil {
			return start, end, fmt.Errorf("backtest.start: %w", err)
		}
	}
	if c.Backtest.End != "" {
		if end, err = data.ParseDate(c.Backtest.End); err != nil {
			return start, end, fmt.Errorf("backtest.end: %w", err)
		}
	}
	return start, end, nil
}

func (c *Config) RunParams() (model.RunParams, error) {
	warmup, err := model.ParseWarmupPolicy(c.Backtest.Warmup)
	if err != nil {
		return model.RunParams{}, err
	}
	p := model.RunParams{
		LookbackWindow: c.Backtest.LookbackWindow,
		InitialCapital: c.Backtest.InitialCapital,
		Warmup:         warmup,
	}
	if err := p.Validate(); err != nil {
		return model.RunParams{}, err
	}
	return p, nil
}

// LoadSeries loads the aligned, truncated input series the config describes.
func (c *Config) LoadSeries() (model.Series, error) {
	start, end, err := c.DateRange()
	if err != nil {
		return nil, err
	}
	if c.Data.Snapshot != "" {
		s, err := data.ReadSnapshot(c.Data.Snapshot)
		if err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", c.Data.Snapshot, err)
		}
		return data.Truncate(s, start, end), nil
	}
	return data.LoadSeries(c.Data.Dir, c.Data.Sources, start, end)
}

func LoadPreset(path string) (*Preset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Preset
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	p.ID = trimExt(filepath.Base(path))
	if p.Name == "" {
		p.Name = p.ID
	}
	return &p, nil
}

// ListPresets loads every *.yaml/*.yml preset in dir.
func ListPresets(dir string) ([]Preset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []Preset
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		p, err := LoadPreset(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		out = append(out, *p)
	}
	return out, nil
}

// MergeSources overlays non-empty fields from override onto base.
func MergeSources(base, override data.Sources) data.Sources {
	return data.Sources{
		Signal: mergeSource(base.Signal, override.Signal),
		Short:  mergeSource(base.Short, override.Short),
		Long:   mergeSource(base.Long, override.Long),
	}
}

func mergeSource(base, override data.Source) data.Source {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.File != "" {
		out.File = override.File
	}
	if override.Column != "" {
		out.Column = override.Column
	}
	return out
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}
