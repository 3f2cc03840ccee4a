package data

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"rotation-backtest/internal/model"
)

// Source names one index file and the column holding its values.
type Source struct {
	Name   string `yaml:"name" json:"name"`
	File   string `yaml:"file" json:"file"`
	Column string `yaml:"column" json:"column"`
}

// Sources are the three inputs of a rotation run.
type Sources struct {
	Signal Source `yaml:"signal" json:"signal"`
	Short  Source `yaml:"short" json:"short"`
	Long   Source `yaml:"long" json:"long"`
}

// Instruments returns the display names.
func (s Sources) Instruments() model.Instruments {
	return model.Instruments{Signal: s.Signal.Name, Short: s.Short.Name, Long: s.Long.Name}
}

// Align inner-joins the three inputs on date and returns rows in ascending
// date order. Dates present in only some inputs are dropped.
func Align(signal, short, long []model.Point) (model.Series, error) {
	sig, err := index(signal, "signal")
	if err != nil {
		return nil, err
	}
	sh, err := index(short, "short")
	if err != nil {
		return nil, err
	}
	lg, err := index(long, "long")
	if err != nil {
		return nil, err
	}

	out := make(model.Series, 0, len(sig))
	for d, sv := range sig {
		s, ok := sh[d]
		if !ok {
			continue
		}
		l, ok := lg[d]
		if !ok {
			continue
		}
		out = append(out, model.Observation{Date: d, Signal: sv, Short: s, Long: l})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func index(pts []model.Point, name string) (map[time.Time]float64, error) {
	m := make(map[time.Time]float64, len(pts))
	for i, p := range pts {
		d := p.Date.UTC()
		if _, dup := m[d]; dup {
			return nil, &model.MisalignedSeriesError{Index: i, Date: d, Reason: name + " has a duplicate date"}
		}
		m[d] = p.Value
	}
	return m, nil
}

// Truncate keeps rows with start <= date <= end. A zero bound is open.
func Truncate(series model.Series, start, end time.Time) model.Series {
	lo := 0
	if !start.IsZero() {
		lo = sort.Search(len(series), func(i int) bool { return !series[i].Date.Before(start) })
	}
	hi := len(series)
	if !end.IsZero() {
		hi = sort.Search(len(series), func(i int) bool { return series[i].Date.After(end) })
	}
	if lo >= hi {
		return model.Series{}
	}
	out := make(model.Series, hi-lo)
	copy(out, series[lo:hi])
	return out
}

// LoadSeries reads the three index files under dir, aligns and truncates
// them. Relative file names resolve against dir.
func LoadSeries(dir string, src Sources, start, end time.Time) (model.Series, error) {
	load := func(s Source) ([]model.Point, error) {
		path := s.File
		if !filepath.IsAbs(path) && dir != "" {
			path = filepath.Join(dir, path)
		}
		pts, err := LoadIndexCSV(path, s.Column)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", s.Name, err)
		}
		return pts, nil
	}

	signal, err := load(src.Signal)
	if err != nil {
		return nil, err
	}
	short, err := load(src.Short)
	if err != nil {
		return nil, err
	}
	long, err := load(src.Long)
	if err != nil {
		return nil, err
	}

	series, err := Align(signal, short, long)
	if err != nil {
		return nil, err
	}
	return Truncate(series, start, end), nil
}
