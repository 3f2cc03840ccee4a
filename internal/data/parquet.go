package data

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"

	"rotation-backtest/internal/model"
)

// SeriesRecord is the on-disk schema of an aligned series snapshot.
type SeriesRecord struct {
	Date   int64   `parquet:"date,timestamp(millisecond)"` // Unix ms, UTC midnight
	Signal float64 `parquet:"signal"`
	Short  float64 `parquet:"short"`
	Long   float64 `parquet:"long"`
}

// WriteSeriesParquet stores an aligned series so later runs can skip CSV
// parsing and the join.
func WriteSeriesParquet(path string, series model.Series) error {
	records := make([]SeriesRecord, len(series))
	for i, o := range series {
		records[i] = SeriesRecord{
			Date:   o.Date.UnixMilli(),
			Signal: o.Signal,
			Short:  o.Short,
			Long:   o.Long,
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return parquet.WriteFile(path, records)
}

func ReadSeriesParquet(path string) (model.Series, error) {
	records, err := parquet.ReadFile[SeriesRecord](path)
	if err != nil {
		return nil, err
	}
	out := make(model.Series, len(records))
	for i, r := range records {
		out[i] = model.Observation{
			Date:   time.UnixMilli(r.Date).UTC(),
			Signal: r.Signal,
			Short:  r.Short,
			Long:   r.Long,
		}
	}
	return out, nil
}

// ReadSnapshot loads a series snapshot, picking the codec by extension.
func ReadSnapshot(path string) (model.Series, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		return ReadSeriesParquet(path)
	case ".json":
		return LoadObservationsJSON(path)
	default:
		return nil, fmt.Errorf("unsupported snapshot format %q", filepath.Ext(path))
	}
}

func WriteSnapshot(path string, series model.Series) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		return WriteSeriesParquet(path, series)
	case ".json":
		return WriteObservationsJSON(path, series)
	default:
		return fmt.Errorf("unsupported snapshot format %q", filepath.Ext(path))
	}
}
