package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"rotation-backtest/internal/model"
)

const dateColumn = "date"

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// LoadIndexCSV reads one index export: a "date" column plus at least one
// value column. An empty column picks the first non-date column.
func LoadIndexCSV(path, column string) ([]model.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pts, err := ParseIndexCSV(f, column)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pts, nil
}

// ParseIndexCSV is LoadIndexCSV over an open reader. Rows with an empty
// value cell are skipped; anything else that fails to parse is an error.
func ParseIndexCSV(r io.Reader, column string) ([]model.Point, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty file")
		}
		return nil, err
	}
	dateIdx, valIdx, err := locateColumns(header, column)
	if err != nil {
		return nil, err
	}

	var out []model.Point
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) <= dateIdx || len(rec) <= valIdx {
			return nil, fmt.Errorf("line %d: expected %d fields, got %d", line, len(header), len(rec))
		}
		raw := strings.TrimSpace(rec[valIdx])
		if raw == "" {
			continue
		}
		d, err := ParseDate(rec[dateIdx])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: value %q: %w", line, raw, err)
		}
		out = append(out, model.Point{Date: d, Value: v})
	}
	return out, nil
}

// ParseDate accepts ISO dates with or without a time part and truncates to
// the calendar day in UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable date %q", s)
}

func locateColumns(header []string, column string) (dateIdx, valIdx int, err error) {
	dateIdx, valIdx = -1, -1
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		switch {
		case strings.EqualFold(h, dateColumn):
			dateIdx = i
		case column != "" && h == column:
			valIdx = i
		case column == "" && valIdx < 0:
			valIdx = i
		}
	}
	if dateIdx < 0 {
		return 0, 0, fmt.Errorf("missing %q column", dateColumn)
	}
	if valIdx < 0 {
		if column == "" {
			return 0, 0, errors.New("no value column")
		}
		return 0, 0, fmt.Errorf("missing column %q", column)
	}
	return dateIdx, valIdx, nil
}
