package data

import (
	"encoding/json"
	"os"

	"rotation-backtest/internal/model"
)

// LoadObservationsJSON reads a JSON array of aligned rows, the same shape the
// HTTP API accepts inline.
func LoadObservationsJSON(path string) (model.Series, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var series model.Series
	if err := json.Unmarshal(raw, &series); err != nil {
		return nil, err
	}
	return series, nil
}

func WriteObservationsJSON(path string, series model.Series) error {
	raw, err := json.MarshalIndent(series, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
