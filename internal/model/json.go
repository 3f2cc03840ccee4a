package model

import (
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

type observationJSON struct {
	Date   string  `json:"date"`
	Signal float64 `json:"signal"`
	Short  float64 `json:"short"`
	Long   float64 `json:"long"`
}

// MarshalJSON writes the date as a calendar day.
func (o Observation) MarshalJSON() ([]byte, error) {
	return json.Marshal(observationJSON{
		Date:   o.Date.Format(dateLayout),
		Signal: o.Signal,
		Short:  o.Short,
		Long:   o.Long,
	})
}

// UnmarshalJSON accepts "2006-01-02" or RFC 3339 dates.
func (o *Observation) UnmarshalJSON(b []byte) error {
	var raw observationJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	var d time.Time
	if raw.Date != "" {
		var err error
		d, err = time.Parse(dateLayout, raw.Date)
		if err != nil {
			if d, err = time.Parse(time.RFC3339, raw.Date); err != nil {
				return fmt.Errorf("observation date %q: %w", raw.Date, err)
			}
			d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		}
	}
	*o = Observation{Date: d, Signal: raw.Signal, Short: raw.Short, Long: raw.Long}
	return nil
}
