package backtest

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"time"
)

func WriteLedgerCSV(path string, ledger []LedgerRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeLedgerCSV(f, ledger)
}

func EncodeLedgerCSV(out io.Writer, ledger []LedgerRow) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	header := []string{
		"index",
		"date",
		"signal_value",
		"short_price",
		"long_price",
		"signal_regime",
		"held_regime",
		"rotated",
		"units",
		"value",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range ledger {
		row := []string{
			strconv.Itoa(r.Index),
			fmtDate(r.Date),
			fmtFloat(r.SignalValue),
			fmtFloat(r.ShortPrice),
			fmtFloat(r.LongPrice),
			string(r.Regime),
			string(r.Held),
			strconv.FormatBool(r.Rotated),
			fmtFloat(r.Units),
			fmtFloat(r.Value),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
