package backtest

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"basket-backtest/internal/model"
)

// WriteCombinedCSV writes one row per combined point, creating parent
// directories as needed.
func WriteCombinedCSV(path string, rows model.CombinedTrajectory) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteCombined(f, rows)
}

func WriteCombined(out io.Writer, rows model.CombinedTrajectory) error {
	w := csv.NewWriter(out)

	header := []string{"time"}
	for _, k := range model.Kinds {
		header = append(header, string(k))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		row := []string{fmtTime(r.Time)}
		for _, k := range model.Kinds {
			row = append(row, fmtFloat(r.Value(k)))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
