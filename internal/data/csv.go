package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"basket-backtest/internal/model"
)

// ParseDailyCSV reads a `date,price` CSV. Columns are matched by header name,
// case-insensitively, in any order; extra columns are ignored.
func ParseDailyCSV(r io.Reader) (model.Series, error) {
	rows, cols, err := readCSV(r, "date", "price")
	if err != nil {
		return model.Series{}, err
	}
	obs := make([]model.PriceObservation, 0, len(rows))
	for _, row := range rows {
		t, err := ParseTime(row.field(cols["date"]))
		if err != nil {
			return model.Series{}, fmt.Errorf("line %d: %w", row.line, err)
		}
		price, err := row.float(cols["price"], "price")
		if err != nil {
			return model.Series{}, err
		}
		obs = append(obs, model.PriceObservation{Time: t, Price: price})
	}
	obs, err = sortObservations(obs)
	if err != nil {
		return model.Series{}, err
	}
	return model.Series{Resolution: model.Daily, Observations: obs}, nil
}

// ParseHourlyCSV reads a `datetime,open,high,low,close,volume` CSV.
func ParseHourlyCSV(r io.Reader) ([]model.Candle, error) {
	rows, cols, err := readCSV(r, "datetime", "open", "high", "low", "close", "volume")
	if err != nil {
		return nil, err
	}
	candles := make([]model.Candle, 0, len(rows))
	for _, row := range rows {
		t, err := ParseTime(row.field(cols["datetime"]))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", row.line, err)
		}
		c := model.Candle{Time: t}
		for _, f := range []struct {
			name string
			dst  *float64
		}{
			{"open", &c.Open},
			{"high", &c.High},
			{"low", &c.Low},
			{"close", &c.Close},
			{"volume", &c.Volume},
		} {
			v, err := row.float(cols[f.name], f.name)
			if err != nil {
				return nil, err
			}
			*f.dst = v
		}
		candles = append(candles, c)
	}
	sort.SliceStable(candles, func(i, j int) bool { return candles[i].Time.Before(candles[j].Time) })
	for i := 1; i < len(candles); i++ {
		if candles[i].Time.Equal(candles[i-1].Time) {
			return nil, fmt.Errorf("duplicate timestamp %s", candles[i].Time.Format("2006-01-02 15:04:05"))
		}
	}
	return candles, nil
}

// LoadDailyCSV reads a daily series from disk.
func LoadDailyCSV(path string) (model.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Series{}, err
	}
	defer f.Close()
	s, err := ParseDailyCSV(f)
	if err != nil {
		return model.Series{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// LoadHourlyCSV reads hourly candles from disk.
func LoadHourlyCSV(path string) ([]model.Candle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c, err := ParseHourlyCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// ParseSeries dispatches on resolution; hourly candles are priced at close.
func ParseSeries(r io.Reader, res model.Resolution) (model.Series, error) {
	switch res {
	case model.Daily:
		return ParseDailyCSV(r)
	case model.Hourly:
		candles, err := ParseHourlyCSV(r)
		if err != nil {
			return model.Series{}, err
		}
		return model.SeriesFromCandles(candles), nil
	default:
		return model.Series{}, fmt.Errorf("%w: unknown resolution %q", model.ErrInvalidInput, res)
	}
}

type csvRow struct {
	line   int
	fields []string
}

func (r csvRow) field(i int) string {
	if i < 0 || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

func (r csvRow) float(i int, name string) (float64, error) {
	v, err := strconv.ParseFloat(r.field(i), 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: invalid %s %q", r.line, name, r.field(i))
	}
	return v, nil
}

func readCSV(r io.Reader, required ...string) ([]csvRow, map[string]int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("empty csv")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, nil, fmt.Errorf("missing column %q", name)
		}
	}

	var rows []csvRow
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		line, _ := cr.FieldPos(0)
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		rows = append(rows, csvRow{line: line, fields: rec})
	}
	return rows, cols, nil
}

func sortObservations(obs []model.PriceObservation) ([]model.PriceObservation, error) {
	sort.SliceStable(obs, func(i, j int) bool { return obs[i].Time.Before(obs[j].Time) })
	for i := 1; i < len(obs); i++ {
		if obs[i].Time.Equal(obs[i-1].Time) {
			return nil, fmt.Errorf("duplicate timestamp %s", obs[i].Time.Format("2006-01-02 15:04:05"))
		}
	}
	return obs, nil
}
