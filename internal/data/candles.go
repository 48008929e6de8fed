package data

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"time"

	"basket-backtest/internal/model"
)

// GroupHourlyToDaily folds intraday candles into one candle per UTC calendar
// day: first open, highest high, lowest low, last close, summed volume.
// Input must be chronological; days come out in the order first seen.
func GroupHourlyToDaily(candles []model.Candle) []model.Candle {
	var out []model.Candle
	index := map[string]int{}
	for _, c := range candles {
		key := c.Time.UTC().Format("2006-01-02")
		i, ok := index[key]
		if !ok {
			day := c.Time.UTC().Truncate(24 * time.Hour)
			index[key] = len(out)
			out = append(out, model.Candle{
				Time:   day,
				Open:   c.Open,
				High:   c.High,
				Low:    c.Low,
				Close:  c.Close,
				Volume: c.Volume,
			})
			continue
		}
		d := &out[i]
		d.High = math.Max(d.High, c.High)
		d.Low = math.Min(d.Low, c.Low)
		d.Close = c.Close
		d.Volume += c.Volume
	}
	return out
}

// DailySeriesFromCandles prices each daily candle at its close.
func DailySeriesFromCandles(daily []model.Candle) model.Series {
	s := model.SeriesFromCandles(daily)
	s.Resolution = model.Daily
	return s
}

// WriteDailyCSV writes daily candles as `date,price` (close), or as full
// `date,open,high,low,close,volume` rows when ohlcv is set. The plain form
// reads back with ParseDailyCSV.
func WriteDailyCSV(out io.Writer, daily []model.Candle, ohlcv bool) error {
	w := csv.NewWriter(out)
	header := []string{"date", "price"}
	if ohlcv {
		header = []string{"date", "open", "high", "low", "close", "volume"}
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, c := range daily {
		date := c.Time.UTC().Format("2006-01-02")
		row := []string{date, formatPrice(c.Close)}
		if ohlcv {
			row = []string{date, formatPrice(c.Open), formatPrice(c.High), formatPrice(c.Low), formatPrice(c.Close), formatPrice(c.Volume)}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatPrice(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
