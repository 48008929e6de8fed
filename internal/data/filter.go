package data

import (
	"time"

	"basket-backtest/internal/model"
)

// FilterRange keeps observations with start <= t <= end. A zero bound leaves
// that side open. The input series is not modified.
func FilterRange(s model.Series, start, end time.Time) model.Series {
	out := model.Series{Resolution: s.Resolution, Observations: make([]model.PriceObservation, 0, len(s.Observations))}
	for _, obs := range s.Observations {
		if inRange(obs.Time, start, end) {
			out.Observations = append(out.Observations, obs)
		}
	}
	return out
}

// FilterCandles is FilterRange for raw hourly candles.
func FilterCandles(candles []model.Candle, start, end time.Time) []model.Candle {
	out := make([]model.Candle, 0, len(candles))
	for _, c := range candles {
		if inRange(c.Time, start, end) {
			out = append(out, c)
		}
	}
	return out
}

func inRange(t, start, end time.Time) bool {
	if !start.IsZero() && t.Before(start) {
		return false
	}
	if !end.IsZero() && t.After(end) {
		return false
	}
	return true
}
