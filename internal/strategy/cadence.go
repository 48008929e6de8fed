package strategy

import (
	"math"
	"time"

	"basket-backtest/internal/model"
)

// rebalanceSchedule decides after which steps the rebalanced strategy resets
// its legs. It carries per-run state (lastHour), so build one per run.
//
// Rules:
// - daily series: every step.
// - hourly, frequency 1: every 24th observation (index % 24 == 0), counted
//   from the start of the series rather than the wall clock.
// - hourly, frequency > 1: when the hour of day is a multiple of 24/frequency
//   and differs from the hour of the previous rebalance. lastHour starts at 0,
//   so the first midnight after the start does not qualify until another hour
//   has rebalanced.
type rebalanceSchedule struct {
	resolution   model.Resolution
	frequency    int
	hoursBetween float64
	lastHour     int
}

func newRebalanceSchedule(res model.Resolution, frequencyPerDay int) *rebalanceSchedule {
	f := model.ClampRebalanceFrequency(frequencyPerDay)
	return &rebalanceSchedule{
		resolution:   res,
		frequency:    f,
		hoursBetween: float64(model.HoursPerDay) / float64(f),
	}
}

// due reports whether step i, observed at t, ends with a rebalance.
// Index 0 never does.
func (s *rebalanceSchedule) due(i int, t time.Time) bool {
	if i == 0 {
		return false
	}
	if s.resolution != model.Hourly {
		return true
	}
	if s.frequency == 1 {
		return i%model.HoursPerDay == 0
	}
	// 24/frequency is fractional for most frequencies (24/5 = 4.8), so only
	// hours landing exactly on that grid qualify.
	h := t.Hour()
	if math.Mod(float64(h), s.hoursBetween) != 0 || h == s.lastHour {
		return false
	}
	s.lastHour = h
	return true
}
