package backtest

import (
	"time"

	"basket-backtest/internal/model"
)

// Combine aligns three trajectories by position. Timestamps come from full;
// a missing value in static or rebalanced at some index becomes 0. With
// resampleToDaily the result keeps the last record of each UTC day.
func Combine(full, static, rebalanced model.Trajectory, resampleToDaily bool) model.CombinedTrajectory {
	if len(full) == 0 {
		return model.CombinedTrajectory{}
	}
	out := make(model.CombinedTrajectory, len(full))
	for i, p := range full {
		out[i] = model.CombinedPoint{
			Time:        p.Time,
			FullAsset:   p.Value,
			StaticSplit: valueAt(static, i),
			Rebalanced:  valueAt(rebalanced, i),
		}
	}
	if resampleToDaily {
		return ResampleDaily(out)
	}
	return out
}

// ResampleDaily keeps one record per UTC calendar day, the day's last one,
// stamped with the day's start. Days appear in first-seen order.
func ResampleDaily(c model.CombinedTrajectory) model.CombinedTrajectory {
	out := make(model.CombinedTrajectory, 0, len(c)/24+1)
	index := make(map[time.Time]int)
	for _, p := range c {
		day := p.Time.UTC().Truncate(24 * time.Hour)
		row := p
		row.Time = day
		if i, ok := index[day]; ok {
			out[i] = row
			continue
		}
		index[day] = len(out)
		out = append(out, row)
	}
	return out
}

func valueAt(t model.Trajectory, i int) float64 {
	if i < len(t) {
		return t[i].Value
	}
	return 0
}
