package backtest

import (
	"testing"
	"time"

	"basket-backtest/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func traj(start time.Time, step time.Duration, values ...float64) model.Trajectory {
	out := make(model.Trajectory, len(values))
	for i, v := range values {
		out[i] = model.ValuePoint{Time: start.Add(time.Duration(i) * step), Value: v}
	}
	return out
}

func TestCombine_AlignsByPosition(t *testing.T) {
	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	full := traj(start, 24*time.Hour, 1, 2, 3)
	static := traj(start.Add(time.Hour), 24*time.Hour, 10, 20, 30)
	rebal := traj(start, 24*time.Hour, 100, 200)

	got := Combine(full, static, rebal, false)
	require.Len(t, got, 3)
	assert.Equal(t, model.CombinedPoint{Time: start, FullAsset: 1, StaticSplit: 10, Rebalanced: 100}, got[0])
	assert.Equal(t, full[2].Time, got[2].Time)
	assert.Equal(t, 30.0, got[2].StaticSplit)
	assert.Equal(t, 0.0, got[2].Rebalanced)
}

func TestCombine_EmptyFirst(t *testing.T) {
	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	got := Combine(nil, traj(start, time.Hour, 1), nil, true)
	assert.Empty(t, got)
}

func TestCombine_ResampleKeepsLastOfDay(t *testing.T) {
	start := time.Date(2021, 1, 1, 22, 0, 0, 0, time.UTC)
	full := traj(start, time.Hour, 1, 2, 3, 4)
	got := Combine(full, full, full, true)

	require.Len(t, got, 2)
	assert.Equal(t, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), got[0].Time)
	assert.Equal(t, 2.0, got[0].FullAsset)
	assert.Equal(t, time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC), got[1].Time)
	assert.Equal(t, 4.0, got[1].Rebalanced)
}

func TestResampleDaily_UsesUTCDay(t *testing.T) {
	ny := time.FixedZone("EST", -5*3600)
	c := model.CombinedTrajectory{
		{Time: time.Date(2021, 1, 1, 20, 0, 0, 0, ny), FullAsset: 1},
		{Time: time.Date(2021, 1, 1, 18, 0, 0, 0, ny), FullAsset: 2},
	}
	got := ResampleDaily(c)
	require.Len(t, got, 2)
	assert.True(t, got[0].Time.Equal(time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.True(t, got[1].Time.Equal(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)))
}
