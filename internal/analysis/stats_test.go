package analysis

import (
	"math"
	"testing"
	"time"

	"basket-backtest/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func combinedOf(res model.Resolution, values ...float64) model.CombinedTrajectory {
	step := 24 * time.Hour
	if res == model.Hourly {
		step = time.Hour
	}
	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make(model.CombinedTrajectory, len(values))
	for i, v := range values {
		out[i] = model.CombinedPoint{Time: start.Add(time.Duration(i) * step), FullAsset: v, StaticSplit: v, Rebalanced: v}
	}
	return out
}

func TestSummarize_Daily(t *testing.T) {
	s := Summarize(combinedOf(model.Daily, 10000, 11000, 9900), model.Daily)
	require.NotNil(t, s)
	assert.Equal(t, 10000.0, s.InitialValue)
	assert.Equal(t, 3, s.Points)
	require.Len(t, s.Strategies, 3)

	st, ok := s.Strategy(model.KindFullAsset)
	require.True(t, ok)
	assert.Equal(t, 9900.0, st.FinalValue)
	assert.InDelta(t, -1.0, st.TotalReturnPercent, 1e-9)
	assert.InDelta(t, -1.0/(3.0/365.0), st.AnnualizedReturnPercent, 1e-9)
	assert.Greater(t, st.VolatilityPercent, 0.0)
	assert.InDelta(t, 0.1*math.Sqrt(365)*100, st.VolatilityPercent, 1e-6)
	assert.Nil(t, st.Risk)
}

func TestSummarize_InitialFromFullAsset(t *testing.T) {
	c := model.CombinedTrajectory{
		{FullAsset: 100, StaticSplit: 200, Rebalanced: 50},
		{FullAsset: 110, StaticSplit: 220, Rebalanced: 100},
	}
	s := Summarize(c, model.Daily)
	require.NotNil(t, s)

	static, _ := s.Strategy(model.KindStaticSplit)
	assert.InDelta(t, 120.0, static.TotalReturnPercent, 1e-9)
	rebal, _ := s.Strategy(model.KindRebalanced)
	assert.InDelta(t, 0.0, rebal.TotalReturnPercent, 1e-9)
}

func TestSummarize_Hourly(t *testing.T) {
	s := Summarize(combinedOf(model.Hourly, 100, 110, 99), model.Hourly)
	require.NotNil(t, s)

	st, _ := s.Strategy(model.KindRebalanced)
	require.NotNil(t, st.Risk)
	assert.InDelta(t, 10.0, st.Risk.MaxDrawdownPercent, 1e-9)
	wantVol := 0.1 * math.Sqrt(8760) * 100
	assert.InDelta(t, wantVol, st.VolatilityPercent, 1e-6)
	assert.InDelta(t, -2/wantVol, st.Risk.SharpeRatio, 1e-6)
}

func TestSummarize_Degenerate(t *testing.T) {
	assert.Nil(t, Summarize(nil, model.Daily))

	one := Summarize(combinedOf(model.Hourly, 100), model.Hourly)
	require.NotNil(t, one)
	st := one.Strategies[0]
	assert.Equal(t, 0.0, st.TotalReturnPercent)
	assert.True(t, math.IsNaN(st.VolatilityPercent))
	assert.True(t, math.IsNaN(st.Risk.SharpeRatio))
	assert.Equal(t, 0.0, st.Risk.MaxDrawdownPercent)

	flat := Summarize(combinedOf(model.Hourly, 100, 100, 100), model.Hourly)
	assert.Equal(t, 0.0, flat.Strategies[0].VolatilityPercent)
	assert.True(t, math.IsNaN(flat.Strategies[0].Risk.SharpeRatio))

	zero := Summarize(combinedOf(model.Daily, 0, 10), model.Daily)
	assert.True(t, math.IsInf(zero.Strategies[0].TotalReturnPercent, 1))
}

func TestMaxDrawdownPercent(t *testing.T) {
	assert.InDelta(t, 25.0, MaxDrawdownPercent([]float64{100, 120, 90, 130, 117}), 1e-9)
	assert.Equal(t, 0.0, MaxDrawdownPercent([]float64{1, 2, 3}))
	assert.Equal(t, 0.0, MaxDrawdownPercent(nil))
}

func TestStepReturns(t *testing.T) {
	assert.Nil(t, StepReturns([]float64{1}))
	got := StepReturns([]float64{100, 150, 75})
	assert.InDeltaSlice(t, []float64{0.5, -0.5}, got, 1e-12)
}
