package analysis

import (
	"math"

	"basket-backtest/internal/model"

	"gonum.org/v1/gonum/stat"
)

// RiskFreeRatePercent is the annual rate subtracted in the Sharpe numerator.
const RiskFreeRatePercent = 2.0

// Risk holds metrics that are only computed for hourly series.
type Risk struct {
	MaxDrawdownPercent float64
	SharpeRatio        float64
}

// StrategyStats summarizes one value column of a combined trajectory.
type StrategyStats struct {
	Kind                    model.StrategyKind
	FinalValue              float64
	TotalReturnPercent      float64
	AnnualizedReturnPercent float64
	VolatilityPercent       float64
	Risk                    *Risk
}

// Summary is a read-only snapshot of a run. All percentages are already
// multiplied by 100.
type Summary struct {
	Resolution   model.Resolution
	Points       int
	InitialValue float64
	Strategies   []StrategyStats
}

// Strategy returns the stats for kind.
func (s *Summary) Strategy(kind model.StrategyKind) (StrategyStats, bool) {
	if s == nil {
		return StrategyStats{}, false
	}
	for _, st := range s.Strategies {
		if st.Kind == kind {
			return st, true
		}
	}
	return StrategyStats{}, false
}

// Summarize computes per-strategy statistics. The initial value of every
// strategy is taken from the full-asset column at index 0. An empty
// trajectory yields nil.
func Summarize(combined model.CombinedTrajectory, res model.Resolution) *Summary {
	if len(combined) == 0 {
		return nil
	}
	steps := res.StepsPerYear()
	initial := combined[0].FullAsset
	n := len(combined)

	out := &Summary{
		Resolution:   res,
		Points:       n,
		InitialValue: initial,
		Strategies:   make([]StrategyStats, 0, len(model.Kinds)),
	}
	for _, kind := range model.Kinds {
		values := combined.Column(kind)
		final := values[n-1]
		total := (final/initial - 1) * 100
		returns := StepReturns(values)
		mean, vol := annualizedVolatility(returns, steps)

		st := StrategyStats{
			Kind:                    kind,
			FinalValue:              final,
			TotalReturnPercent:      total,
			AnnualizedReturnPercent: total / (float64(n) / steps),
			VolatilityPercent:       vol,
		}
		if res == model.Hourly {
			st.Risk = &Risk{
				MaxDrawdownPercent: MaxDrawdownPercent(values),
				SharpeRatio:        sharpe(mean, vol, n, steps),
			}
		}
		out.Strategies = append(out.Strategies, st)
	}
	return out
}

// StepReturns returns value[i]/value[i-1] - 1 for i >= 1.
func StepReturns(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	out := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		out[i-1] = values[i]/values[i-1] - 1
	}
	return out
}

// annualizedVolatility returns the mean step return and the population
// standard deviation scaled to a yearly percentage.
func annualizedVolatility(returns []float64, stepsPerYear float64) (mean, volPercent float64) {
	if len(returns) == 0 {
		return math.NaN(), math.NaN()
	}
	mean, variance := stat.PopMeanVariance(returns, nil)
	return mean, math.Sqrt(variance) * math.Sqrt(stepsPerYear) * 100
}

// MaxDrawdownPercent tracks the running peak left to right and reports the
// largest (peak-value)/peak as a percentage.
func MaxDrawdownPercent(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	peak := values[0]
	maxDD := 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
		if dd := (peak - v) / peak; dd > maxDD || math.IsNaN(dd) {
			maxDD = dd
		}
	}
	return maxDD * 100
}

// sharpe compounds the mean step return to a yearly percentage. It is NaN
// for fewer than two points or zero volatility.
func sharpe(mean, volPercent float64, n int, stepsPerYear float64) float64 {
	if n < 2 || volPercent == 0 || math.IsNaN(volPercent) {
		return math.NaN()
	}
	annual := (math.Pow(1+mean, stepsPerYear) - 1) * 100
	return (annual - RiskFreeRatePercent) / volPercent
}
