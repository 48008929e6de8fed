package strategy

import "basket-backtest/internal/model"

// StaticSplit puts half in the asset and half in a yield-bearing cash leg and
// never rebalances; the legs drift apart with price and yield.
type StaticSplit struct{}

func (StaticSplit) Kind() model.StrategyKind { return model.KindStaticSplit }

func (StaticSplit) Name() string { return "50/50 no rebalance" }

func (StaticSplit) Perform(series model.Series, params model.StrategyParams) model.Trajectory {
	return StaticSplitPerformance(series, params.InitialInvestment, params.AssetYieldPercent, params.CashYieldPercent)
}

// StaticSplitPerformance accrues yield on asset units (quantity) and on the
// cash value once per step after the first.
func StaticSplitPerformance(series model.Series, investment, assetYieldPct, cashYieldPct float64) model.Trajectory {
	if !runnable(series, investment) {
		return model.Trajectory{}
	}
	assetGrowth := 1 + StepRate(assetYieldPct, series.Resolution)
	cashGrowth := 1 + StepRate(cashYieldPct, series.Resolution)

	half := investment / 2
	units := half / series.First().Price
	cash := half

	out := make(model.Trajectory, series.Len())
	for i, obs := range series.Observations {
		if i > 0 {
			units *= assetGrowth
			cash *= cashGrowth
		}
		out[i] = model.ValuePoint{Time: obs.Time, Value: units*obs.Price + cash}
	}
	return out
}

// RebalancedSplit is StaticSplit plus a periodic reset of both legs to equal
// value. See rebalanceSchedule for the cadence.
type RebalancedSplit struct{}

func (RebalancedSplit) Kind() model.StrategyKind { return model.KindRebalanced }

func (RebalancedSplit) Name() string { return "50/50 rebalanced" }

func (RebalancedSplit) Perform(series model.Series, params model.StrategyParams) model.Trajectory {
	return RebalancedSplitPerformance(series, params.InitialInvestment, params.AssetYieldPercent, params.CashYieldPercent, params.RebalanceFrequencyPerDay)
}

// RebalancedSplitPerformance tracks both legs by value. Each step the asset
// leg moves with price[i]/price[i-1] and accrues its yield, the cash leg
// accrues its yield, and if a rebalance is due both legs are reset to half of
// the new total. frequencyPerDay only matters for hourly series.
func RebalancedSplitPerformance(series model.Series, investment, assetYieldPct, cashYieldPct float64, frequencyPerDay int) model.Trajectory {
	if !runnable(series, investment) {
		return model.Trajectory{}
	}
	assetGrowth := 1 + StepRate(assetYieldPct, series.Resolution)
	cashGrowth := 1 + StepRate(cashYieldPct, series.Resolution)
	schedule := newRebalanceSchedule(series.Resolution, frequencyPerDay)

	total := investment
	assetValue := total / 2
	cashValue := total / 2

	out := make(model.Trajectory, series.Len())
	for i, obs := range series.Observations {
		if i > 0 {
			units := assetValue / series.Observations[i-1].Price
			assetValue = units * obs.Price * assetGrowth
			cashValue *= cashGrowth
			total = assetValue + cashValue

			if schedule.due(i, obs.Time) {
				half := total / 2
				assetValue = half
				cashValue = half
			}
		}
		out[i] = model.ValuePoint{Time: obs.Time, Value: total}
	}
	return out
}
