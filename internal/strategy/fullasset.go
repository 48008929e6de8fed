package strategy

import "basket-backtest/internal/model"

// FullAsset holds the whole investment in the asset from the first observation.
type FullAsset struct{}

func (FullAsset) Kind() model.StrategyKind { return model.KindFullAsset }

func (FullAsset) Name() string { return "100% asset" }

func (FullAsset) Perform(series model.Series, params model.StrategyParams) model.Trajectory {
	return FullAssetPerformance(series, params.InitialInvestment)
}

// FullAssetPerformance buys investment/price[0] units and marks them to market
// at every observation. No yield, no rebalancing.
func FullAssetPerformance(series model.Series, investment float64) model.Trajectory {
	if !runnable(series, investment) {
		return model.Trajectory{}
	}
	units := investment / series.First().Price

	out := make(model.Trajectory, series.Len())
	for i, obs := range series.Observations {
		out[i] = model.ValuePoint{Time: obs.Time, Value: units * obs.Price}
	}
	return out
}
