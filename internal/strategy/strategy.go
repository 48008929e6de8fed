package strategy

import (
	"math"

	"basket-backtest/internal/model"
)

// Strategy turns a price series into a value trajectory. Implementations are
// pure: they never mutate the series and return a freshly allocated result.
type Strategy interface {
	Kind() model.StrategyKind
	Name() string
	Perform(series model.Series, params model.StrategyParams) model.Trajectory
}

// All returns the three basket strategies in display order.
func All() []Strategy {
	return []Strategy{FullAsset{}, StaticSplit{}, RebalancedSplit{}}
}

// ByKind looks up a strategy by its stable identifier.
func ByKind(kind model.StrategyKind) (Strategy, bool) {
	for _, s := range All() {
		if s.Kind() == kind {
			return s, true
		}
	}
	return nil, false
}

// runnable reports whether an engine can produce a trajectory. Engines return
// an empty trajectory otherwise; callers must treat that as "cannot proceed".
func runnable(series model.Series, investment float64) bool {
	return !series.Empty() && investment > 0 && !math.IsInf(investment, 1)
}
