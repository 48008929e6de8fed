package backtest

import (
	"fmt"

	"basket-backtest/internal/analysis"
	"basket-backtest/internal/data"
	"basket-backtest/internal/model"
	"basket-backtest/internal/strategy"
)

type Engine struct{}

func New() *Engine { return &Engine{} }

// Run filters the series to the window, runs all three strategies on the same
// input, combines them and summarizes. Bad parameters fail with an error
// wrapping model.ErrInvalidInput; an empty window fails with model.ErrNoData.
func (e *Engine) Run(in model.BacktestInputs) (*Result, error) {
	res := in.Series.Resolution
	if !res.Valid() {
		return nil, fmt.Errorf("%w: unknown resolution %q", model.ErrInvalidInput, res)
	}
	if err := in.Params.Validate(); err != nil {
		return nil, err
	}
	if !in.Start.IsZero() && !in.End.IsZero() && in.Start.After(in.End) {
		return nil, fmt.Errorf("%w: start date must not be after end date", model.ErrInvalidInput)
	}

	filtered := data.FilterRange(in.Series, in.Start, in.End)
	if filtered.Empty() {
		return nil, model.ErrNoData
	}

	params := in.Params
	params.RebalanceFrequencyPerDay = params.EffectiveRebalanceFrequency()

	trajectories := make(map[model.StrategyKind]model.Trajectory, len(model.Kinds))
	for _, s := range strategy.All() {
		trajectories[s.Kind()] = s.Perform(filtered, params)
	}
	full := trajectories[model.KindFullAsset]
	static := trajectories[model.KindStaticSplit]
	rebalanced := trajectories[model.KindRebalanced]
	if len(full) == 0 {
		return nil, fmt.Errorf("%w: strategies produced no values", model.ErrInvalidInput)
	}

	raw := Combine(full, static, rebalanced, false)
	display := raw
	if in.ResampleDaily && res == model.Hourly {
		display = ResampleDaily(raw)
	}

	summary := analysis.Summarize(raw, res)
	return &Result{
		Resolution:   res,
		Params:       params,
		Window:       Window{Start: filtered.First().Time, End: filtered.Last().Time, Points: filtered.Len()},
		Trajectories: trajectories,
		Combined:     display,
		Summary:      summary,
		Ranking:      analysis.RankByTotalReturn(summary),
	}, nil
}
