package backtest

import (
	"time"

	"basket-backtest/internal/analysis"
	"basket-backtest/internal/model"
)

// Window is the span actually covered after range filtering.
type Window struct {
	Start  time.Time
	End    time.Time
	Points int
}

// Result is the output of one run.
type Result struct {
	Resolution model.Resolution
	Params     model.StrategyParams
	Window     Window

	// Trajectories holds each strategy's full-resolution output.
	Trajectories map[model.StrategyKind]model.Trajectory

	// Combined is what gets displayed or written; resampled to days when
	// the run asked for it.
	Combined model.CombinedTrajectory

	// Summary is always computed on the unresampled combination.
	Summary *analysis.Summary
	Ranking []analysis.Ranked
}
