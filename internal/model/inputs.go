package model

import "time"

// BacktestInputs is everything one run consumes: the loaded series, the
// strategy parameters and the window to evaluate.
//
// Start/End are inclusive; a zero time leaves that side open.
type BacktestInputs struct {
	Series        Series
	Params        StrategyParams
	Start         time.Time
	End           time.Time
	ResampleDaily bool
}
