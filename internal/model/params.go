package model

import (
	"fmt"
	"math"
)

// Rebalance frequency bounds for intraday series.
const (
	MinRebalanceFrequency = 1
	MaxRebalanceFrequency = 24
)

// StrategyParams configures a backtest run. Units:
// - InitialInvestment: quote currency, > 0
// - yields: annual percent (7 means 7% APY), may be zero or negative
// - RebalanceFrequencyPerDay: rebalances per day for hourly series (1..24);
//   daily series always rebalance once per step
type StrategyParams struct {
	InitialInvestment        float64
	AssetYieldPercent        float64
	CashYieldPercent         float64
	RebalanceFrequencyPerDay int
}

func (p StrategyParams) Validate() error {
	if !(p.InitialInvestment > 0) || math.IsInf(p.InitialInvestment, 1) {
		return fmt.Errorf("%w: initial investment must be > 0", ErrInvalidInput)
	}
	if math.IsNaN(p.AssetYieldPercent) || math.IsNaN(p.CashYieldPercent) {
		return fmt.Errorf("%w: yields must be numbers", ErrInvalidInput)
	}
	if p.AssetYieldPercent <= -100 || p.CashYieldPercent <= -100 {
		return fmt.Errorf("%w: yields must be greater than -100%%", ErrInvalidInput)
	}
	return nil
}

// EffectiveRebalanceFrequency applies the out-of-range fallback to once per day.
func (p StrategyParams) EffectiveRebalanceFrequency() int {
	return ClampRebalanceFrequency(p.RebalanceFrequencyPerDay)
}

// ClampRebalanceFrequency maps values outside [1, 24] to 1.
func ClampRebalanceFrequency(f int) int {
	if f < MinRebalanceFrequency || f > MaxRebalanceFrequency {
		return MinRebalanceFrequency
	}
	return f
}
