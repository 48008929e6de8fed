package model

import "time"

// ValuePoint is total portfolio value at one timestamp.
type ValuePoint struct {
	Time  time.Time
	Value float64
}

// Trajectory is one strategy's value over time, one point per observation.
type Trajectory []ValuePoint

// Values returns the bare value column.
func (t Trajectory) Values() []float64 {
	out := make([]float64, len(t))
	for i, p := range t {
		out[i] = p.Value
	}
	return out
}

// CombinedPoint is one row of the three strategies aligned by position.
type CombinedPoint struct {
	Time        time.Time
	FullAsset   float64
	StaticSplit float64
	Rebalanced  float64
}

// Value returns the column for kind, or 0 for an unknown kind.
func (p CombinedPoint) Value(kind StrategyKind) float64 {
	switch kind {
	case KindFullAsset:
		return p.FullAsset
	case KindStaticSplit:
		return p.StaticSplit
	case KindRebalanced:
		return p.Rebalanced
	default:
		return 0
	}
}

type CombinedTrajectory []CombinedPoint

// Column extracts one strategy's values.
func (c CombinedTrajectory) Column(kind StrategyKind) []float64 {
	out := make([]float64, len(c))
	for i, p := range c {
		out[i] = p.Value(kind)
	}
	return out
}
