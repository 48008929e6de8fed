package analysis

import (
	"math"
	"sort"

	"basket-backtest/internal/model"
)

type Ranked struct {
	Rank int
	StrategyStats
}

// RankByTotalReturn sorts strategies descending by total return. Non-finite
// returns sort last; ties keep strategy order.
func RankByTotalReturn(s *Summary) []Ranked {
	if s == nil {
		return nil
	}
	out := make([]Ranked, 0, len(s.Strategies))
	for _, st := range s.Strategies {
		out = append(out, Ranked{StrategyStats: st})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].TotalReturnPercent, out[j].TotalReturnPercent
		if !finite(a) || !finite(b) {
			return finite(a) && !finite(b)
		}
		return a > b
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// Best returns the top-ranked strategy kind, or "" for an empty summary.
func Best(s *Summary) model.StrategyKind {
	r := RankByTotalReturn(s)
	if len(r) == 0 {
		return ""
	}
	return r[0].Kind
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
