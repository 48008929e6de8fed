package analysis

import (
	"math"
	"testing"

	"basket-backtest/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankByTotalReturn(t *testing.T) {
	s := &Summary{Strategies: []StrategyStats{
		{Kind: model.KindFullAsset, TotalReturnPercent: 5},
		{Kind: model.KindStaticSplit, TotalReturnPercent: math.NaN()},
		{Kind: model.KindRebalanced, TotalReturnPercent: 12},
	}}
	got := RankByTotalReturn(s)
	require.Len(t, got, 3)
	assert.Equal(t, model.KindRebalanced, got[0].Kind)
	assert.Equal(t, 1, got[0].Rank)
	assert.Equal(t, model.KindFullAsset, got[1].Kind)
	assert.Equal(t, model.KindStaticSplit, got[2].Kind)
	assert.Equal(t, 3, got[2].Rank)

	assert.Equal(t, model.KindRebalanced, Best(s))
	assert.Nil(t, RankByTotalReturn(nil))
	assert.Equal(t, model.StrategyKind(""), Best(nil))
}

func TestRankByTotalReturn_TiesKeepOrder(t *testing.T) {
	s := &Summary{Strategies: []StrategyStats{
		{Kind: model.KindFullAsset, TotalReturnPercent: 1},
		{Kind: model.KindStaticSplit, TotalReturnPercent: 1},
	}}
	got := RankByTotalReturn(s)
	assert.Equal(t, model.KindFullAsset, got[0].Kind)
	assert.Equal(t, model.KindStaticSplit, got[1].Kind)
}
