package report

import (
	"fmt"
	"strings"

	"basket-backtest/internal/model"

	"github.com/shopspring/decimal"
)

// Labels derives display names for the three strategies from run settings.
type Labels struct {
	Symbol     string
	Stable     string
	AssetYield float64
	CashYield  float64
	Frequency  int
	Resolution model.Resolution
}

// NewLabels fills in display defaults: "Asset" for a missing symbol, USDC
// for the stable leg.
func NewLabels(symbol string, params model.StrategyParams, res model.Resolution) Labels {
	if symbol == "" {
		symbol = "Asset"
	}
	return Labels{
		Symbol:     strings.ToUpper(symbol),
		Stable:     "USDC",
		AssetYield: params.AssetYieldPercent,
		CashYield:  params.CashYieldPercent,
		Frequency:  params.EffectiveRebalanceFrequency(),
		Resolution: res,
	}
}

// Short is the table label, e.g. "50/50 4x Daily Rebalance".
func (l Labels) Short(kind model.StrategyKind) string {
	switch kind {
	case model.KindFullAsset:
		return "100% " + l.Symbol
	case model.KindStaticSplit:
		return "50/50 No Rebalance"
	case model.KindRebalanced:
		return "50/50 " + l.cadence() + " Rebalance"
	default:
		return string(kind)
	}
}

// Long is the legend label naming both legs and their yields.
func (l Labels) Long(kind model.StrategyKind) string {
	split := fmt.Sprintf("50%% %s (%s%% APY) / 50%% %s (%s%% APY)",
		l.Symbol, trimFloat(l.AssetYield), l.Stable, trimFloat(l.CashYield))
	switch kind {
	case model.KindFullAsset:
		return "100% " + l.Symbol
	case model.KindStaticSplit:
		return split
	case model.KindRebalanced:
		return split + " + (" + l.cadence() + " Rebalance)"
	default:
		return string(kind)
	}
}

func (l Labels) cadence() string {
	if l.Resolution == model.Hourly && l.Frequency > 1 {
		return fmt.Sprintf("%dx Daily", l.Frequency)
	}
	return "Daily"
}

func trimFloat(v float64) string {
	if !finite(v) {
		return "n/a"
	}
	return decimal.NewFromFloat(v).String()
}
