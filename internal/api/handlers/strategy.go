package handlers

import (
	"net/http"

	"basket-backtest/internal/api/models"
	"basket-backtest/internal/model"
	"basket-backtest/internal/strategy"

	"github.com/gin-gonic/gin"
)

// StrategyHandler handles strategy-related requests
type StrategyHandler struct{}

// NewStrategyHandler creates a new strategy handler
func NewStrategyHandler() *StrategyHandler {
	return &StrategyHandler{}
}

var (
	investmentParam = models.ParameterInfo{
		Name:        "investment",
		Type:        "float",
		Description: "Initial investment in quote currency (must be > 0)",
		Default:     10000.0,
	}
	assetYieldParam = models.ParameterInfo{
		Name:        "asset_yield_percent",
		Type:        "float",
		Description: "Annual yield on the asset leg, compounded per step",
		Default:     0.0,
	}
	cashYieldParam = models.ParameterInfo{
		Name:        "cash_yield_percent",
		Type:        "float",
		Description: "Annual yield on the stable leg, compounded per step",
		Default:     0.0,
	}
	frequencyParam = models.ParameterInfo{
		Name:        "rebalance_frequency_per_day",
		Type:        "int",
		Description: "Rebalances per day on hourly data; daily data rebalances every step",
		Default:     1,
		Min:         model.MinRebalanceFrequency,
		Max:         model.MaxRebalanceFrequency,
	}
)

var strategyDescriptions = map[model.StrategyKind]string{
	model.KindFullAsset:   "Buy and hold: the whole investment buys asset units at the first price.",
	model.KindStaticSplit: "Half in the asset, half in a stable leg; each leg accrues its own yield and is never rebalanced.",
	model.KindRebalanced:  "Half in the asset, half in a stable leg, reset to 50/50 on the configured cadence.",
}

// ListStrategies handles GET /api/v1/strategies
func (h *StrategyHandler) ListStrategies(c *gin.Context) {
	all := strategy.All()
	out := make([]models.StrategyInfo, 0, len(all))
	for _, s := range all {
		info := models.StrategyInfo{
			Kind:        string(s.Kind()),
			Name:        s.Name(),
			Description: strategyDescriptions[s.Kind()],
			Parameters:  []models.ParameterInfo{investmentParam},
		}
		switch s.Kind() {
		case model.KindStaticSplit:
			info.Parameters = append(info.Parameters, assetYieldParam, cashYieldParam)
		case model.KindRebalanced:
			info.Parameters = append(info.Parameters, assetYieldParam, cashYieldParam, frequencyParam)
		}
		out = append(out, info)
	}
	c.JSON(http.StatusOK, gin.H{"strategies": out})
}
