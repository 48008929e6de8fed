package models

import (
	"math"
	"strconv"
	"time"
)

// Number is a float64 that encodes NaN and ±Inf as JSON null.
type Number float64

func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'f', -1, 64), nil
}

// NumberPtr is a convenience for optional numbers.
func NumberPtr(f float64) *Number {
	n := Number(f)
	return &n
}

// BacktestResponse represents the response from a backtest run
type BacktestResponse struct {
	ID         string          `json:"id"`
	Status     string          `json:"status"`
	Asset      AssetRef        `json:"asset"`
	Resolution string          `json:"resolution"`
	Window     TimeWindow      `json:"window"`
	Params     ParamsEcho      `json:"params"`
	Summary    BacktestSummary `json:"summary"`
	Ranking    []Ranking       `json:"ranking"`
	Trajectory []TrajectoryRow `json:"trajectory,omitempty"`
}

// AssetRef names the asset a run used.
type AssetRef struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
	Symbol string `json:"symbol,omitempty"`
}

// TimeWindow represents a time range
type TimeWindow struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Points int       `json:"points"`
}

// ParamsEcho reports the parameters the engines actually used.
type ParamsEcho struct {
	Investment               float64 `json:"investment"`
	AssetYieldPercent        float64 `json:"asset_yield_percent"`
	CashYieldPercent         float64 `json:"cash_yield_percent"`
	RebalanceFrequencyPerDay int     `json:"rebalance_frequency_per_day"`
	ResampleDaily            bool    `json:"resample_daily"`
}

// BacktestSummary contains aggregated backtest results
type BacktestSummary struct {
	InitialValue Number            `json:"initial_value"`
	Strategies   []StrategySummary `json:"strategies"`
}

// StrategySummary holds one strategy's statistics. Drawdown and Sharpe are
// present for hourly runs only.
type StrategySummary struct {
	Kind                    string  `json:"kind"`
	Label                   string  `json:"label"`
	Description             string  `json:"description"`
	FinalValue              Number  `json:"final_value"`
	TotalReturnPercent      Number  `json:"total_return_percent"`
	AnnualizedReturnPercent Number  `json:"annualized_return_percent"`
	VolatilityPercent       Number  `json:"volatility_percent"`
	MaxDrawdownPercent      *Number `json:"max_drawdown_percent,omitempty"`
	SharpeRatio             *Number `json:"sharpe_ratio,omitempty"`
}

// Ranking represents one ranked strategy
type Ranking struct {
	Rank               int    `json:"rank"`
	Kind               string `json:"kind"`
	Label              string `json:"label"`
	TotalReturnPercent Number `json:"total_return_percent"`
}

// TrajectoryRow is one combined point.
type TrajectoryRow struct {
	Time        time.Time `json:"time"`
	FullAsset   Number    `json:"full_asset"`
	StaticSplit Number    `json:"static_split"`
	Rebalanced  Number    `json:"rebalanced_split"`
}

// AssetInfo represents information about an asset preset
type AssetInfo struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Symbol            string   `json:"symbol"`
	Resolution        string   `json:"resolution"`
	Source            string   `json:"source"`
	AssetYieldPercent *float64 `json:"asset_yield_percent,omitempty"`
	CashYieldPercent  *float64 `json:"cash_yield_percent,omitempty"`
}

// StrategyInfo represents information about a strategy
type StrategyInfo struct {
	Kind        string          `json:"kind"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a strategy parameter
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "float", "int"
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
	Min         interface{} `json:"min,omitempty"`
	Max         interface{} `json:"max,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
