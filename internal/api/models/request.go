package models

// BacktestRequest represents the request body for running a backtest.
// Exactly one of AssetID or DataSource selects the price series.
type BacktestRequest struct {
	AssetID    string            `json:"asset_id,omitempty"`
	DataSource *DataSourceConfig `json:"data_source,omitempty"`
	StartDate  string            `json:"start_date,omitempty"` // YYYY-MM-DD, inclusive
	EndDate    string            `json:"end_date,omitempty"`   // YYYY-MM-DD, inclusive

	Investment               float64  `json:"investment" validate:"required,gt=0"`
	AssetYieldPercent        *float64 `json:"asset_yield_percent,omitempty" validate:"omitempty,gt=-100"`
	CashYieldPercent         *float64 `json:"cash_yield_percent,omitempty" validate:"omitempty,gt=-100"`
	RebalanceFrequencyPerDay int      `json:"rebalance_frequency_per_day" default:"1" validate:"min=1,max=24"`

	Options BacktestOptions `json:"options"`
}

// DataSourceConfig points at a CSV file under the server's data directory or
// at an http(s) URL.
type DataSourceConfig struct {
	Path       string `json:"path,omitempty" validate:"required_without=URL,excluded_with=URL"`
	URL        string `json:"url,omitempty" validate:"omitempty,url"`
	Resolution string `json:"resolution" validate:"required,oneof=daily hourly day hour 1d 1h"`
	Symbol     string `json:"symbol,omitempty"`
}

// BacktestOptions contains optional backtest parameters
type BacktestOptions struct {
	ResampleDaily     *bool `json:"resample_daily,omitempty" default:"true"`
	IncludeTrajectory bool  `json:"include_trajectory,omitempty"`
}
