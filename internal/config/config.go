package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"basket-backtest/internal/data"
	"basket-backtest/internal/model"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load asset settings from a preset (e.g. examples/assets/*.yaml).
	// Fields set under Asset override the preset.
	AssetFile string         `yaml:"asset_file"`
	Asset     AssetConfig    `yaml:"asset"`
	Strategy  StrategyConfig `yaml:"strategy"`
	Range     RangeConfig    `yaml:"range"`
	Output    OutputConfig   `yaml:"output"`
}

type AssetConfig struct {
	Name       string `yaml:"name" json:"name"`
	Symbol     string `yaml:"symbol" json:"symbol"`
	DataFile   string `yaml:"data_file" json:"data_file,omitempty" validate:"required_without=DataURL,excluded_with=DataURL"`
	DataURL    string `yaml:"data_url" json:"data_url,omitempty" validate:"omitempty,url"`
	Resolution string `yaml:"resolution" json:"resolution" validate:"required"`

	// Pointers so an explicit 0 in a config overrides a preset's yield.
	AssetYieldPercent *float64 `yaml:"asset_yield_percent" json:"asset_yield_percent,omitempty" validate:"omitempty,gt=-100"`
	CashYieldPercent  *float64 `yaml:"cash_yield_percent" json:"cash_yield_percent,omitempty" validate:"omitempty,gt=-100"`
}

type StrategyConfig struct {
	InitialInvestment        float64 `yaml:"initial_investment" default:"10000" validate:"gt=0"`
	RebalanceFrequencyPerDay int     `yaml:"rebalance_frequency_per_day" default:"1" validate:"min=1,max=24"`
}

type RangeConfig struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

type OutputConfig struct {
	ResampleDaily *bool `yaml:"resample_daily" default:"true"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.ApplyDefaults(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	dir := filepath.Dir(path)
	c.Asset.DataFile = resolveRelative(dir, c.Asset.DataFile)

	if c.AssetFile != "" {
		loaded, err := LoadAssetFile(resolveRelative(dir, c.AssetFile))
		if err != nil {
			return nil, err
		}
		c.Asset = MergeAsset(loaded, c.Asset)
	}
	return &c, nil
}

// ApplyDefaults fills unset strategy and output fields.
func (c *Config) ApplyDefaults() error {
	return defaults.Set(c)
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config invalid: %w", err)
	}
	if _, err := model.ParseResolution(c.Asset.Resolution); err != nil {
		return fmt.Errorf("config invalid: asset.resolution: %w", err)
	}
	if _, _, err := c.Window(); err != nil {
		return fmt.Errorf("config invalid: %w", err)
	}
	return nil
}

// Params converts the config into engine parameters.
func (c *Config) Params() model.StrategyParams {
	return model.StrategyParams{
		InitialInvestment:        c.Strategy.InitialInvestment,
		AssetYieldPercent:        deref(c.Asset.AssetYieldPercent),
		CashYieldPercent:         deref(c.Asset.CashYieldPercent),
		RebalanceFrequencyPerDay: c.Strategy.RebalanceFrequencyPerDay,
	}
}

// Source names the price data for the loader.
func (c *Config) Source() (data.Source, error) {
	res, err := model.ParseResolution(c.Asset.Resolution)
	if err != nil {
		return data.Source{}, err
	}
	return data.Source{Path: c.Asset.DataFile, URL: c.Asset.DataURL, Resolution: res}, nil
}

// Window parses the optional range bounds.
func (c *Config) Window() (start, end time.Time, err error) {
	if start, err = data.ParseBound(c.Range.Start); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: range.start: %v", model.ErrInvalidInput, err)
	}
	if end, err = data.ParseBound(c.Range.End); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: range.end: %v", model.ErrInvalidInput, err)
	}
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: range.start is after range.end", model.ErrInvalidInput)
	}
	return start, end, nil
}

// Inputs assembles engine inputs around an already-loaded series.
func (c *Config) Inputs(series model.Series) (model.BacktestInputs, error) {
	start, end, err := c.Window()
	if err != nil {
		return model.BacktestInputs{}, err
	}
	resample := true
	if c.Output.ResampleDaily != nil {
		resample = *c.Output.ResampleDaily
	}
	return model.BacktestInputs{
		Series:        series,
		Params:        c.Params(),
		Start:         start,
		End:           end,
		ResampleDaily: resample,
	}, nil
}

type assetFileWrapper struct {
	Asset AssetConfig `yaml:"asset"`
}

// LoadAssetFile reads a preset. A relative data_file resolves against the
// preset's directory.
func LoadAssetFile(path string) (AssetConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return AssetConfig{}, err
	}
	var w assetFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return AssetConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	w.Asset.DataFile = resolveRelative(filepath.Dir(path), w.Asset.DataFile)
	return w.Asset, nil
}

// MergeAsset overlays set fields from override onto base. Setting a data
// source in override replaces both of base's source fields.
func MergeAsset(base, override AssetConfig) AssetConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.Symbol != "" {
		out.Symbol = override.Symbol
	}
	if override.DataFile != "" || override.DataURL != "" {
		out.DataFile = override.DataFile
		out.DataURL = override.DataURL
	}
	if override.Resolution != "" {
		out.Resolution = override.Resolution
	}
	if override.AssetYieldPercent != nil {
		out.AssetYieldPercent = override.AssetYieldPercent
	}
	if override.CashYieldPercent != nil {
		out.CashYieldPercent = override.CashYieldPercent
	}
	return out
}

// resolveRelative prefers interpreting p relative to dir, but falls back to
// p as given (relative to cwd) if that doesn't exist.
func resolveRelative(dir, p string) string {
	if p == "" || filepath.IsAbs(p) || data.IsURL(p) {
		return p
	}
	cand := filepath.Join(dir, p)
	if _, err := os.Stat(cand); err == nil {
		return cand
	}
	return p
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// Float is a helper for building configs in code.
func Float(v float64) *float64 { return &v }
