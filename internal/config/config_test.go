package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"basket-backtest/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

const btcPreset = `asset:
  name: Bitcoin
  symbol: BTC
  data_file: ../data/btc.csv
  resolution: hourly
  asset_yield_percent: 0.3
  cash_yield_percent: 7
`

func TestLoad_MergesPresetAndDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "data", "btc.csv"), "datetime,open,high,low,close,volume\n")
	writeFile(t, filepath.Join(dir, "assets", "bitcoin.yaml"), btcPreset)
	writeFile(t, filepath.Join(dir, "run.yaml"), `asset_file: assets/bitcoin.yaml
asset:
  cash_yield_percent: 0
range:
  start: 2021-01-01
  end: 2021-06-30
`)

	c, err := Load(filepath.Join(dir, "run.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "Bitcoin", c.Asset.Name)
	assert.Equal(t, filepath.Join(dir, "assets", "..", "data", "btc.csv"), c.Asset.DataFile)
	assert.Equal(t, 10000.0, c.Strategy.InitialInvestment)
	assert.Equal(t, 1, c.Strategy.RebalanceFrequencyPerDay)
	require.NotNil(t, c.Output.ResampleDaily)
	assert.True(t, *c.Output.ResampleDaily)

	p := c.Params()
	assert.Equal(t, 0.3, p.AssetYieldPercent)
	assert.Equal(t, 0.0, p.CashYieldPercent)

	src, err := c.Source()
	require.NoError(t, err)
	assert.Equal(t, model.Hourly, src.Resolution)

	in, err := c.Inputs(model.Series{Resolution: model.Hourly})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), in.Start)
	assert.Equal(t, time.Date(2021, 6, 30, 0, 0, 0, 0, time.UTC), in.End)
	assert.True(t, in.ResampleDaily)
}

func TestLoad_ExplicitValues(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "run.yaml"), `asset:
  data_url: https://example.com/btc.csv
  resolution: daily
strategy:
  initial_investment: 2500
  rebalance_frequency_per_day: 4
output:
  resample_daily: false
`)
	c, err := Load(filepath.Join(dir, "run.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 2500.0, c.Strategy.InitialInvestment)
	assert.Equal(t, 4, c.Strategy.RebalanceFrequencyPerDay)
	assert.False(t, *c.Output.ResampleDaily)

	in, err := c.Inputs(model.Series{})
	require.NoError(t, err)
	assert.False(t, in.ResampleDaily)
	assert.True(t, in.Start.IsZero())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no source", "asset:\n  resolution: daily\n"},
		{"both sources", "asset:\n  data_file: a.csv\n  data_url: https://x/a.csv\n  resolution: daily\n"},
		{"bad resolution", "asset:\n  data_file: a.csv\n  resolution: weekly\n"},
		{"negative investment", "asset:\n  data_file: a.csv\n  resolution: daily\nstrategy:\n  initial_investment: -5\n"},
		{"frequency too high", "asset:\n  data_file: a.csv\n  resolution: daily\nstrategy:\n  rebalance_frequency_per_day: 30\n"},
		{"inverted range", "asset:\n  data_file: a.csv\n  resolution: daily\nrange:\n  start: 2022-01-01\n  end: 2021-01-01\n"},
		{"bad yield", "asset:\n  data_file: a.csv\n  resolution: daily\n  cash_yield_percent: -100\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "run.yaml")
			writeFile(t, path, tt.body)
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	writeFile(t, path, "asset_file: nope.yaml\n")
	_, err := LoadUnchecked(path)
	assert.Error(t, err)
}

func TestMergeAsset(t *testing.T) {
	base := AssetConfig{Name: "Bitcoin", DataFile: "btc.csv", Resolution: "hourly", AssetYieldPercent: Float(0.3)}

	got := MergeAsset(base, AssetConfig{DataURL: "https://x/btc.csv", AssetYieldPercent: Float(0)})
	assert.Equal(t, "Bitcoin", got.Name)
	assert.Empty(t, got.DataFile)
	assert.Equal(t, "https://x/btc.csv", got.DataURL)
	assert.Equal(t, 0.0, *got.AssetYieldPercent)
	assert.Nil(t, got.CashYieldPercent)

	same := MergeAsset(base, AssetConfig{})
	assert.Equal(t, base, same)
}
