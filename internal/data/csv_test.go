package data

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"basket-backtest/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDailyCSV(t *testing.T) {
	in := "Price,Date\n110,2021-01-02\n100,2021-01-01\n\n121,2021-01-03\n"
	s, err := ParseDailyCSV(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, model.Daily, s.Resolution)
	require.Equal(t, 3, s.Len())
	assert.Equal(t, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), s.First().Time)
	assert.Equal(t, []float64{100, 110, 121}, []float64{
		s.Observations[0].Price, s.Observations[1].Price, s.Observations[2].Price,
	})
}

func TestParseDailyCSV_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", "empty csv"},
		{"missing column", "date,close\n2021-01-01,1\n", `missing column "price"`},
		{"bad price", "date,price\n2021-01-01,abc\n", "line 2: invalid price"},
		{"bad date", "date,price\n01/02/2021,1\n", "line 2: unrecognized timestamp"},
		{"duplicate", "date,price\n2021-01-01,1\n2021-01-01,2\n", "duplicate timestamp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDailyCSV(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseHourlyCSV(t *testing.T) {
	in := strings.Join([]string{
		"datetime,open,high,low,close,volume",
		"2021-01-01 01:00:00,11,13,10,12,5",
		"2021-01-01 00:00:00,10,12,9,11,4",
	}, "\n")
	candles, err := ParseHourlyCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, candles, 2)

	assert.Equal(t, model.Candle{
		Time: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		Open: 10, High: 12, Low: 9, Close: 11, Volume: 4,
	}, candles[0])
	assert.Equal(t, 12.0, candles[1].Close)
}

func TestParseSeries_HourlyUsesClose(t *testing.T) {
	in := "datetime,open,high,low,close,volume\n2021-01-01T00:00:00Z,1,2,0.5,1.5,10\n"
	s, err := ParseSeries(strings.NewReader(in), model.Hourly)
	require.NoError(t, err)
	assert.Equal(t, model.Hourly, s.Resolution)
	assert.Equal(t, 1.5, s.First().Price)

	_, err = ParseSeries(strings.NewReader(in), model.Resolution("weekly"))
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestLoadDailyCSV_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "btc.csv")
	require.NoError(t, os.WriteFile(path, []byte("date,price\n2021-01-01,100\n"), 0o644))

	s, err := LoadDailyCSV(path)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())

	_, err = LoadDailyCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2021-03-04", time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC)},
		{"2021-03-04 05:06:07", time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC)},
		{"2021-03-04T05:06:07", time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC)},
		{"2021-03-04T05:06:07Z", time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC)},
		{"1614834367", time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTime(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}

	_, err := ParseTime("")
	assert.Error(t, err)

	bound, err := ParseBound(" ")
	require.NoError(t, err)
	assert.True(t, bound.IsZero())
}
