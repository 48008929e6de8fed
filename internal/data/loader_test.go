package data

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"basket-backtest/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dailyCSV = "date,price\n2021-01-01,100\n2021-01-02,110\n"

type countingObserver struct{ hits, misses int }

func (o *countingObserver) RecordCacheLookup(hit bool) {
	if hit {
		o.hits++
	} else {
		o.misses++
	}
}

func TestLoader_FileUsesCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asset.csv")
	require.NoError(t, os.WriteFile(path, []byte(dailyCSV), 0o644))

	obs := &countingObserver{}
	l := NewLoader(NewSeriesCache(time.Minute), zerolog.Nop())
	l.Observer = obs

	src := Source{Path: path, Resolution: model.Daily}
	s, err := l.Load(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())

	require.NoError(t, os.Remove(path))
	s, err = l.Load(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 1, obs.hits)
	assert.Equal(t, 1, obs.misses)
}

func TestLoader_NoCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asset.csv")
	require.NoError(t, os.WriteFile(path, []byte(dailyCSV), 0o644))

	l := NewLoader(nil, zerolog.Nop())
	_, err := l.Load(context.Background(), Source{Path: path, Resolution: model.Daily})
	require.NoError(t, err)
}

func TestLoader_InvalidSource(t *testing.T) {
	l := NewLoader(nil, zerolog.Nop())
	tests := []Source{
		{Resolution: model.Daily},
		{Path: "a.csv", URL: "http://x/a.csv", Resolution: model.Daily},
		{Path: "a.csv", Resolution: "weekly"},
	}
	for _, src := range tests {
		_, err := l.Load(context.Background(), src)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	}
}

func TestLoader_Remote(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(dailyCSV))
	}))
	defer srv.Close()

	l := NewLoader(NewSeriesCache(time.Minute), zerolog.Nop())
	src := Source{URL: srv.URL + "/btc.csv", Resolution: model.Daily}
	for i := 0; i < 2; i++ {
		s, err := l.Load(context.Background(), src)
		require.NoError(t, err)
		assert.Equal(t, 110.0, s.Last().Price)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestRemoteSource_StatusErrors(t *testing.T) {
	tests := []struct {
		status     int
		wantCode   string
		retryAfter string
	}{
		{http.StatusUnauthorized, "UNAUTHORIZED", ""},
		{http.StatusNotFound, "NOT_FOUND", ""},
		{http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "30"},
		{http.StatusInternalServerError, "API_ERROR", ""},
	}
	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.retryAfter != "" {
					w.Header().Set("Retry-After", tt.retryAfter)
				}
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := NewRemoteSource(zerolog.Nop()).Fetch(context.Background(), srv.URL, model.Daily)
			var fe *FetchError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.status, fe.StatusCode)
			assert.Equal(t, tt.wantCode, fe.Code)
			assert.Equal(t, tt.retryAfter, fe.RetryAfter)
		})
	}
}

func TestRemoteSource_InvalidURL(t *testing.T) {
	_, err := NewRemoteSource(zerolog.Nop()).Fetch(context.Background(), "ftp://example.com/a.csv", model.Daily)
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "INVALID_URL", fe.Code)
}

func TestRemoteSource_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(dailyCSV))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRemoteSource(zerolog.Nop()).Fetch(ctx, srv.URL, model.Daily)
	assert.ErrorIs(t, err, context.Canceled)
}
