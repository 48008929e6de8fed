package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.RecordBacktest("daily", "ok", 0.01, 365)
	r.RecordBacktest("daily", "NO_DATA", 0, 0)
	r.RecordCacheLookup(true)
	r.RecordCacheLookup(false)
	r.RecordCacheLookup(false)
	r.RecordFetchError("RATE_LIMIT_EXCEEDED")
	r.RecordHTTPRequest("/health", "GET", "200", 0.001)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.backtestsTotal.WithLabelValues("daily", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.backtestsTotal.WithLabelValues("daily", "NO_DATA")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.cacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.cacheLookups.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.fetchErrors.WithLabelValues("RATE_LIMIT_EXCEEDED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.httpRequests.WithLabelValues("/health", "GET", "200")))
}

func TestRecorder_NilSafe(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.RecordBacktest("hourly", "ok", 1, 10)
		r.RecordCacheLookup(true)
		r.RecordFetchError("API_ERROR")
		r.RecordHTTPRequest("/", "GET", "200", 0)
	})
}
