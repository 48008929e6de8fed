package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds the service's Prometheus collectors.
type Recorder struct {
	backtestsTotal   *prometheus.CounterVec
	backtestDuration *prometheus.HistogramVec
	seriesPoints     prometheus.Histogram
	cacheLookups     *prometheus.CounterVec
	fetchErrors      *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// New registers the collectors on reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Recorder{
		backtestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "basket_backtests_total",
				Help: "Total number of backtest runs by resolution and outcome",
			},
			[]string{"resolution", "outcome"},
		),
		backtestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "basket_backtest_duration_seconds",
				Help:    "Duration of backtest runs in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"resolution"},
		),
		seriesPoints: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "basket_backtest_series_points",
				Help:    "Number of price observations per backtest after range filtering",
				Buckets: prometheus.ExponentialBuckets(10, 4, 8),
			},
		),
		cacheLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "basket_series_cache_lookups_total",
				Help: "Series cache lookups by result",
			},
			[]string{"result"},
		),
		fetchErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "basket_fetch_errors_total",
				Help: "Remote series fetch failures by code",
			},
			[]string{"code"},
		),
		httpRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "basket_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"route", "method", "status"},
		),
		httpDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "basket_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"route", "method"},
		),
	}
}

// RecordBacktest records one run. outcome is "ok" or an error code.
func (r *Recorder) RecordBacktest(resolution, outcome string, seconds float64, points int) {
	if r == nil {
		return
	}
	r.backtestsTotal.WithLabelValues(resolution, outcome).Inc()
	if outcome == "ok" {
		r.backtestDuration.WithLabelValues(resolution).Observe(seconds)
		r.seriesPoints.Observe(float64(points))
	}
}

// RecordCacheLookup implements the series cache's hit/miss hook.
func (r *Recorder) RecordCacheLookup(hit bool) {
	if r == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(result).Inc()
}

func (r *Recorder) RecordFetchError(code string) {
	if r == nil {
		return
	}
	r.fetchErrors.WithLabelValues(code).Inc()
}

func (r *Recorder) RecordHTTPRequest(route, method, status string, seconds float64) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(route, method, status).Inc()
	r.httpDuration.WithLabelValues(route, method).Observe(seconds)
}
