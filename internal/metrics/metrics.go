// Package metrics exposes Prometheus instruments for the summary API.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder records API and cache metrics. A nil *Recorder is a no-op.
type Recorder struct {
	requests    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec
	queryTime   *prometheus.HistogramVec
}

// NewRecorder registers the instruments on reg. A nil reg yields a no-op
// recorder.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		return &Recorder{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sales_api_requests_total",
		Help: "Summary API requests by route and status code.",
	}, []string{"route", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sales_api_request_duration_seconds",
		Help:    "Summary API request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	cacheHits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sales_cache_hits_total",
		Help: "Summary cache hits by payload kind.",
	}, []string{"kind"})
	cacheMisses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sales_cache_misses_total",
		Help: "Summary cache misses by payload kind.",
	}, []string{"kind"})
	queryTime := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sales_query_duration_seconds",
		Help:    "Database aggregation time in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})
	reg.MustRegister(requests, latency, cacheHits, cacheMisses, queryTime)
	return &Recorder{
		requests:    requests,
		latency:     latency,
		cacheHits:   cacheHits,
		cacheMisses: cacheMisses,
		queryTime:   queryTime,
	}
}

func (r *Recorder) ObserveRequest(route string, status int, d time.Duration) {
	if r == nil || r.requests == nil {
		return
	}
	route = normalizeLabel(route)
	r.requests.WithLabelValues(route, statusLabel(status)).Inc()
	r.latency.WithLabelValues(route).Observe(d.Seconds())
}

func (r *Recorder) CacheHit(kind string) {
	if r == nil || r.cacheHits == nil {
		return
	}
	r.cacheHits.WithLabelValues(normalizeLabel(kind)).Inc()
}

func (r *Recorder) CacheMiss(kind string) {
	if r == nil || r.cacheMisses == nil {
		return
	}
	r.cacheMisses.WithLabelValues(normalizeLabel(kind)).Inc()
}

func (r *Recorder) ObserveQuery(kind string, d time.Duration) {
	if r == nil || r.queryTime == nil {
		return
	}
	r.queryTime.WithLabelValues(normalizeLabel(kind)).Observe(d.Seconds())
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}

func statusLabel(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
