// Package metrics owns the Prometheus registry and the collectors the
// HTTP layer and background workers report to.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder groups the storefront collectors.  A nil *Recorder is
// valid and records nothing.
type Recorder struct {
	reg *prometheus.Registry

	requests      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	cache         *prometheus.CounterVec
	rateLimited   prometheus.Counter
	events        *prometheus.CounterVec
	consumedLines prometheus.Counter
}

// NewRecorder registers the collectors on a fresh registry together
// with the Go runtime and process collectors.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		reg: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_response_cache_total",
			Help: "Response cache lookups by result (hit, miss, purge).",
		}, []string{"result"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_rate_limited_total",
			Help: "Requests rejected by the rate limiter.",
		}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_catalog_events_total",
			Help: "Catalog events by type and outcome.",
		}, []string{"type", "outcome"}),
		consumedLines: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_catalog_log_lines_total",
			Help: "Catalog events written to the audit log.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.requests, r.latency, r.cache, r.rateLimited, r.events, r.consumedLines,
	)
	return r
}

// Handler exposes the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// ObserveRequest records one finished HTTP request.
func (r *Recorder) ObserveRequest(method, route string, status int, d time.Duration) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.latency.WithLabelValues(method, route).Observe(d.Seconds())
}

// CacheResult counts a cache hit, miss or purge.
func (r *Recorder) CacheResult(result string) {
	if r == nil {
		return
	}
	r.cache.WithLabelValues(result).Inc()
}

// RateLimited counts a rejected request.
func (r *Recorder) RateLimited() {
	if r == nil {
		return
	}
	r.rateLimited.Inc()
}

// EventPublished counts a catalog event publish attempt.
func (r *Recorder) EventPublished(eventType string, err error) {
	if r == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.events.WithLabelValues(eventType, outcome).Inc()
}

// LineWritten counts an audit log line written by the consumer.
func (r *Recorder) LineWritten() {
	if r == nil {
		return
	}
	r.consumedLines.Inc()
}
