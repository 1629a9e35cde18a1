// Package metrics exposes Prometheus collectors for the harvester.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	harvestURLsTotal     *prometheus.CounterVec
	harvestPagesTotal    prometheus.Counter
	harvestFlushesTotal  *prometheus.CounterVec
	harvestFlushSize     prometheus.Histogram
	harvestFetchSeconds  *prometheus.HistogramVec
	harvestActiveFetches prometheus.Gauge
	harvestBufferedCount prometheus.Gauge

	httpRequestsTotal          *prometheus.CounterVec
	httpRequestDurationSeconds *prometheus.HistogramVec

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		harvestURLsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "harvest_urls_total",
				Help: "Total candidate URLs processed, labeled by domain and outcome.",
			},
			[]string{"domain", "outcome"},
		)

		harvestPagesTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "harvest_candidate_pages_total",
				Help: "Total candidate pages pulled from the source collection.",
			},
		)

		harvestFlushesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "harvest_flushes_total",
				Help: "Total batch flushes to the target store, labeled by status.",
			},
			[]string{"status"},
		)

		harvestFlushSize = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "harvest_flush_size",
				Help:    "Histogram of records per target-store flush.",
				Buckets: []float64{1, 5, 10, 25, 50, 100},
			},
		)

		harvestFetchSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "harvest_fetch_duration_seconds",
				Help:    "Histogram of per-URL fetch latencies, labeled by domain.",
				Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"domain"},
		)

		harvestActiveFetches = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "harvest_active_fetches",
				Help: "Number of fetches currently in flight.",
			},
		)

		harvestBufferedCount = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "harvest_buffered_records",
				Help: "Records currently buffered awaiting a target-store flush.",
			},
		)

		httpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests, labeled by method and code.",
			},
			[]string{"method", "code"},
		)

		httpRequestDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies, labeled by method and route.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"method", "route"},
		)
	})
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// URLHarvested counts one successfully harvested URL for a domain.
func URLHarvested(domain string) {
	if harvestURLsTotal == nil {
		return
	}
	harvestURLsTotal.WithLabelValues(domain, "ok").Inc()
}

// URLFailed counts one failed fetch or extraction for a domain.
func URLFailed(domain string) {
	if harvestURLsTotal == nil {
		return
	}
	harvestURLsTotal.WithLabelValues(domain, "failed").Inc()
}

// URLSkipped counts one candidate with no registered adapter.
func URLSkipped() {
	if harvestURLsTotal == nil {
		return
	}
	harvestURLsTotal.WithLabelValues("unregistered", "skipped").Inc()
}

// PageProcessed counts one candidate page pulled from the source.
func PageProcessed() {
	if harvestPagesTotal == nil {
		return
	}
	harvestPagesTotal.Inc()
}

// ObserveFlush records one flush attempt and its size.
func ObserveFlush(size int, err error) {
	if harvestFlushesTotal == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	harvestFlushesTotal.WithLabelValues(status).Inc()
	harvestFlushSize.Observe(float64(size))
}

// ObserveFetch records the latency of one fetch against a domain.
func ObserveFetch(domain string, duration time.Duration) {
	if harvestFetchSeconds == nil {
		return
	}
	harvestFetchSeconds.WithLabelValues(domain).Observe(duration.Seconds())
}

// IncActiveFetches increments the in-flight fetch gauge.
func IncActiveFetches() {
	if harvestActiveFetches == nil {
		return
	}
	harvestActiveFetches.Inc()
}

// DecActiveFetches decrements the in-flight fetch gauge.
func DecActiveFetches() {
	if harvestActiveFetches == nil {
		return
	}
	harvestActiveFetches.Dec()
}

// SetBufferedRecords reports the current buffer depth.
func SetBufferedRecords(n int) {
	if harvestBufferedCount == nil {
		return
	}
	harvestBufferedCount.Set(float64(n))
}
