// Package metrics defines the Prometheus collectors exported by the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors for uploads and searches.
type Metrics struct {
	SearchesTotal    prometheus.Counter
	InvalidQueries   prometheus.Counter
	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter
	UploadsTotal     prometheus.Counter
	SkippedLines     *prometheus.CounterVec
	PlatformsLoaded  prometheus.Gauge

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them on reg.
// Pass prometheus.NewRegistry() in tests to keep them isolated.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		SearchesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "adplatforms_searches_total",
			Help: "Total number of location searches",
		}),
		InvalidQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "adplatforms_invalid_queries_total",
			Help: "Searches rejected by the location validator",
		}),
		CacheHitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "adplatforms_cache_hits_total",
			Help: "Searches answered from the query cache",
		}),
		CacheMissesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "adplatforms_cache_misses_total",
			Help: "Searches that required a scan of the platform store",
		}),
		UploadsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "adplatforms_uploads_total",
			Help: "Platform files ingested",
		}),
		SkippedLines: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adplatforms_skipped_lines_total",
			Help: "Lines skipped during ingestion by reason",
		}, []string{"reason"}),
		PlatformsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "adplatforms_platforms_loaded",
			Help: "Number of platforms in the current store",
		}),
		gatherer: reg,
	}

	reg.MustRegister(
		m.SearchesTotal,
		m.InvalidQueries,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.UploadsTotal,
		m.SkippedLines,
		m.PlatformsLoaded,
	)
	return m
}

// Handler serves the registered collectors in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
