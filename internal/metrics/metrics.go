package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// FetchCollector exposes Prometheus metrics for feed fetch cycles.
type FetchCollector struct {
	registry      *prometheus.Registry
	sourcesTotal  *prometheus.CounterVec
	itemsTotal    prometheus.Counter
	cycleDuration prometheus.Histogram
}

// NewFetchCollector constructs a collector with its own registry.
func NewFetchCollector() (*FetchCollector, error) {
	registry := prometheus.NewRegistry()

	sourcesTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gather",
		Subsystem: "fetch",
		Name:      "sources_total",
		Help:      "Total number of per-source fetch attempts by outcome.",
	}, []string{"outcome"})

	itemsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gather",
		Subsystem: "fetch",
		Name:      "items_total",
		Help:      "Total number of items fetched from successful sources.",
	})

	cycleDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gather",
		Subsystem: "fetch",
		Name:      "cycle_duration_seconds",
		Help:      "Wall-clock duration of whole fetch cycles.",
		Buckets:   prometheus.DefBuckets,
	})

	for _, c := range []prometheus.Collector{sourcesTotal, itemsTotal, cycleDuration} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	return &FetchCollector{
		registry:      registry,
		sourcesTotal:  sourcesTotal,
		itemsTotal:    itemsTotal,
		cycleDuration: cycleDuration,
	}, nil
}

// ObserveSource records the outcome of one per-source fetch.
func (c *FetchCollector) ObserveSource(succeeded bool) {
	outcome := "failure"
	if succeeded {
		outcome = "success"
	}
	c.sourcesTotal.WithLabelValues(outcome).Inc()
}

// AddItems records items fetched from a successful source.
func (c *FetchCollector) AddItems(n int) {
	c.itemsTotal.Add(float64(n))
}

// ObserveCycle records the duration of a completed fetch cycle.
func (c *FetchCollector) ObserveCycle(d time.Duration) {
	c.cycleDuration.Observe(d.Seconds())
}

// Handler returns an HTTP handler exposing the collector's registry.
func (c *FetchCollector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
