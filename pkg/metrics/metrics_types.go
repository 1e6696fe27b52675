package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all metrics for the engine and its HTTP surface.
type Registry struct {
	// Engine metrics
	TracesTotal        *prometheus.CounterVec
	TraceDuration      *prometheus.HistogramVec
	TraceNodesAffected *prometheus.HistogramVec
	PathQueriesTotal   *prometheus.CounterVec
	PathQueryDuration  prometheus.Histogram
	PathsTruncated     prometheus.Counter
	IndexNodes         prometheus.Gauge
	IndexEdges         prometheus.Gauge
	IndexEdgesDropped  prometheus.Counter
	IndexBuildDuration prometheus.Histogram

	// Session metrics
	SessionsActive     prometheus.Gauge
	SessionRecomputes  prometheus.Counter
	SessionEventsTotal *prometheus.CounterVec

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewRegistry creates a registry with all metric families registered.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.initEngineMetrics()
	r.initSessionMetrics()
	r.initHTTPMetrics()
	return r
}

// Handler serves this registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Gather exposes the underlying gatherer for tests.
func (r *Registry) Gather() prometheus.Gatherer {
	return r.registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// Default returns the process-wide registry.
func Default() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}
