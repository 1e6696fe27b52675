package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initEngineMetrics() {
	r.TracesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainsight_traces_total",
			Help: "Total number of impact traces executed",
		},
		[]string{"direction", "status"},
	)

	r.TraceDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chainsight_trace_duration_seconds",
			Help:    "Impact trace duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
		[]string{"direction"},
	)

	r.TraceNodesAffected = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chainsight_trace_nodes_affected",
			Help:    "Number of nodes per affected set",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000},
		},
		[]string{"direction"},
	)

	r.PathQueriesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainsight_path_queries_total",
			Help: "Total number of path enumerations",
		},
		[]string{"status"},
	)

	r.PathQueryDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chainsight_path_query_duration_seconds",
			Help:    "Path enumeration duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
	)

	r.PathsTruncated = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "chainsight_path_queries_truncated_total",
			Help: "Path enumerations cut short by MaxPaths or MaxDepth",
		},
	)

	r.IndexNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "chainsight_index_nodes",
			Help: "Nodes in the active graph index",
		},
	)

	r.IndexEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "chainsight_index_edges",
			Help: "Edges in the active graph index",
		},
	)

	r.IndexEdgesDropped = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "chainsight_index_edges_dropped_total",
			Help: "Edges dropped at index build for missing endpoints",
		},
	)

	r.IndexBuildDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chainsight_index_build_duration_seconds",
			Help:    "Graph index build duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 1.0, 10.0},
		},
	)
}

func (r *Registry) initSessionMetrics() {
	r.SessionsActive = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "chainsight_sessions_active",
			Help: "Currently active crisis sessions",
		},
	)

	r.SessionRecomputes = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "chainsight_session_recomputes_total",
			Help: "Full session recomputes (start and reconfigure)",
		},
	)

	r.SessionEventsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainsight_session_events_total",
			Help: "Session lifecycle events by type",
		},
		[]string{"type"},
	)
}
