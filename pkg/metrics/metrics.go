package metrics

import "time"

// RecordTrace records one impact trace.
func (r *Registry) RecordTrace(direction, status string, duration time.Duration, nodesAffected int) {
	r.TracesTotal.WithLabelValues(direction, status).Inc()
	r.TraceDuration.WithLabelValues(direction).Observe(duration.Seconds())
	r.TraceNodesAffected.WithLabelValues(direction).Observe(float64(nodesAffected))
}

// RecordPathQuery records one path enumeration.
func (r *Registry) RecordPathQuery(status string, duration time.Duration, truncated bool) {
	r.PathQueriesTotal.WithLabelValues(status).Inc()
	r.PathQueryDuration.Observe(duration.Seconds())
	if truncated {
		r.PathsTruncated.Inc()
	}
}

// RecordIndexBuild records a graph index build.
func (r *Registry) RecordIndexBuild(duration time.Duration, nodes, edges, dropped int) {
	r.IndexBuildDuration.Observe(duration.Seconds())
	r.IndexNodes.Set(float64(nodes))
	r.IndexEdges.Set(float64(edges))
	r.IndexEdgesDropped.Add(float64(dropped))
}

// RecordSessionEvent records a session lifecycle event and keeps the
// active-session gauge current.
func (r *Registry) RecordSessionEvent(eventType string, activeSessions int) {
	r.SessionEventsTotal.WithLabelValues(eventType).Inc()
	r.SessionsActive.Set(float64(activeSessions))
	if eventType == "started" || eventType == "reconfigured" {
		r.SessionRecomputes.Inc()
	}
}

// RecordHTTPRequest records an HTTP request with its duration.
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
