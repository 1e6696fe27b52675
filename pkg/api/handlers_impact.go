package api

import (
	"net/http"
	"sort"
	"time"

	"github.com/chainsight/chainsight/pkg/impact"
)

func (s *Server) handleDownstream(w http.ResponseWriter, r *http.Request) {
	if !s.requirePost(w, r) {
		return
	}

	var req DownstreamRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	opts := impact.DefaultTraceOptions()
	applyTraceOptions(&opts, req.MaxDepth, req.IncludeRevisits, req.WeightThreshold, req.CriticalTier)

	start := time.Now()
	set, err := impact.TraceDownstream(r.Context(), s.ix, req.SourceIDs, opts)
	duration := time.Since(start)
	if err != nil {
		s.registry.RecordTrace("downstream", "error", duration, 0)
		s.respondError(w, http.StatusInternalServerError, s.sanitizeError(err, "downstream trace"))
		return
	}

	s.registry.RecordTrace("downstream", "ok", duration, len(set.Nodes))
	s.respondJSON(w, http.StatusOK, impactResponse(set, duration))
}

func (s *Server) handleUpstream(w http.ResponseWriter, r *http.Request) {
	if !s.requirePost(w, r) {
		return
	}

	var req UpstreamRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	opts := impact.DefaultUpstreamOptions()
	applyTraceOptions(&opts, req.MaxDepth, req.IncludeRevisits, req.WeightThreshold, req.CriticalTier)

	start := time.Now()
	set, err := impact.TraceUpstream(r.Context(), s.ix, req.TargetID, opts)
	duration := time.Since(start)
	if err != nil {
		s.registry.RecordTrace("upstream", "error", duration, 0)
		s.respondError(w, http.StatusInternalServerError, s.sanitizeError(err, "upstream trace"))
		return
	}

	s.registry.RecordTrace("upstream", "ok", duration, len(set.Nodes))
	s.respondJSON(w, http.StatusOK, impactResponse(set, duration))
}

func applyTraceOptions(opts *impact.TraceOptions, maxDepth int, revisits bool, threshold float64, criticalTier *int) {
	if maxDepth > 0 {
		opts.MaxDepth = maxDepth
	}
	opts.IncludeRevisits = revisits
	opts.WeightThreshold = threshold
	if criticalTier != nil {
		opts.Critical = impact.CriticalTier(*criticalTier)
	}
}

func impactResponse(set *impact.AffectedSet, duration time.Duration) ImpactResponse {
	// Sorted ids keep the response stable across requests; map order
	// would leak into clients otherwise.
	nodes := make([]string, 0, len(set.Nodes))
	for id := range set.Nodes {
		nodes = append(nodes, id)
	}
	sort.Strings(nodes)

	edges := make([]string, 0, len(set.Edges))
	for id := range set.Edges {
		edges = append(edges, id)
	}
	sort.Strings(edges)

	return ImpactResponse{
		AffectedNodes: nodes,
		AffectedEdges: edges,
		Depths:        set.Depth,
		CriticalPaths: set.CriticalPaths,
		TotalImpact:   set.TotalImpact,
		Time:          duration.String(),
	}
}
