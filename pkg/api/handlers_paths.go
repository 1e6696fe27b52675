package api

import (
	"net/http"
	"time"

	"github.com/chainsight/chainsight/pkg/paths"
)

func (s *Server) handlePaths(w http.ResponseWriter, r *http.Request) {
	if !s.requirePost(w, r) {
		return
	}

	var req PathsRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	opts := paths.Options{MaxPaths: req.MaxPaths, MaxDepth: req.MaxDepth}

	start := time.Now()
	result, err := paths.FindAllPaths(r.Context(), s.ix, req.SourceID, req.TargetID, opts)
	duration := time.Since(start)
	if err != nil {
		s.registry.RecordPathQuery("error", duration, false)
		s.respondError(w, http.StatusInternalServerError, s.sanitizeError(err, "path query"))
		return
	}

	resp := PathsResponse{
		Paths:     result.Paths,
		Truncated: result.Truncated,
		Time:      duration.String(),
	}
	if shortest := paths.SelectShortest(s.ix, result.Paths); shortest != nil {
		m := paths.Metrics(s.ix, shortest)
		resp.Shortest = shortest
		resp.Metrics = &m
	}

	s.registry.RecordPathQuery("ok", duration, result.Truncated)
	s.respondJSON(w, http.StatusOK, resp)
}
