package api

import (
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/chainsight/chainsight/pkg/session"
)

// handleSessions serves the collection: GET lists, POST starts.
func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		list := s.sessions.List()
		resp := SessionListResponse{
			Sessions: make([]SessionResponse, 0, len(list)),
			Count:    len(list),
		}
		for _, sess := range list {
			resp.Sessions = append(resp.Sessions, sessionResponse(sess))
		}
		sort.Slice(resp.Sessions, func(i, j int) bool {
			return resp.Sessions[i].ID < resp.Sessions[j].ID
		})
		s.respondJSON(w, http.StatusOK, resp)

	case http.MethodPost:
		var req SessionRequest
		if !s.decodeJSON(w, r, &req) {
			return
		}
		sess, err := s.sessions.Start(r.Context(), req.SourceID, req.Label)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.registry.RecordSessionEvent("started", s.sessions.Count())
		s.respondJSON(w, http.StatusCreated, sessionResponse(sess))

	default:
		s.respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleSession serves one session: GET reads, PUT reconfigures,
// DELETE stops.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/sessions/"), "/")
	if id == "" {
		s.respondError(w, http.StatusBadRequest, "missing session id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		sess, ok := s.sessions.Get(id)
		if !ok {
			s.respondError(w, http.StatusNotFound, "session not found")
			return
		}
		s.respondJSON(w, http.StatusOK, sessionResponse(sess))

	case http.MethodPut:
		var req SessionRequest
		if !s.decodeJSON(w, r, &req) {
			return
		}
		sess, err := s.sessions.Reconfigure(r.Context(), id, req.SourceID, req.Label)
		if errors.Is(err, session.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "session not found")
			return
		}
		if err != nil {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.registry.RecordSessionEvent("reconfigured", s.sessions.Count())
		s.respondJSON(w, http.StatusOK, sessionResponse(sess))

	case http.MethodDelete:
		if err := s.sessions.Stop(id); err != nil {
			s.respondError(w, http.StatusNotFound, "session not found")
			return
		}
		s.registry.RecordSessionEvent("stopped", s.sessions.Count())
		w.WriteHeader(http.StatusNoContent)

	default:
		s.respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func sessionResponse(sess *session.Session) SessionResponse {
	return SessionResponse{
		ID:                sess.ID(),
		State:             sess.State().String(),
		Label:             sess.Label(),
		SourceID:          sess.SourceID(),
		AffectedNodes:     len(sess.AffectedNodeIDs()),
		AffectedEdges:     len(sess.AffectedEdgeIDs()),
		CriticalPathCount: sess.CriticalPathCount(),
		TotalImpact:       sess.TotalImpact(),
	}
}
