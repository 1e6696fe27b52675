package session

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/chainsight/chainsight/pkg/graph"
	"github.com/chainsight/chainsight/pkg/impact"
)

// State tracks the session lifecycle. The only transitions are
// Inactive -> Active on Start, Active -> Active on Reconfigure (always
// a fresh recompute, never a diff), and Active -> Inactive on Stop.
type State int

const (
	StateInactive State = iota
	StateActive
)

// String returns the wire name of a state.
func (s State) String() string {
	if s == StateActive {
		return "active"
	}
	return "inactive"
}

// Session is a thin facade over ImpactTracer and ImpactScorer for one
// simulated disruption. It holds no state beyond the current parameters
// and the last computed result; the bound index is never mutated. If
// the underlying graph changes, callers must start a new session
// against a freshly built index; the session does not detect staleness.
type Session struct {
	id    string
	ix    *graph.Index
	opts  impact.TraceOptions
	mu    sync.RWMutex
	state State

	label    string
	sourceID string
	affected *impact.AffectedSet
}

// Start creates a session and computes the disruption impact for
// sourceID. An unknown source is not an error; the session is active
// with an empty affected set.
func Start(ctx context.Context, ix *graph.Index, sourceID, label string, opts impact.TraceOptions) (*Session, error) {
	s := &Session{
		id:   uuid.NewString(),
		ix:   ix,
		opts: opts,
	}
	if err := s.Reconfigure(ctx, sourceID, label); err != nil {
		return nil, err
	}
	return s, nil
}

// Reconfigure points the session at a new disruption source and fully
// recomputes the affected set.
func (s *Session) Reconfigure(ctx context.Context, sourceID, label string) error {
	affected, err := impact.TraceDownstream(ctx, s.ix, []string{sourceID}, s.opts)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateActive
	s.sourceID = sourceID
	s.label = label
	s.affected = affected
	return nil
}

// Stop deactivates the session. Read accessors return empty views
// afterwards.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateInactive
	s.affected = nil
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// State returns the lifecycle state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Label returns the current session label.
func (s *Session) Label() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.label
}

// SourceID returns the current disruption source.
func (s *Session) SourceID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sourceID
}

// AffectedNodeIDs returns the affected node id set. The set is shared
// with the session for O(1) render-loop membership tests and must be
// treated as read-only.
func (s *Session) AffectedNodeIDs() map[string]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.affected == nil {
		return map[string]struct{}{}
	}
	return s.affected.Nodes
}

// AffectedEdgeIDs returns the traversed edge id set, read-only like
// AffectedNodeIDs.
func (s *Session) AffectedEdgeIDs() map[string]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.affected == nil {
		return map[string]struct{}{}
	}
	return s.affected.Edges
}

// TotalImpact returns the severity score of the current disruption.
func (s *Session) TotalImpact() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.affected == nil {
		return 0
	}
	return s.affected.TotalImpact
}

// CriticalPathCount returns the number of captured critical paths.
func (s *Session) CriticalPathCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.affected == nil {
		return 0
	}
	return len(s.affected.CriticalPaths)
}
