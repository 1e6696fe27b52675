package session

import (
	"context"
	"errors"
	"sync"

	"github.com/chainsight/chainsight/pkg/graph"
	"github.com/chainsight/chainsight/pkg/impact"
)

// ErrNotFound is returned for operations on unknown session ids.
var ErrNotFound = errors.New("session not found")

// Manager owns the sessions running against one graph index and
// publishes their lifecycle events.
type Manager struct {
	ix       *graph.Index
	opts     impact.TraceOptions
	notifier *Notifier

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a manager bound to an index. All sessions it
// starts trace with the given options.
func NewManager(ix *graph.Index, opts impact.TraceOptions) *Manager {
	return &Manager{
		ix:       ix,
		opts:     opts,
		notifier: NewNotifier(),
		sessions: make(map[string]*Session),
	}
}

// Start creates and registers a new session.
func (m *Manager) Start(ctx context.Context, sourceID, label string) (*Session, error) {
	s, err := Start(ctx, m.ix, sourceID, label, m.opts)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()

	m.publish(EventStarted, s)
	return s, nil
}

// Get looks up a session by id.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Reconfigure recomputes a session for a new source.
func (m *Manager) Reconfigure(ctx context.Context, id, sourceID, label string) (*Session, error) {
	s, ok := m.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	if err := s.Reconfigure(ctx, sourceID, label); err != nil {
		return nil, err
	}
	m.publish(EventReconfigured, s)
	return s, nil
}

// Stop deactivates and removes a session.
func (m *Manager) Stop(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	s.Stop()
	m.publish(EventStopped, s)
	return nil
}

// List returns all registered sessions in no particular order.
func (m *Manager) List() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out
}

// Count returns the number of registered sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Subscribe returns a channel of session events and an unsubscribe
// func.
func (m *Manager) Subscribe() (<-chan Event, func()) {
	return m.notifier.Subscribe()
}

// Close shuts down event delivery. Sessions remain readable.
func (m *Manager) Close() {
	m.notifier.Close()
}

func (m *Manager) publish(typ EventType, s *Session) {
	m.notifier.Publish(Event{
		Type:          typ,
		SessionID:     s.ID(),
		SourceID:      s.SourceID(),
		Label:         s.Label(),
		AffectedNodes: len(s.AffectedNodeIDs()),
		TotalImpact:   s.TotalImpact(),
	})
}
