package session

import "sync"

// EventType names a session lifecycle change.
type EventType string

const (
	EventStarted      EventType = "started"
	EventReconfigured EventType = "reconfigured"
	EventStopped      EventType = "stopped"
)

// Event is a snapshot of a session change, published so UI consumers
// can refresh their statistics panels without polling.
type Event struct {
	Type          EventType `json:"type"`
	SessionID     string    `json:"sessionId"`
	SourceID      string    `json:"sourceId"`
	Label         string    `json:"label"`
	AffectedNodes int       `json:"affectedNodes"`
	TotalImpact   float64   `json:"totalImpact"`
}

// Notifier broadcasts session events to subscribers. Publish never
// blocks; a subscriber whose buffer is full misses the event and
// catches up on the next one, which is fine for refresh-style
// consumers.
type Notifier struct {
	mu     sync.RWMutex
	subs   map[chan Event]struct{}
	closed bool
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[chan Event]struct{})}
}

// Subscribe registers a new subscriber and returns its channel plus an
// unsubscribe func. Unsubscribing closes the channel.
func (n *Notifier) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		close(ch)
		return ch, func() {}
	}
	n.subs[ch] = struct{}{}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			if _, ok := n.subs[ch]; ok {
				delete(n.subs, ch)
				close(ch)
			}
		})
	}
	return ch, cancel
}

// Publish delivers an event to every subscriber that has buffer room.
func (n *Notifier) Publish(ev Event) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		return
	}
	for ch := range n.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Close closes every subscriber channel and rejects further use.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	n.closed = true
	for ch := range n.subs {
		close(ch)
	}
	n.subs = make(map[chan Event]struct{})
}
