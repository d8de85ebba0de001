package weather

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventKind names what changed in the store
type EventKind string

const (
	EventStateLoaded    EventKind = "state_loaded"
	EventBundleUpdated  EventKind = "bundle_updated"
	EventSummaryUpdated EventKind = "summary_updated"
	EventTrackedChanged EventKind = "tracked_changed"
	EventActiveChanged  EventKind = "active_changed"
	EventUnitChanged    EventKind = "unit_changed"
	EventError          EventKind = "error"
)

// Event is sent to observers after every state change. Observers re-read state through
// Snapshot; the event only says what moved.
type Event struct {
	Kind       EventKind `json:"kind"`
	LocationID int64     `json:"location_id,omitempty"`
	Version    uint64    `json:"version"`
	Message    string    `json:"message,omitempty"`
	At         time.Time `json:"at"`
}

type eventHub struct {
	mu          sync.Mutex
	buffer      int
	subscribers map[string]chan Event
}

func newEventHub(buffer int) *eventHub {
	return &eventHub{
		buffer:      buffer,
		subscribers: make(map[string]chan Event),
	}
}

func (h *eventHub) subscribe() (string, <-chan Event) {
	id := uuid.NewString()
	ch := make(chan Event, h.buffer)

	h.mu.Lock()
	h.subscribers[id] = ch
	h.mu.Unlock()
	return id, ch
}

func (h *eventHub) unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.subscribers[id]; ok {
		delete(h.subscribers, id)
		close(ch)
	}
}

// publish never blocks: a subscriber with a full buffer misses the event and catches up
// on the next one through Snapshot
func (h *eventHub) publish(ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subscribers {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (h *eventHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.subscribers {
		delete(h.subscribers, id)
		close(ch)
	}
}

func (h *eventHub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}
