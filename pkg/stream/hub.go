package stream

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event describes a change to one backing collection. Delivery is
// last-write-seen: subscribers that fall behind lose intermediate events,
// never the fact that something changed.
type Event struct {
	Collection string    `json:"collection"`
	Action     string    `json:"action"` // created, updated, deleted
	EntityID   string    `json:"entity_id"`
	At         time.Time `json:"at"`
}

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

type Subscription struct {
	ID          string
	C           <-chan Event
	ch          chan Event
	collections map[string]struct{}
}

// Hub fans change events out to in-process subscribers.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]*Subscription
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]*Subscription)}
}

// Subscribe registers interest in the given collections. An empty list means
// all collections. The returned channel is buffered; a full buffer drops the
// oldest-style delivery by skipping the send.
func (h *Hub) Subscribe(collections ...string) *Subscription {
	sub := &Subscription{
		ID:          uuid.New().String(),
		ch:          make(chan Event, 64),
		collections: make(map[string]struct{}, len(collections)),
	}
	sub.C = sub.ch
	for _, c := range collections {
		sub.collections[c] = struct{}{}
	}

	h.mu.Lock()
	h.subs[sub.ID] = sub
	h.mu.Unlock()
	return sub
}

func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	sub, ok := h.subs[id]
	if ok {
		delete(h.subs, id)
	}
	h.mu.Unlock()
	if ok {
		close(sub.ch)
	}
}

func (h *Hub) Publish(evt Event) {
	if evt.At.IsZero() {
		evt.At = time.Now()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, sub := range h.subs {
		if len(sub.collections) > 0 {
			if _, ok := sub.collections[evt.Collection]; !ok {
				continue
			}
		}
		select {
		case sub.ch <- evt:
		default:
			// Slow subscriber; skip rather than block publishers.
		}
	}
}
