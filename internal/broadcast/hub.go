package broadcast

import (
	"context"
	"sync"
)

const subscriberBuffer = 8

// Event is what a subscriber receives for one mutation of the entity it
// watches.
type Event struct {
	Key     string
	Name    string
	Payload any
}

// Hub is an in-process publish/subscribe channel keyed by entity identity.
// Delivery is at-most-once: a subscriber that is absent, or whose buffer is
// full, misses the event and is expected to reconcile against the entity's
// durable tracking log.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[chan Event]struct{}
	closed bool
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe joins the channel for one entity. The returned cancel func must
// be called when the client disconnects.
func (h *Hub) Subscribe(key string) (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	if h.subs[key] == nil {
		h.subs[key] = make(map[chan Event]struct{})
	}
	h.subs[key][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			if set, ok := h.subs[key]; ok {
				delete(set, ch)
				if len(set) == 0 {
					delete(h.subs, key)
				}
			}
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (h *Hub) Publish(ctx context.Context, key, event string, payload any) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return nil
	}
	for ch := range h.subs[key] {
		select {
		case ch <- Event{Key: key, Name: event, Payload: payload}:
		default:
			// Slow subscriber: drop rather than block the publisher.
		}
	}
	return nil
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for key, set := range h.subs {
		for ch := range set {
			close(ch)
		}
		delete(h.subs, key)
	}
}
