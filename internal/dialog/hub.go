package dialog

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Source delivers raised dialogs to subscribers
type Source interface {
	Subscribe(fn func(Dialog)) string
	Unsubscribe(id string) error
}

type subscription struct {
	id string
	fn func(Dialog)
}

// Hub fans one upstream dialog feed out to subscribers in registration
// order. Browser adapters embed it and call Publish from their event hook.
type Hub struct {
	mu   sync.Mutex
	subs []subscription
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{}
}

// Subscribe registers fn and returns the id needed to remove it
func (h *Hub) Subscribe(fn func(Dialog)) string {
	id := uuid.NewString()
	h.mu.Lock()
	h.subs = append(h.subs, subscription{id: id, fn: fn})
	h.mu.Unlock()
	return id
}

// Unsubscribe removes the subscription registered under id
func (h *Hub) Unsubscribe(id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, s := range h.subs {
		if s.id == id {
			h.subs = append(h.subs[:i:i], h.subs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownListener, id)
}

// Len returns the number of active subscriptions
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Publish delivers d to every subscriber and reports whether there was any.
// Subscribers may unsubscribe from inside their callback.
func (h *Hub) Publish(d Dialog) bool {
	h.mu.Lock()
	subs := make([]subscription, len(h.subs))
	copy(subs, h.subs)
	h.mu.Unlock()

	for _, s := range subs {
		s.fn(d)
	}
	return len(subs) > 0
}
