package browse

import (
	"sync"
	"time"
)

// DefaultIdle is how long a browsing context's controller survives without
// activity before it is retired.
const DefaultIdle = 30 * time.Minute

type regEntry[T any] struct {
	ctrl     *Controller[T]
	lastSeen time.Time
}

// Registry hands out one Controller per browsing context (one browser,
// identified by an anonymous cookie) and retires idle ones. Sharing a single
// controller across visitors would let one visitor's fetch supersede
// another's; the sequence ordering is only meaningful within a single filter
// stream, so two tabs of the same browser share one stream and the newer
// tab's filter change wins.
type Registry[T any] struct {
	newCtrl func() *Controller[T]
	idle    time.Duration
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]*regEntry[T]
}

// NewRegistry creates a Registry. newCtrl builds a fresh controller for a
// first-seen context; idle <= 0 falls back to DefaultIdle.
func NewRegistry[T any](newCtrl func() *Controller[T], idle time.Duration) *Registry[T] {
	if idle <= 0 {
		idle = DefaultIdle
	}
	return &Registry[T]{
		newCtrl: newCtrl,
		idle:    idle,
		now:     time.Now,
		entries: make(map[string]*regEntry[T]),
	}
}

// Get returns the controller for the given browsing-context id, creating it
// on first use. Idle entries are swept opportunistically on each call.
func (r *Registry[T]) Get(id string) *Controller[T] {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for key, e := range r.entries {
		if now.Sub(e.lastSeen) > r.idle {
			delete(r.entries, key)
		}
	}

	e, ok := r.entries[id]
	if !ok {
		e = &regEntry[T]{ctrl: r.newCtrl()}
		r.entries[id] = e
	}
	e.lastSeen = now
	return e.ctrl
}

// Len reports the number of live browsing contexts.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
