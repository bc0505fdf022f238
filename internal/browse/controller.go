package browse

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/talentbridge/marketplace-web/internal/web/metrics"
)

// FetchFunc executes one catalog fetch for the given query.
type FetchFunc[T any] func(ctx context.Context, query url.Values) ([]T, error)

// Snapshot is the renderable state of a catalog: the last applied result
// list, the error of the last applied fetch (nil on success), and the
// sequence number that produced it. On a failed fetch Items keeps the prior
// list so the page can show it alongside a retry affordance.
type Snapshot[T any] struct {
	Items []T
	Err   error
	Seq   uint64
}

// Empty reports a successful fetch that matched nothing.
func (s Snapshot[T]) Empty() bool {
	return s.Err == nil && s.Seq > 0 && len(s.Items) == 0
}

// Controller serializes catalog fetches for one browsing context. Every
// issued fetch is tagged with a monotonically increasing sequence number;
// a response is applied only when no newer fetch has been issued since, so
// a slow stale response can never overwrite a fresher one. Rapid filter
// changes can additionally be coalesced through Debounced.
type Controller[T any] struct {
	fetch    FetchFunc[T]
	debounce time.Duration
	catalog  string
	log      zerolog.Logger

	mu      sync.Mutex
	seq     uint64 // last issued
	applied uint64 // last applied
	snap    Snapshot[T]

	timer      *time.Timer
	pending    url.Values
	pendingCtx context.Context
	waiters    []chan Snapshot[T]
}

// NewController creates a Controller for one catalog. catalog names the
// metrics label ("jobs" or "workers"); debounce is the quiet period used by
// Debounced and may be zero.
func NewController[T any](catalog string, fetch FetchFunc[T], debounce time.Duration, log zerolog.Logger) *Controller[T] {
	return &Controller[T]{
		fetch:    fetch,
		debounce: debounce,
		catalog:  catalog,
		log:      log,
	}
}

// Browse issues exactly one fetch for the given query and returns the
// controller's snapshot after the response has been considered. When the
// response turns out stale (a newer fetch was issued meanwhile) it is
// discarded and the current snapshot is returned instead.
func (c *Controller[T]) Browse(ctx context.Context, query url.Values) Snapshot[T] {
	n := c.issue()
	items, err := c.fetch(ctx, query)
	return c.apply(n, items, err)
}

// Debounced schedules a fetch for the given query after the quiet period,
// coalescing calls that arrive within it into a single fetch for the
// last-seen query. The returned channel yields the settled snapshot once.
func (c *Controller[T]) Debounced(ctx context.Context, query url.Values) <-chan Snapshot[T] {
	ch := make(chan Snapshot[T], 1)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending = query
	c.pendingCtx = ctx
	c.waiters = append(c.waiters, ch)
	if c.timer == nil {
		c.timer = time.AfterFunc(c.debounce, c.flush)
	} else {
		c.timer.Reset(c.debounce)
	}
	return ch
}

// Snapshot returns the current renderable state without issuing a fetch.
func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

func (c *Controller[T]) issue() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

func (c *Controller[T]) apply(n uint64, items []T, err error) Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Only the most recently issued fetch may set the snapshot.
	if n != c.seq || n <= c.applied {
		metrics.BrowseStaleDropsTotal.WithLabelValues(c.catalog).Inc()
		c.log.Debug().
			Uint64("seq", n).
			Uint64("latest", c.seq).
			Str("catalog", c.catalog).
			Msg("discarding stale catalog response")
		return c.snap
	}

	c.applied = n
	if err != nil {
		c.log.Error().Err(err).Str("catalog", c.catalog).Msg("catalog fetch failed")
		// Keep the prior list; the page surfaces the error with a retry.
		c.snap = Snapshot[T]{Items: c.snap.Items, Err: err, Seq: n}
		return c.snap
	}
	c.snap = Snapshot[T]{Items: items, Seq: n}
	return c.snap
}

func (c *Controller[T]) flush() {
	c.mu.Lock()
	ctx := c.pendingCtx
	query := c.pending
	waiters := c.waiters
	c.pending = nil
	c.pendingCtx = nil
	c.waiters = nil
	c.timer = nil
	c.mu.Unlock()

	// A Debounced call racing the timer between its firing and this lock
	// acquisition re-arms the fired timer, so flush can run again with an
	// already-consumed queue. That run must not issue a fetch.
	if len(waiters) == 0 {
		return
	}

	if ctx == nil {
		ctx = context.Background()
	}
	snap := c.Browse(ctx, query)
	for _, ch := range waiters {
		ch <- snap
	}
}
