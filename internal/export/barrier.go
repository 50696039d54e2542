package export

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Barrier releases once every registered id has settled.
type Barrier struct {
	mu       sync.Mutex
	pending  map[string]struct{}
	done     chan struct{}
	released bool
}

// NewBarrier returns an empty barrier. Wait on an empty barrier returns
// immediately.
func NewBarrier() *Barrier {
	return &Barrier{
		pending: make(map[string]struct{}),
		done:    make(chan struct{}),
	}
}

// Register adds ids that must settle before Wait returns.
func (b *Barrier) Register(ids ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, id := range ids {
		b.pending[id] = struct{}{}
	}
	if b.released && len(b.pending) > 0 {
		b.done = make(chan struct{})
		b.released = false
	}
}

// Settle marks id as done. Unknown or already settled ids are ignored.
func (b *Barrier) Settle(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.pending[id]; !ok {
		return
	}
	delete(b.pending, id)
	if len(b.pending) == 0 && !b.released {
		close(b.done)
		b.released = true
	}
}

// Pending returns the number of unsettled ids.
func (b *Barrier) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

// Wait blocks until every id settles, ctx ends, or timeout elapses.
// A non-positive timeout waits on ctx alone.
func (b *Barrier) Wait(ctx context.Context, timeout time.Duration) error {
	b.mu.Lock()
	if len(b.pending) == 0 {
		b.mu.Unlock()
		return nil
	}
	done := b.done
	b.mu.Unlock()

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-expired:
		return fmt.Errorf("%w: %d still pending after %s", ErrImageTimeout, b.Pending(), timeout)
	}
}
