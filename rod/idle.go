package rod

import (
	"context"
	"sync"
	"time"

	"github.com/go-rod/rod/lib/proto"
)

// Network idle heuristic: at most idleMaxInflight requests outstanding for
// the quiet period.
const (
	idleMaxInflight  = 2
	idlePollInterval = 50 * time.Millisecond
)

// idleTracker counts in-flight network requests of a page.
// idleTracker is safe for concurrent use.
type idleTracker struct {
	mu          sync.Mutex
	inflight    map[proto.NetworkRequestID]struct{}
	maxInflight int
	quiet       time.Duration
	since       time.Time
	now         func() time.Time
}

func newIdleTracker(maxInflight int, quiet time.Duration) *idleTracker {
	t := &idleTracker{
		inflight:    make(map[proto.NetworkRequestID]struct{}),
		maxInflight: maxInflight,
		quiet:       quiet,
		now:         time.Now,
	}
	t.since = t.now()
	return t
}

// start records a request. Redirects reuse the request ID and are counted once.
func (t *idleTracker) start(id proto.NetworkRequestID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.inflight[id] = struct{}{}
}

// finish records a completed or failed request.
func (t *idleTracker) finish(id proto.NetworkRequestID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.inflight[id]; !ok {
		return
	}
	busy := len(t.inflight) > t.maxInflight
	delete(t.inflight, id)
	if busy && len(t.inflight) <= t.maxInflight {
		t.since = t.now()
	}
}

// idle reports whether the page has been quiet for the full quiet period.
func (t *idleTracker) idle() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.inflight) > t.maxInflight {
		return false
	}
	return t.now().Sub(t.since) >= t.quiet
}

// reset restarts the quiet period, typically right before navigating.
func (t *idleTracker) reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.since = t.now()
}

// wait blocks until the page is idle or ctx is done.
func (t *idleTracker) wait(ctx context.Context) error {
	ticker := time.NewTicker(idlePollInterval)
	defer ticker.Stop()
	for {
		if t.idle() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
