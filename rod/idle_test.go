package rod

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestTracker(quiet time.Duration) (*idleTracker, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	tr := newIdleTracker(idleMaxInflight, quiet)
	tr.now = clock.now
	tr.since = clock.now()
	return tr, clock
}

func TestIdleTracker(t *testing.T) {
	t.Parallel()

	t.Run("idle after the quiet period with no requests", func(t *testing.T) {
		t.Parallel()

		tr, clock := newTestTracker(500 * time.Millisecond)
		assert.False(t, tr.idle())

		clock.advance(500 * time.Millisecond)
		assert.True(t, tr.idle())
	})

	t.Run("tolerates up to two in-flight requests", func(t *testing.T) {
		t.Parallel()

		tr, clock := newTestTracker(500 * time.Millisecond)
		tr.start("a")
		tr.start("b")
		clock.advance(time.Second)

		assert.True(t, tr.idle())
	})

	t.Run("busy while more than two requests are in flight", func(t *testing.T) {
		t.Parallel()

		tr, clock := newTestTracker(500 * time.Millisecond)
		tr.start("a")
		tr.start("b")
		tr.start("c")
		clock.advance(time.Second)

		assert.False(t, tr.idle())
	})

	t.Run("quiet period restarts when load drops to the threshold", func(t *testing.T) {
		t.Parallel()

		tr, clock := newTestTracker(500 * time.Millisecond)
		tr.start("a")
		tr.start("b")
		tr.start("c")
		clock.advance(time.Second)
		tr.finish("c")

		assert.False(t, tr.idle())
		clock.advance(499 * time.Millisecond)
		assert.False(t, tr.idle())
		clock.advance(time.Millisecond)
		assert.True(t, tr.idle())
	})

	t.Run("redirects reuse the request id", func(t *testing.T) {
		t.Parallel()

		tr, clock := newTestTracker(500 * time.Millisecond)
		tr.start("a")
		tr.start("a")
		tr.start("a")
		tr.start("b")
		clock.advance(time.Second)

		assert.True(t, tr.idle())
	})

	t.Run("unknown finishes are ignored", func(t *testing.T) {
		t.Parallel()

		tr, clock := newTestTracker(500 * time.Millisecond)
		tr.finish("never-started")
		clock.advance(500 * time.Millisecond)

		assert.True(t, tr.idle())
	})

	t.Run("reset restarts the quiet period", func(t *testing.T) {
		t.Parallel()

		tr, clock := newTestTracker(500 * time.Millisecond)
		clock.advance(time.Second)
		tr.reset()

		assert.False(t, tr.idle())
	})
}

func TestIdleTracker_Wait(t *testing.T) {
	t.Parallel()

	t.Run("returns once idle", func(t *testing.T) {
		t.Parallel()

		tr := newIdleTracker(idleMaxInflight, 10*time.Millisecond)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		require.NoError(t, tr.wait(ctx))
	})

	t.Run("returns the context error while busy", func(t *testing.T) {
		t.Parallel()

		tr := newIdleTracker(idleMaxInflight, 10*time.Millisecond)
		tr.start("a")
		tr.start("b")
		tr.start("c")

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		err := tr.wait(ctx)

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
