package timer

import (
	"sync"
	"time"
)

// Timer is a single cancellable countdown. The Game actor arms at
// most one at a time and selects on its Done channel alongside its
// inbound mailbox.
type Timer struct {
	clock Clock

	mu      sync.Mutex
	startAt time.Time
	total   time.Duration
	done    chan struct{}
	settled bool // true once Skip or the real deadline has fired, or Cancel dropped it
}

// New creates a Timer driven by clock. Use timer.Real in production
// and a *ManualClock in tests.
func New(clock Clock) *Timer {
	return &Timer{clock: clock}
}

// Start arms the timer for total and returns the channel that fires
// exactly once when the countdown completes, whether by elapsing
// naturally or by Skip. Cancel prevents the channel from ever firing.
func (t *Timer) Start(total time.Duration) <-chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.startAt = t.clock.Now()
	t.total = total
	t.done = make(chan struct{})
	t.settled = false
	done := t.done

	after := t.clock.After(total)
	go func() {
		<-after
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.done != done || t.settled {
			return
		}
		t.settled = true
		close(done)
	}()

	return done
}

// Sample returns (total, elapsed) with elapsed clamped to total.
func (t *Timer) Sample() (time.Duration, time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done == nil {
		return 0, 0
	}
	elapsed := t.clock.Now().Sub(t.startAt)
	if elapsed > t.total {
		elapsed = t.total
	}
	if elapsed < 0 {
		elapsed = 0
	}
	return t.total, elapsed
}

// Skip forces the countdown to its end and fires completion exactly
// once, even if called after natural completion.
func (t *Timer) Skip() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done == nil || t.settled {
		return
	}
	t.settled = true
	close(t.done)
}

// Cancel drops the completion signal without firing it. A later
// natural elapse or Skip on this instance is a no-op.
func (t *Timer) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.settled = true
	t.done = nil
}
