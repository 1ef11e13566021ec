package clock

import (
	"sync"
	"time"
)

// FakeClock is a Clock whose time only moves on Advance.
//
// Callbacks run synchronously inside Advance, in deadline order, with the
// clock's Now set to each callback's own deadline. A callback that
// schedules another AfterFunc inside the advanced window is fired in the
// same Advance call, so a whole chain of timers can be replayed with one
// call. Callbacks must not call Advance.
type FakeClock struct {
	mu      sync.Mutex
	now     time.Time
	seq     uint64
	pending []*fakeTimer
	changed *sync.Cond
}

type fakeTimer struct {
	deadline time.Time
	seq      uint64
	fn       func()
}

// Fake returns a FakeClock set to start.
func Fake(start time.Time) *FakeClock {
	c := &FakeClock{now: start}
	c.changed = sync.NewCond(&c.mu)
	return c
}

// Now returns the fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc registers f to run when the clock reaches Now()+d. A
// non-positive d fires on the next Advance, including Advance(0).
func (c *FakeClock) AfterFunc(d time.Duration, f func()) *Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	if d < 0 {
		d = 0
	}
	c.seq++
	ft := &fakeTimer{deadline: c.now.Add(d), seq: c.seq, fn: f}
	c.pending = append(c.pending, ft)
	c.changed.Broadcast()

	return &Timer{stop: func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.removeLocked(ft)
	}}
}

// Advance moves the clock forward by d, firing every timer whose deadline
// falls inside the window.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	for {
		next := c.earliestLocked()
		if next == nil || next.deadline.After(target) {
			break
		}
		c.removeLocked(next)
		if next.deadline.After(c.now) {
			c.now = next.deadline
		}
		c.mu.Unlock()
		next.fn()
		c.mu.Lock()
	}
	c.now = target
	c.mu.Unlock()
}

// WaitForTimers blocks until at least n timers are pending. Use it when
// the timer is registered by another goroutine, before calling Advance.
func (c *FakeClock) WaitForTimers(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for len(c.pending) < n {
		c.changed.Wait()
	}
}

// PendingCount returns the number of timers that have neither fired nor
// been stopped.
func (c *FakeClock) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

func (c *FakeClock) earliestLocked() *fakeTimer {
	var best *fakeTimer
	for _, ft := range c.pending {
		if best == nil || ft.deadline.Before(best.deadline) ||
			(ft.deadline.Equal(best.deadline) && ft.seq < best.seq) {
			best = ft
		}
	}
	return best
}

func (c *FakeClock) removeLocked(target *fakeTimer) bool {
	for i, ft := range c.pending {
		if ft == target {
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			c.changed.Broadcast()
			return true
		}
	}
	return false
}
