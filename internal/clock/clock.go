// Package clock abstracts the time source used by timer-driven code.
//
// Production code takes a Clock and is handed Real(). Tests hand it a
// FakeClock, which only moves when Advance is called, so timer chains
// can be stepped through deterministically:
//
//	c := clock.Fake(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
//	d, _ := typewriter.New(cfg, typewriter.WithClock(c))
//	d.Start()
//	c.Advance(150 * time.Millisecond) // first character appears
package clock

import "time"

// Clock is the subset of the time package that schedulers need.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc calls f once d has elapsed. The returned Timer can
	// cancel the call.
	AfterFunc(d time.Duration, f func()) *Timer
}

// Timer is a pending AfterFunc call.
type Timer struct {
	stop func() bool
}

// Stop cancels the pending call. It reports whether the call was still
// pending; false means it already fired or was stopped before.
func (t *Timer) Stop() bool {
	if t == nil || t.stop == nil {
		return false
	}
	return t.stop()
}

// Real returns a Clock backed by the time package.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) *Timer {
	t := time.AfterFunc(d, f)
	return &Timer{stop: t.Stop}
}
