// Package clock is the single time source for timer-driven flows. Production
// code uses Real; tests drive a clockwork.FakeClock by hand.
package clock

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// Clock schedules callbacks and reports the current time.
type Clock = clockwork.Clock

// Timer is a pending timer or callback. Stop reports whether it prevented
// the expiry.
type Timer = clockwork.Timer

// Real is backed by the time package.
func Real() Clock {
	return clockwork.NewRealClock()
}

// OrReal returns c, or the real clock when c is nil.
func OrReal(c Clock) Clock {
	if c == nil {
		return Real()
	}
	return c
}

// Sleep blocks for d on c, returning early with ctx's error if ctx ends first.
func Sleep(ctx context.Context, c Clock, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := OrReal(c).NewTimer(d)
	select {
	case <-t.Chan():
		return nil
	case <-ctx.Done():
		t.Stop()
		return ctx.Err()
	}
}

// Idle reports whether fc has no pending timers, waiting up to wait for one
// to appear.
func Idle(fc *clockwork.FakeClock, wait time.Duration) bool {
	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()
	return fc.BlockUntilContext(ctx, 1) != nil
}
