package clock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

var epoch = time.Date(2023, time.October, 27, 0, 0, 0, 0, time.UTC)

func waitTimers(t *testing.T, fc *clockwork.FakeClock, n int) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := fc.BlockUntilContext(ctx, n); err != nil {
		t.Fatalf("waiting for %d timers: %v", n, err)
	}
}

func TestSleep(t *testing.T) {
	fc := clockwork.NewFakeClockAt(epoch)
	done := make(chan error, 1)
	go func() { done <- Sleep(context.Background(), fc, time.Second) }()
	waitTimers(t, fc, 1)

	fc.Advance(999 * time.Millisecond)
	select {
	case err := <-done:
		t.Fatalf("woke early: %v", err)
	default:
	}
	fc.Advance(time.Millisecond)
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("sleep: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("sleep never returned")
	}
}

func TestSleepCancelled(t *testing.T) {
	fc := clockwork.NewFakeClockAt(epoch)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Sleep(ctx, fc, time.Hour) }()
	waitTimers(t, fc, 1)
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if !Idle(fc, 20*time.Millisecond) {
		t.Fatalf("expected cancelled sleep to stop its timer")
	}
}

func TestSleepZero(t *testing.T) {
	if err := Sleep(context.Background(), clockwork.NewFakeClockAt(epoch), 0); err != nil {
		t.Fatalf("zero sleep: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Sleep(ctx, nil, 0); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestOrReal(t *testing.T) {
	fc := clockwork.NewFakeClockAt(epoch)
	if OrReal(fc) != Clock(fc) {
		t.Fatalf("OrReal replaced a configured clock")
	}
	if OrReal(nil) == nil {
		t.Fatalf("OrReal(nil) returned nil")
	}
}
