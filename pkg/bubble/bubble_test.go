package bubble

import (
	"math/rand/v2"
	"reflect"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"tableflip.dev/weiwei/pkg/clock"
)

func TestGenerateLayout(t *testing.T) {
	targets := Generate(DefaultCount, rand.New(rand.NewPCG(3, 4)))
	if len(targets) != DefaultCount {
		t.Fatalf("got %d targets", len(targets))
	}
	for i, b := range targets {
		if b.ID != i || b.Popped {
			t.Fatalf("target %d: %+v", i, b)
		}
		if b.Top < 10 || b.Top > 70 || b.Left < 10 || b.Left > 80 || b.Size < 50 || b.Size > 90 {
			t.Fatalf("target %d out of range: %+v", i, b)
		}
		if b.Delay < 0 || b.Delay > 2*time.Second {
			t.Fatalf("target %d delay %v", i, b.Delay)
		}
		if b.Color != Palette[i%4] {
			t.Fatalf("target %d color %s", i, b.Color)
		}
	}
	again := Generate(DefaultCount, rand.New(rand.NewPCG(3, 4)))
	if !reflect.DeepEqual(targets, again) {
		t.Fatalf("same seed gave different layouts")
	}
}

func TestPopIsIdempotent(t *testing.T) {
	f := NewField(clockwork.NewFakeClockAt(time.Unix(0, 0)), Generate(3, rand.New(rand.NewPCG(1, 2))), nil)
	if ok, err := f.Pop(1); !ok || err != nil {
		t.Fatalf("first pop: %v %v", ok, err)
	}
	before := f.Targets()
	if ok, err := f.Pop(1); ok || err != nil {
		t.Fatalf("second pop: %v %v", ok, err)
	}
	if !reflect.DeepEqual(before, f.Targets()) {
		t.Fatalf("second pop changed the field")
	}
	if f.Remaining() != 2 {
		t.Fatalf("remaining = %d", f.Remaining())
	}
	if _, err := f.Pop(9); err != ErrUnknownBubble {
		t.Fatalf("want ErrUnknownBubble, got %v", err)
	}
}

func TestPopAllCompletesOnceAfterDelay(t *testing.T) {
	fake := clockwork.NewFakeClockAt(time.Unix(0, 0))
	calls := make(chan struct{}, 4)
	f := NewField(fake, Generate(DefaultCount, rand.New(rand.NewPCG(5, 6))), func() { calls <- struct{}{} })
	for i := 0; i < DefaultCount; i++ {
		if _, err := f.Pop(i); err != nil {
			t.Fatalf("pop %d: %v", i, err)
		}
	}
	for i := 0; i < DefaultCount; i++ {
		f.Pop(i)
	}
	fake.Advance(CompletionDelay - time.Millisecond)
	select {
	case <-calls:
		t.Fatalf("completed before the delay")
	case <-time.After(20 * time.Millisecond):
	}
	fake.Advance(time.Millisecond)
	select {
	case <-calls:
	case <-time.After(2 * time.Second):
		t.Fatalf("completion never fired")
	}
	if !clock.Idle(fake, 50*time.Millisecond) {
		t.Fatalf("second completion timer armed")
	}
	fake.Advance(time.Minute)
	select {
	case <-calls:
		t.Fatalf("completion fired twice")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestStopCancelsCompletion(t *testing.T) {
	fake := clockwork.NewFakeClockAt(time.Unix(0, 0))
	calls := make(chan struct{}, 1)
	f := NewField(fake, Generate(1, nil), func() { calls <- struct{}{} })
	f.Pop(0)
	f.Stop()
	if !clock.Idle(fake, 50*time.Millisecond) {
		t.Fatalf("timer still armed after Stop")
	}
	fake.Advance(time.Second)
	select {
	case <-calls:
		t.Fatalf("completion ran after Stop")
	case <-time.After(20 * time.Millisecond):
	}
}
