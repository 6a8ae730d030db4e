package calm

import (
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"tableflip.dev/weiwei/pkg/clock"
	"tableflip.dev/weiwei/pkg/phase"
	"tableflip.dev/weiwei/pkg/quiz"
)

func newController(t *testing.T) (*Controller, *clockwork.FakeClock, *atomic.Int32) {
	t.Helper()
	fake := clockwork.NewFakeClockAt(time.Unix(0, 0))
	changes := new(atomic.Int32)
	c, err := New(Options{
		Clock:      fake,
		BubbleRand: rand.New(rand.NewPCG(1, 2)),
		QuizRand:   rand.New(rand.NewPCG(3, 4)),
		Changed:    func() { changes.Add(1) },
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(c.Close)
	return c, fake, changes
}

// waitFor polls c until ok holds. Timer callbacks run on their own
// goroutines after the fake clock moves.
func waitFor(t *testing.T, c *Controller, what string, ok func(State) bool) State {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		st := c.State()
		if ok(st) {
			return st
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s, state %+v", what, st)
		}
		time.Sleep(time.Millisecond)
	}
}

// stepBreathing moves fake to the next breathing event and waits for it to
// land. It reports false once the session has handed off to the celebration.
func stepBreathing(t *testing.T, c *Controller, fake *clockwork.FakeClock) bool {
	t.Helper()
	st := c.State()
	if st.Celebrating {
		return false
	}
	b := st.Breath
	step := phase.Breathing478().Steps[b.Phase]
	switch {
	case b.Finished:
	case !step.Countdown:
		fake.Advance(step.Duration)
	case b.Remaining > 0:
		fake.Advance(time.Second)
	}
	waitFor(t, c, "next breathing step", func(s State) bool { return s.Celebrating || s.Breath != b })
	return true
}

func TestBreatheCelebratesThenReturnsToMenu(t *testing.T) {
	c, fake, _ := newController(t)
	if err := c.Enter(Breathe); err != nil {
		t.Fatalf("Enter: %v", err)
	}
	for stepBreathing(t, c, fake) {
	}
	st := c.State()
	if !st.Celebrating || st.Mode != Breathe {
		t.Fatalf("expected celebration, got %+v", st)
	}
	if err := c.Enter(Game); err != ErrCelebrating {
		t.Fatalf("want ErrCelebrating, got %v", err)
	}
	fake.Advance(CelebrationDuration)
	waitFor(t, c, "menu", func(st State) bool { return !st.Celebrating && st.Mode == Menu })
	if !clock.Idle(fake, 50*time.Millisecond) {
		t.Fatalf("timers pending after the celebration")
	}
}

func TestBackCancelsBreathing(t *testing.T) {
	c, fake, _ := newController(t)
	if err := c.Enter(Breathe); err != nil {
		t.Fatalf("Enter: %v", err)
	}
	for i := 0; i < 5; i++ {
		stepBreathing(t, c, fake)
	}
	c.Back()
	if !clock.Idle(fake, 50*time.Millisecond) {
		t.Fatalf("timers pending after Back")
	}
	fake.Advance(time.Minute)
	time.Sleep(20 * time.Millisecond)
	if st := c.State(); st.Celebrating || st.Mode != Menu {
		t.Fatalf("late callback fired: %+v", st)
	}
}

func TestBackRacingEnterLeavesNoTimers(t *testing.T) {
	c, fake, _ := newController(t)
	for i := 0; i < 50; i++ {
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := c.Enter(Breathe); err != nil {
				t.Errorf("Enter: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			c.Back()
		}()
		wg.Wait()
		if c.State().Mode == Menu && !clock.Idle(fake, 10*time.Millisecond) {
			t.Fatalf("round %d: back in the menu with a breathing session still armed", i)
		}
		c.Back()
	}
}

func TestGameCelebratesOnce(t *testing.T) {
	c, fake, _ := newController(t)
	if err := c.Enter(Game); err != nil {
		t.Fatalf("Enter: %v", err)
	}
	for _, b := range c.State().Bubbles {
		if ok, err := c.Pop(b.ID); !ok || err != nil {
			t.Fatalf("pop %d: %v %v", b.ID, ok, err)
		}
	}
	if c.State().Celebrating {
		t.Fatalf("celebrated before the pop delay")
	}
	fake.Advance(500 * time.Millisecond)
	waitFor(t, c, "celebration", func(st State) bool { return st.Celebrating })
	if _, err := c.Pop(0); err != ErrWrongMode {
		t.Fatalf("pop during celebration: %v", err)
	}
	fake.Advance(CelebrationDuration)
	waitFor(t, c, "menu", func(st State) bool { return st.Mode == Menu && !st.Celebrating })
}

func TestAskFlow(t *testing.T) {
	c, fake, _ := newController(t)
	if err := c.Enter(Ask); err != nil {
		t.Fatalf("Enter: %v", err)
	}
	if err := c.Complete(); err != ErrWrongMode {
		t.Fatalf("complete from the question screen: %v", err)
	}
	before := c.State().QuestionIdx
	if err := c.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	st := c.State()
	if st.QuestionIdx == before {
		t.Fatalf("refresh repeated question %d", before)
	}

	eat := -1
	for i, o := range st.Question.Options {
		if o.Action == quiz.Eat {
			eat = i
		}
	}
	out, err := c.Answer(eat)
	if err != nil || out != quiz.Eat {
		t.Fatalf("Answer: %v %v", out, err)
	}
	if c.State().AskView != AskEat {
		t.Fatalf("expected eat view")
	}
	if _, err := c.Answer(0); err != ErrWrongMode {
		t.Fatalf("second answer: %v", err)
	}
	if err := c.Complete(); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if !c.State().Celebrating {
		t.Fatalf("expected celebration")
	}
	fake.Advance(CelebrationDuration)
	waitFor(t, c, "menu", func(st State) bool { return st.Mode == Menu })
}

func TestAskWaterRoutesToDistract(t *testing.T) {
	c, _, _ := newController(t)
	if err := c.Enter(Ask); err != nil {
		t.Fatalf("Enter: %v", err)
	}
	for c.State().QuestionIdx != 3 {
		if err := c.Refresh(); err != nil {
			t.Fatalf("Refresh: %v", err)
		}
	}
	out, err := c.Answer(0)
	if err != nil || out != quiz.Distract {
		t.Fatalf("Answer: %v %v", out, err)
	}
	if c.State().AskView != AskDistract {
		t.Fatalf("expected distract view")
	}
}

func TestCloseStopsCelebration(t *testing.T) {
	c, fake, changes := newController(t)
	if err := c.Enter(Game); err != nil {
		t.Fatalf("Enter: %v", err)
	}
	for _, b := range c.State().Bubbles {
		c.Pop(b.ID)
	}
	fake.Advance(500 * time.Millisecond)
	waitFor(t, c, "celebration", func(st State) bool { return st.Celebrating })
	c.Close()
	n := changes.Load()
	fake.Advance(time.Minute)
	time.Sleep(20 * time.Millisecond)
	if changes.Load() != n || !clock.Idle(fake, 10*time.Millisecond) {
		t.Fatalf("callbacks ran after Close")
	}
}
