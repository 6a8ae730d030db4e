// Package bubble is the pop-the-bubbles distraction game.
package bubble

import (
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"tableflip.dev/weiwei/pkg/clock"
)

const (
	// DefaultCount is how many bubbles a new game starts with.
	DefaultCount = 12
	// CompletionDelay lets the last pop animation finish before completion.
	CompletionDelay = 500 * time.Millisecond
)

// Color is a palette class, assigned by index.
type Color string

const (
	Blue   Color = "blue"
	Pink   Color = "pink"
	Yellow Color = "yellow"
	Green  Color = "green"
)

// Palette is cycled through by bubble index.
var Palette = []Color{Blue, Pink, Yellow, Green}

var ErrUnknownBubble = errors.New("bubble: unknown id")

// Target is one bubble. Top and Left are percentages of the play area, Size
// is in pixels and Delay is the float animation offset.
type Target struct {
	ID     int
	Top    float64
	Left   float64
	Size   float64
	Delay  time.Duration
	Color  Color
	Popped bool
}

// Rand is the subset of *rand.Rand used for layout.
type Rand interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// Generate lays out n unpopped targets with ids 0..n-1.
func Generate(n int, rng Rand) []Target {
	if rng == nil {
		rng = globalRand{}
	}
	targets := make([]Target, n)
	for i := range targets {
		targets[i] = Target{
			ID:    i,
			Top:   10 + rng.Float64()*60,
			Left:  10 + rng.Float64()*70,
			Size:  50 + rng.Float64()*40,
			Delay: time.Duration(rng.Float64() * float64(2*time.Second)),
			Color: Palette[i%len(Palette)],
		}
	}
	return targets
}

// Field tracks pops and fires onComplete once, CompletionDelay after the
// last target is popped.
type Field struct {
	mu         sync.Mutex
	clock      clock.Clock
	targets    []Target
	popped     int
	onComplete func()
	timer      clock.Timer
	completing bool
	stopped    bool
}

func NewField(c clock.Clock, targets []Target, onComplete func()) *Field {
	f := &Field{clock: clock.OrReal(c), targets: append([]Target(nil), targets...), onComplete: onComplete}
	for _, t := range f.targets {
		if t.Popped {
			f.popped++
		}
	}
	return f
}

// Pop marks id popped. Popping an already-popped id changes nothing and
// reports false.
func (f *Field) Pop(id int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id < 0 || id >= len(f.targets) || f.targets[id].ID != id {
		return false, ErrUnknownBubble
	}
	if f.targets[id].Popped || f.stopped {
		return false, nil
	}
	f.targets[id].Popped = true
	f.popped++
	if f.popped == len(f.targets) && !f.completing {
		f.completing = true
		f.timer = f.clock.AfterFunc(CompletionDelay, f.complete)
	}
	return true, nil
}

func (f *Field) complete() {
	f.mu.Lock()
	if f.stopped {
		f.mu.Unlock()
		return
	}
	f.stopped = true
	f.timer = nil
	f.mu.Unlock()
	if f.onComplete != nil {
		f.onComplete()
	}
}

// Stop cancels a pending completion. Nothing fires after Stop returns.
func (f *Field) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}

// Targets returns a copy of the current field.
func (f *Field) Targets() []Target {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Target(nil), f.targets...)
}

// Remaining is the number of unpopped targets.
func (f *Field) Remaining() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.targets) - f.popped
}
