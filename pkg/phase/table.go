package phase

import (
	"errors"
	"fmt"
	"time"
)

// Phase names one state of a guided session.
type Phase string

const (
	Idle   Phase = "idle"
	Ready  Phase = "ready"
	Inhale Phase = "inhale"
	Hold   Phase = "hold"
	Exhale Phase = "exhale"
	Done   Phase = "done"
)

// Step is one row of a Table: how long a phase lasts and what follows it.
type Step struct {
	Label    string
	Duration time.Duration
	Next     Phase
	// Countdown exposes a per-second counter while the phase is active.
	Countdown bool
}

// Table drives a Session from Start until it reaches Final.
type Table struct {
	Start Phase
	Final Phase
	Steps map[Phase]Step
}

var errBadTable = errors.New("phase: invalid table")

// Validate checks that the chain from Start reaches Final without loops and
// that every step has a positive duration.
func (t Table) Validate() error {
	if t.Start == t.Final {
		return fmt.Errorf("%w: start equals final", errBadTable)
	}
	seen := map[Phase]bool{}
	for p := t.Start; p != t.Final; {
		if seen[p] {
			return fmt.Errorf("%w: loop at %q", errBadTable, p)
		}
		seen[p] = true
		step, ok := t.Steps[p]
		if !ok {
			return fmt.Errorf("%w: no step for %q", errBadTable, p)
		}
		if step.Duration <= 0 {
			return fmt.Errorf("%w: %q has non-positive duration", errBadTable, p)
		}
		p = step.Next
	}
	return nil
}

// Total is the time from Start to Final.
func (t Table) Total() time.Duration {
	var d time.Duration
	for p := t.Start; p != t.Final; p = t.Steps[p].Next {
		d += t.Steps[p].Duration
	}
	return d
}

// Breathing478 is the 4-7-8 breathing exercise with a short pre-roll.
func Breathing478() Table {
	return Table{
		Start: Ready,
		Final: Done,
		Steps: map[Phase]Step{
			Ready:  {Label: "准备", Duration: 500 * time.Millisecond, Next: Inhale},
			Inhale: {Label: "吸气", Duration: 4 * time.Second, Next: Hold, Countdown: true},
			Hold:   {Label: "屏气", Duration: 7 * time.Second, Next: Exhale, Countdown: true},
			Exhale: {Label: "呼气", Duration: 8 * time.Second, Next: Done, Countdown: true},
		},
	}
}
