// Package phase runs table-driven guided sessions such as 4-7-8 breathing.
// All timing goes through a clock.Clock so sessions can be driven by hand in
// tests.
package phase

import (
	"errors"
	"sync"
	"time"

	"tableflip.dev/weiwei/pkg/clock"
)

var (
	// ErrStarted is returned when Start is called twice on one Session.
	ErrStarted = errors.New("phase: session already started")
	// ErrCancelled is returned when Start is called after Cancel.
	ErrCancelled = errors.New("phase: session cancelled")
)

// Snapshot is what a view needs to render the session.
type Snapshot struct {
	Phase     Phase
	Label     string
	Remaining int
	// Countdown is set while Remaining is a visible per-second counter,
	// including its final 0.
	Countdown bool
	Finished  bool
	Cancelled bool
}

type Option func(*Session)

// WithObserver registers f to be called after every visible change. f runs
// with the session locked, so it must not block or call back into the
// session.
func WithObserver(f func(Snapshot)) Option {
	return func(s *Session) { s.observe = f }
}

// Session is a single run through a Table. It is not reusable.
type Session struct {
	mu       sync.Mutex
	clock    clock.Clock
	table    Table
	onFinish func()
	observe  func(Snapshot)

	// epoch changes on every transition and on Cancel; callbacks from an
	// older epoch are ignored.
	epoch     int
	phase     Phase
	remaining int
	started   bool
	finished  bool
	cancelled bool
	phaseT    clock.Timer
	tickT     clock.Timer
}

// New validates table and returns an idle session. onFinish is called once
// when the session reaches the table's final phase.
func New(c clock.Clock, table Table, onFinish func(), opts ...Option) (*Session, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	s := &Session{clock: clock.OrReal(c), table: table, onFinish: onFinish, phase: Idle}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelled {
		return ErrCancelled
	}
	if s.started {
		return ErrStarted
	}
	s.started = true
	s.enterLocked(s.table.Start)
	s.notifyLocked()
	return nil
}

// Cancel stops every pending timer. Once Cancel returns the observer is not
// called again, and onFinish never runs unless the session had already
// finished.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished || s.cancelled {
		return
	}
	s.cancelled = true
	s.epoch++
	s.stopTimersLocked()
	s.notifyLocked()
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) enterLocked(p Phase) {
	s.epoch++
	s.stopTimersLocked()
	s.phase = p
	s.remaining = 0
	if p == s.table.Final {
		s.finished = true
		return
	}
	step := s.table.Steps[p]
	epoch := s.epoch
	if step.Countdown {
		s.remaining = int(step.Duration / time.Second)
		s.scheduleTickLocked(epoch)
	}
	s.phaseT = s.clock.AfterFunc(step.Duration, func() { s.advance(epoch) })
}

func (s *Session) scheduleTickLocked(epoch int) {
	if s.remaining <= 0 {
		return
	}
	s.tickT = s.clock.AfterFunc(time.Second, func() { s.tick(epoch) })
}

func (s *Session) tick(epoch int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch || s.remaining <= 0 {
		return
	}
	s.remaining--
	s.scheduleTickLocked(epoch)
	s.notifyLocked()
}

// advance leaves the current phase. A countdown that has not shown 0 yet
// shows it first, whichever of the final tick and the phase timer fires
// first.
func (s *Session) advance(epoch int) {
	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		return
	}
	if s.table.Steps[s.phase].Countdown && s.remaining > 0 {
		s.remaining = 0
		s.notifyLocked()
	}
	s.enterLocked(s.table.Steps[s.phase].Next)
	s.notifyLocked()
	finished := s.finished
	s.mu.Unlock()

	if finished && s.onFinish != nil {
		s.onFinish()
	}
}

func (s *Session) stopTimersLocked() {
	if s.phaseT != nil {
		s.phaseT.Stop()
		s.phaseT = nil
	}
	if s.tickT != nil {
		s.tickT.Stop()
		s.tickT = nil
	}
}

func (s *Session) snapshotLocked() Snapshot {
	step := s.table.Steps[s.phase]
	return Snapshot{
		Phase:     s.phase,
		Label:     step.Label,
		Remaining: s.remaining,
		Countdown: step.Countdown && !s.finished,
		Finished:  s.finished,
		Cancelled: s.cancelled,
	}
}

func (s *Session) notifyLocked() {
	if s.observe != nil {
		s.observe(s.snapshotLocked())
	}
}
