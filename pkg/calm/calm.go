// Package calm drives the emergency tab: a menu of short calming sessions
// that all end in the same celebration before returning to the menu.
package calm

import (
	"errors"
	"sync"
	"time"

	"tableflip.dev/weiwei/pkg/bubble"
	"tableflip.dev/weiwei/pkg/clock"
	"tableflip.dev/weiwei/pkg/phase"
	"tableflip.dev/weiwei/pkg/quiz"
)

// Mode is the active calm activity.
type Mode int

const (
	Menu Mode = iota
	Breathe
	Game
	Ask
)

func (m Mode) String() string {
	switch m {
	case Breathe:
		return "breathe"
	case Game:
		return "game"
	case Ask:
		return "ask"
	default:
		return "menu"
	}
}

// AskView is the screen inside the Ask mode.
type AskView int

const (
	AskQuestion AskView = iota
	AskDistract
	AskEat
)

const (
	CelebrationDuration = 3 * time.Second
	CelebrationTitle    = "太棒啦!"
	CelebrationMessage  = "爱自己，从倾听身体的声音开始。"
)

var (
	ErrWrongMode   = errors.New("calm: action not available in this mode")
	ErrCelebrating = errors.New("calm: celebration in progress")
	ErrBadAnswer   = errors.New("calm: no such answer")
)

// State is a copy of everything a view renders.
type State struct {
	Mode        Mode
	Celebrating bool
	Breath      phase.Snapshot
	Bubbles     []bubble.Target
	Question    quiz.Question
	QuestionIdx int
	AskView     AskView
}

type Options struct {
	Clock   clock.Clock
	Table   phase.Table
	Bubbles int
	// BubbleRand and QuizRand default to the global sources.
	BubbleRand bubble.Rand
	QuizRand   quiz.Rand
	Questions  []quiz.Question
	// Changed is called after any asynchronous change. It must not block or
	// call back into the Controller synchronously.
	Changed func()
}

type Controller struct {
	mu      sync.Mutex
	clock   clock.Clock
	table   phase.Table
	bubbles int
	brng    bubble.Rand
	quiz    *quiz.Engine
	changed func()

	gen         int
	mode        Mode
	celebrating bool
	celebrateT  clock.Timer
	breath      *phase.Session
	field       *bubble.Field
	question    int
	askView     AskView
}

func New(o Options) (*Controller, error) {
	o.Clock = clock.OrReal(o.Clock)
	if o.Table.Steps == nil {
		o.Table = phase.Breathing478()
	}
	if err := o.Table.Validate(); err != nil {
		return nil, err
	}
	if o.Bubbles <= 0 {
		o.Bubbles = bubble.DefaultCount
	}
	if o.Questions == nil {
		o.Questions = quiz.Catalog()
	}
	engine, err := quiz.New(o.Questions, o.QuizRand)
	if err != nil {
		return nil, err
	}
	return &Controller{
		clock:   o.Clock,
		table:   o.Table,
		bubbles: o.Bubbles,
		brng:    o.BubbleRand,
		quiz:    engine,
		changed: o.Changed,
	}, nil
}

// Enter tears down the current activity and starts m. Subsessions start
// under c.mu, so a concurrent Back either runs first or cancels a session
// that is already armed.
func (c *Controller) Enter(m Mode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.celebrating {
		return ErrCelebrating
	}
	c.teardownLocked()
	c.mode = m
	gen := c.gen
	switch m {
	case Breathe:
		s, err := phase.New(c.clock, c.table, func() { c.finish(gen) },
			phase.WithObserver(func(phase.Snapshot) { c.notify() }))
		if err != nil {
			c.mode = Menu
			return err
		}
		if err := s.Start(); err != nil {
			c.mode = Menu
			return err
		}
		c.breath = s
	case Game:
		c.field = bubble.NewField(c.clock, bubble.Generate(c.bubbles, c.brng), func() { c.finish(gen) })
	case Ask:
		c.askView = AskQuestion
		c.question, _ = c.quiz.Pick(nil)
	}
	return nil
}

// Back abandons the current activity without celebrating.
func (c *Controller) Back() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.celebrating {
		return
	}
	c.teardownLocked()
	c.mode = Menu
}

// Pop pops a bubble in the game.
func (c *Controller) Pop(id int) (bool, error) {
	c.mu.Lock()
	field := c.field
	ok := c.mode == Game && !c.celebrating
	c.mu.Unlock()
	if !ok || field == nil {
		return false, ErrWrongMode
	}
	return field.Pop(id)
}

// Answer picks option i of the current question and moves to its outcome.
func (c *Controller) Answer(i int) (quiz.Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != Ask || c.askView != AskQuestion || c.celebrating {
		return "", ErrWrongMode
	}
	q := c.quiz.Question(c.question)
	if i < 0 || i >= len(q.Options) {
		return "", ErrBadAnswer
	}
	out := quiz.Classify(q.Options[i].Action)
	if out == quiz.Eat {
		c.askView = AskEat
	} else {
		c.askView = AskDistract
	}
	return out, nil
}

// Refresh shows a different question.
func (c *Controller) Refresh() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != Ask || c.celebrating {
		return ErrWrongMode
	}
	cur := c.question
	c.question, _ = c.quiz.Pick(&cur)
	c.askView = AskQuestion
	return nil
}

// Complete ends the ask flow from one of its outcome screens.
func (c *Controller) Complete() error {
	c.mu.Lock()
	ok := c.mode == Ask && c.askView != AskQuestion
	gen := c.gen
	c.mu.Unlock()
	if !ok {
		return ErrWrongMode
	}
	c.finish(gen)
	return nil
}

// Close stops every pending timer.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.teardownLocked()
	if c.celebrateT != nil {
		c.celebrateT.Stop()
		c.celebrateT = nil
	}
	c.celebrating = false
	c.mode = Menu
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := State{
		Mode:        c.mode,
		Celebrating: c.celebrating,
		QuestionIdx: c.question,
		Question:    c.quiz.Question(c.question),
		AskView:     c.askView,
	}
	if c.breath != nil {
		st.Breath = c.breath.Snapshot()
	}
	if c.field != nil {
		st.Bubbles = c.field.Targets()
	}
	return st
}

func (c *Controller) finish(gen int) {
	c.mu.Lock()
	if gen != c.gen || c.celebrating {
		c.mu.Unlock()
		return
	}
	c.celebrating = true
	c.gen++
	cgen := c.gen
	c.celebrateT = c.clock.AfterFunc(CelebrationDuration, func() { c.endCelebration(cgen) })
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) endCelebration(gen int) {
	c.mu.Lock()
	if gen != c.gen || !c.celebrating {
		c.mu.Unlock()
		return
	}
	c.celebrating = false
	c.celebrateT = nil
	c.teardownLocked()
	c.mode = Menu
	c.mu.Unlock()
	c.notify()
}

// teardownLocked cancels the running activity. Subsession observers must not
// lock c; the lock order is c.mu then the subsession's own lock.
func (c *Controller) teardownLocked() {
	c.gen++
	if c.breath != nil {
		c.breath.Cancel()
		c.breath = nil
	}
	if c.field != nil {
		c.field.Stop()
		c.field = nil
	}
	c.askView = AskQuestion
}

func (c *Controller) notify() {
	if c.changed != nil {
		c.changed()
	}
}
