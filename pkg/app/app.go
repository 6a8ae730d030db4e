package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"tableflip.dev/weiwei/pkg/entry"
	"tableflip.dev/weiwei/pkg/feeling"
	"tableflip.dev/weiwei/pkg/gateway"
	"tableflip.dev/weiwei/pkg/journal"
	"tableflip.dev/weiwei/pkg/meal"
)

// ConfirmationDuration is how long a quick-log confirmation stays visible.
const ConfirmationDuration = 2 * time.Second

// Tab is a top-level screen.
type Tab int

const (
	Planner Tab = iota
	Journal
	Emergency
)

// Tabs lists the screens in display order.
func Tabs() []Tab {
	return []Tab{Planner, Journal, Emergency}
}

func (t Tab) String() string {
	switch t {
	case Journal:
		return "journal"
	case Emergency:
		return "emergency"
	default:
		return "planner"
	}
}

// Title is the tab's navigation label.
func (t Tab) Title() string {
	switch t {
	case Journal:
		return "日记"
	case Emergency:
		return "冷静"
	default:
		return "规划"
	}
}

var ErrUnknownTab = errors.New("app: unknown tab")

func ParseTab(s string) (Tab, error) {
	for _, t := range Tabs() {
		if strings.EqualFold(s, t.String()) {
			return t, nil
		}
	}
	return Planner, ErrUnknownTab
}

// Session is the state shared between screens: the selected tab and the
// food handed from the planner to the journal.
type Session struct {
	mu      sync.Mutex
	tab     Tab
	pending *string
}

func (s *Session) Tab() Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tab
}

func (s *Session) SetTab(t Tab) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tab = t
}

// Pending returns the handed-off food, if any, without consuming it.
func (s *Session) Pending() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return "", false
	}
	return *s.pending, true
}

func (s *Session) SetPending(food string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = &food
}

// consume clears the pending food if it still equals food.
func (s *Session) consume(food string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil && *s.pending == food {
		s.pending = nil
	}
}

// Service provides the planner and journal operations shared by the CLI,
// the TUI and the MCP server.
type Service struct {
	Journal  *journal.Store
	Analyzer gateway.Analyzer
	Reporter gateway.Reporter
	Session  *Session
	Now      func() time.Time
}

var errNoJournal = errors.New("app: no journal configured")

// Analyze asks for a meal plan and, on success, hands its item names to the
// journal as pending food.
func (s *Service) Analyze(ctx context.Context, food string) (meal.Plan, error) {
	if s.Analyzer == nil {
		return meal.Plan{}, errors.New("app: no analyzer configured")
	}
	plan, err := s.Analyzer.Analyze(ctx, food)
	if err != nil {
		return meal.Plan{}, err
	}
	if s.Session != nil {
		s.Session.SetPending(plan.Summary())
	}
	return plan, nil
}

// RecordFeeling logs f against the pending food, consuming it once the entry
// is stored. Without pending food the entry is unrecorded.
func (s *Service) RecordFeeling(ctx context.Context, f feeling.Feeling) (entry.Entry, error) {
	food, ok := "", false
	if s.Session != nil {
		food, ok = s.Session.Pending()
	}
	e, err := s.Log(ctx, f, food)
	if err != nil {
		return entry.Entry{}, err
	}
	if ok {
		s.Session.consume(food)
	}
	return e, nil
}

// Log stores an entry with an explicit food note.
func (s *Service) Log(ctx context.Context, f feeling.Feeling, food string) (entry.Entry, error) {
	if s.Journal == nil {
		return entry.Entry{}, errNoJournal
	}
	return s.Journal.Append(ctx, f, food)
}

// Entries lists entries newest first.
func (s *Service) Entries(ctx context.Context) ([]entry.Entry, error) {
	if s.Journal == nil {
		return nil, errNoJournal
	}
	return s.Journal.Load(ctx)
}

// Stats counts entries per feeling.
func (s *Service) Stats(ctx context.Context) (journal.Counts, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}
	return journal.Aggregate(entries), nil
}

// Clear deletes every entry.
func (s *Service) Clear(ctx context.Context) error {
	if s.Journal == nil {
		return errNoJournal
	}
	return s.Journal.Clear(ctx)
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
