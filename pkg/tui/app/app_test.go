package teaui

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"

	"tableflip.dev/weiwei/pkg/app"
	"tableflip.dev/weiwei/pkg/bubble"
	"tableflip.dev/weiwei/pkg/calm"
	"tableflip.dev/weiwei/pkg/clock"
	"tableflip.dev/weiwei/pkg/gateway"
	"tableflip.dev/weiwei/pkg/journal"
	"tableflip.dev/weiwei/pkg/store"
)

func newTestModel(t *testing.T) (*Model, *clockwork.FakeClock) {
	t.Helper()
	zero := time.Duration(0)
	g := gateway.Select(gateway.Settings{Logger: gateway.Discard, MockDelay: &zero})
	svc := &app.Service{
		Journal:  journal.New(store.NewMemory()),
		Analyzer: g.Analyzer,
		Reporter: g.Reporter,
		Session:  &app.Session{},
	}
	fake := clockwork.NewFakeClockAt(time.Unix(0, 0))
	ch := make(chan struct{}, 1)
	ctrl, err := calm.New(calm.Options{
		Clock:      fake,
		BubbleRand: rand.New(rand.NewPCG(1, 2)),
		QuizRand:   rand.New(rand.NewPCG(3, 4)),
		Changed:    Notifier(ch),
	})
	if err != nil {
		t.Fatalf("calm.New: %v", err)
	}
	m, err := New(svc, Options{Calm: ctrl, CalmChanged: ch})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m, fake
}

// waitCalm polls the calm controller until ok holds; its timers fire on
// their own goroutines.
func waitCalm(t *testing.T, m *Model, what string, ok func(calm.State) bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !ok(m.calm.State()) {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s, state %+v", what, m.calm.State())
		}
		time.Sleep(time.Millisecond)
	}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func send(m *Model, msg tea.Msg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func TestPlannerToJournalHandoff(t *testing.T) {
	m, _ := newTestModel(t)
	m.planner.input.SetValue("米饭")

	send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.planner.state != plannerLoading {
		t.Fatalf("expected loading state, got %v", m.planner.state)
	}
	send(m, analyze(m.svc, "米饭")())
	if m.planner.state != plannerResult {
		t.Fatalf("expected result state, got %v", m.planner.state)
	}
	if !strings.Contains(m.View(), "清炒时蔬") {
		t.Fatalf("plan not rendered:\n%s", m.View())
	}
	pending, ok := m.svc.Session.Pending()
	mock := gateway.MockPlan()
	if !ok || pending != mock.Summary() {
		t.Fatalf("pending = %q, %v", pending, ok)
	}

	cmd := send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.svc.Session.Tab() != app.Journal {
		t.Fatalf("expected journal tab, got %v", m.svc.Session.Tab())
	}
	send(m, cmd())
	if len(m.journal.entries) != 6 {
		t.Fatalf("expected seeded entries, got %d", len(m.journal.entries))
	}

	cmd = send(m, keyRune('3'))
	if cmd == nil {
		t.Fatalf("expected a record command")
	}
	send(m, cmd())
	if !strings.Contains(m.journal.confirm, "撑到了") {
		t.Fatalf("confirmation = %q", m.journal.confirm)
	}
	if _, ok := m.svc.Session.Pending(); ok {
		t.Fatalf("pending food not consumed")
	}
	send(m, loadEntries(m.svc)())
	if got := m.journal.entries[0].FoodNote; got != pending {
		t.Fatalf("newest entry food = %q, want %q", got, pending)
	}
}

func TestAnalysisFailureShowsRetry(t *testing.T) {
	m, _ := newTestModel(t)
	m.planner.input.SetValue("米饭")
	send(m, tea.KeyMsg{Type: tea.KeyEnter})
	send(m, analyzeDoneMsg{err: &gateway.AnalysisFailure{Err: errTest}})
	if m.planner.state != plannerInput || m.planner.err != gateway.AnalysisRetryMessage {
		t.Fatalf("unexpected planner state %v %q", m.planner.state, m.planner.err)
	}
	if _, ok := m.svc.Session.Pending(); ok {
		t.Fatalf("failure must not set pending food")
	}
}

func TestConfirmationExpires(t *testing.T) {
	m, _ := newTestModel(t)
	m.journal.confirm = "已记录"
	m.journal.confirmSeq = 2
	send(m, confirmExpiredMsg{seq: 1})
	if m.journal.confirm == "" {
		t.Fatalf("stale expiry cleared a newer confirmation")
	}
	send(m, confirmExpiredMsg{seq: 2})
	if m.journal.confirm != "" {
		t.Fatalf("confirmation not cleared")
	}
}

func TestTabCycle(t *testing.T) {
	m, _ := newTestModel(t)
	want := []app.Tab{app.Journal, app.Emergency, app.Planner}
	for _, tab := range want {
		send(m, tea.KeyMsg{Type: tea.KeyTab})
		if got := m.svc.Session.Tab(); got != tab {
			t.Fatalf("got %v, want %v", got, tab)
		}
	}
	send(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if got := m.svc.Session.Tab(); got != app.Emergency {
		t.Fatalf("shift+tab went to %v", got)
	}
}

func TestBubbleGameCelebrates(t *testing.T) {
	m, fake := newTestModel(t)
	m.svc.Session.SetTab(app.Emergency)
	send(m, keyRune('2'))
	if m.calm.State().Mode != calm.Game {
		t.Fatalf("expected game mode")
	}
	for i := 0; i < bubble.DefaultCount; i++ {
		send(m, keyRune(rune(bubbleKeys[i])))
	}
	fake.Advance(bubble.CompletionDelay)
	waitCalm(t, m, "celebration", func(st calm.State) bool { return st.Celebrating })
	if !strings.Contains(m.View(), calm.CelebrationTitle) {
		t.Fatalf("celebration not shown:\n%s", m.View())
	}
	fake.Advance(calm.CelebrationDuration)
	waitCalm(t, m, "menu", func(st calm.State) bool { return st.Mode == calm.Menu && !st.Celebrating })
}

func TestLeavingEmergencyCancelsBreathing(t *testing.T) {
	m, fake := newTestModel(t)
	m.svc.Session.SetTab(app.Emergency)
	send(m, keyRune('1'))
	fake.Advance(500 * time.Millisecond)
	waitCalm(t, m, "inhale", func(st calm.State) bool { return st.Breath.Remaining == 4 })
	fake.Advance(time.Second)
	waitCalm(t, m, "countdown", func(st calm.State) bool { return st.Breath.Remaining == 3 })
	if m.calm.State().Breath.Label != "吸气" {
		t.Fatalf("expected inhale, got %+v", m.calm.State().Breath)
	}
	send(m, tea.KeyMsg{Type: tea.KeyTab})
	if !clock.Idle(fake, 50*time.Millisecond) {
		t.Fatalf("timers left after leaving the tab")
	}
	fake.Advance(time.Minute)
	time.Sleep(20 * time.Millisecond)
	if m.calm.State().Celebrating {
		t.Fatalf("late completion after leaving the tab")
	}
}

func TestAskEatFlow(t *testing.T) {
	m, fake := newTestModel(t)
	m.svc.Session.SetTab(app.Emergency)
	send(m, keyRune('3'))
	st := m.calm.State()
	eat := '1'
	if st.Question.Options[1].Action == "eat" {
		eat = '2'
	}
	send(m, keyRune(eat))
	if m.calm.State().AskView != calm.AskEat {
		t.Fatalf("expected eat view")
	}
	send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.calm.State().Celebrating {
		t.Fatalf("expected celebration")
	}
	fake.Advance(calm.CelebrationDuration)
	waitCalm(t, m, "menu", func(st calm.State) bool { return st.Mode == calm.Menu })
}

type testError string

func (e testError) Error() string { return string(e) }

const errTest = testError("bad payload")
