// Package teaui hosts the Bubble Tea program for the weiwei TUI.
package teaui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/weiwei/pkg/app"
	"tableflip.dev/weiwei/pkg/calm"
	"tableflip.dev/weiwei/pkg/tui/theme"
)

// Model is the root model: a tab bar over the planner, journal and
// emergency screens.
type Model struct {
	svc    *app.Service
	calm   *calm.Controller
	calmCh chan struct{}
	theme  theme.Theme

	width  int
	height int

	planner   plannerModel
	journal   journalModel
	emergency emergencyModel
}

// Options configures New.
type Options struct {
	// Calm is built with a real clock when nil.
	Calm *calm.Controller
	// CalmChanged receives a value whenever Calm changes asynchronously. It
	// must be the channel wired into Calm's Changed callback.
	CalmChanged chan struct{}
}

// New builds the root model. The session must already be attached to svc.
func New(svc *app.Service, o Options) (*Model, error) {
	if svc.Session == nil {
		svc.Session = &app.Session{}
	}
	ch := o.CalmChanged
	ctrl := o.Calm
	if ctrl == nil {
		ch = make(chan struct{}, 1)
		var err error
		ctrl, err = calm.New(calm.Options{Changed: Notifier(ch)})
		if err != nil {
			return nil, err
		}
	}
	return &Model{
		svc:     svc,
		calm:    ctrl,
		calmCh:  ch,
		theme:   theme.Default(),
		planner: newPlanner(),
	}, nil
}

// Notifier returns a non-blocking send onto ch for calm.Options.Changed.
func Notifier(ch chan struct{}) func() {
	return func() {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Run launches the Bubble Tea program.
func Run(svc *app.Service) error {
	m, err := New(svc, Options{})
	if err != nil {
		return err
	}
	defer m.calm.Close()
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.planner.init(), loadEntries(m.svc), waitForCalm(m.calmCh))
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case calmChangedMsg:
		return m, waitForCalm(m.calmCh)
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			return m, m.switchTab(1)
		case "shift+tab":
			return m, m.switchTab(-1)
		}
	}

	if cmd, ok := m.routeAsync(msg); ok {
		return m, cmd
	}
	switch m.svc.Session.Tab() {
	case app.Journal:
		return m, m.updateJournal(msg)
	case app.Emergency:
		return m, m.updateEmergency(msg)
	default:
		return m, m.updatePlanner(msg)
	}
}

// Async results must reach their screen even when another tab is showing.
func (m *Model) routeAsync(msg tea.Msg) (tea.Cmd, bool) {
	switch msg.(type) {
	case analyzeDoneMsg, spinner.TickMsg:
		return m.updatePlanner(msg), true
	case entriesLoadedMsg, loggedMsg, confirmExpiredMsg, reportDoneMsg:
		return m.updateJournal(msg), true
	}
	return nil, false
}

func (m *Model) switchTab(delta int) tea.Cmd {
	tabs := app.Tabs()
	cur := int(m.svc.Session.Tab())
	next := tabs[(cur+delta+len(tabs))%len(tabs)]
	return m.selectTab(next)
}

func (m *Model) selectTab(t app.Tab) tea.Cmd {
	prev := m.svc.Session.Tab()
	if prev == t {
		return nil
	}
	if prev == app.Emergency {
		m.calm.Back()
	}
	m.svc.Session.SetTab(t)
	switch t {
	case app.Planner:
		return m.planner.focus()
	case app.Journal:
		m.planner.blur()
		return loadEntries(m.svc)
	default:
		m.planner.blur()
	}
	return nil
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.tabBar())
	b.WriteString("\n\n")
	switch m.svc.Session.Tab() {
	case app.Journal:
		b.WriteString(m.journalView())
	case app.Emergency:
		b.WriteString(m.emergencyView())
	default:
		b.WriteString(m.plannerView())
	}
	b.WriteString("\n")
	b.WriteString(m.theme.Footer.Help.Render("tab 切换 · ctrl+c 退出"))
	return b.String()
}

func (m *Model) tabBar() string {
	cur := m.svc.Session.Tab()
	parts := make([]string, 0, len(app.Tabs()))
	for _, t := range app.Tabs() {
		style := m.theme.Tabs.Inactive
		if t == cur {
			style = m.theme.Tabs.Active
		}
		parts = append(parts, style.Render(t.Title()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

type calmChangedMsg struct{}

func waitForCalm(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		<-ch
		return calmChangedMsg{}
	}
}
