package teaui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/weiwei/pkg/app"
	"tableflip.dev/weiwei/pkg/gateway"
	"tableflip.dev/weiwei/pkg/meal"
	"tableflip.dev/weiwei/pkg/tui/theme"
)

type plannerState int

const (
	plannerInput plannerState = iota
	plannerLoading
	plannerResult
)

type plannerModel struct {
	input   textinput.Model
	spinner spinner.Model
	state   plannerState
	plan    meal.Plan
	err     string
}

type analyzeDoneMsg struct {
	plan meal.Plan
	err  error
}

func newPlanner() plannerModel {
	ti := textinput.New()
	ti.Placeholder = "今天想吃什么？例如：番茄炒蛋"
	ti.CharLimit = 120
	ti.Width = 40
	ti.Focus()
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return plannerModel{input: ti, spinner: sp}
}

func (p *plannerModel) init() tea.Cmd {
	return textinput.Blink
}

func (p *plannerModel) focus() tea.Cmd {
	if p.state != plannerInput {
		return nil
	}
	return p.input.Focus()
}

func (p *plannerModel) blur() {
	p.input.Blur()
}

func analyze(svc *app.Service, food string) tea.Cmd {
	return func() tea.Msg {
		plan, err := svc.Analyze(context.Background(), food)
		return analyzeDoneMsg{plan: plan, err: err}
	}
}

func (m *Model) updatePlanner(msg tea.Msg) tea.Cmd {
	p := &m.planner
	switch msg := msg.(type) {
	case analyzeDoneMsg:
		if p.state != plannerLoading {
			return nil
		}
		if msg.err != nil {
			p.state = plannerInput
			var af *gateway.AnalysisFailure
			if errors.As(msg.err, &af) {
				p.err = gateway.AnalysisRetryMessage
			} else {
				p.err = msg.err.Error()
			}
			if m.svc.Session.Tab() == app.Planner {
				return p.input.Focus()
			}
			return nil
		}
		p.plan = msg.plan
		p.state = plannerResult
		return nil

	case spinner.TickMsg:
		if p.state != plannerLoading {
			return nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		switch p.state {
		case plannerLoading:
			return nil
		case plannerResult:
			switch msg.String() {
			case "enter", "l":
				return m.selectTab(app.Journal)
			case "esc", "n":
				p.state = plannerInput
				p.input.SetValue("")
				return p.input.Focus()
			}
			return nil
		}
		switch msg.String() {
		case "enter":
			food := strings.TrimSpace(p.input.Value())
			if food == "" {
				return nil
			}
			p.err = ""
			p.state = plannerLoading
			p.input.Blur()
			return tea.Batch(analyze(m.svc, food), p.spinner.Tick)
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

func (m *Model) plannerView() string {
	p := &m.planner
	th := m.theme
	var b strings.Builder
	b.WriteString(th.Panel.Title.Render("吃多少，我帮你算"))
	b.WriteString("\n\n")

	switch p.state {
	case plannerLoading:
		fmt.Fprintf(&b, "%s 正在分析“%s”…\n", p.spinner.View(), p.input.Value())
	case plannerResult:
		b.WriteString(renderPlan(th, p.plan, m.contentWidth()))
		b.WriteString("\n")
		b.WriteString(th.Panel.Hint.Render("enter 去记录感受 · esc 重新输入"))
	default:
		b.WriteString(p.input.View())
		b.WriteString("\n")
		if p.err != "" {
			b.WriteString("\n")
			b.WriteString(th.Footer.Error.Render(p.err))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(th.Panel.Hint.Render("enter 分析"))
	}
	return th.Panel.Frame.Render(b.String())
}

func renderPlan(th theme.Theme, p meal.Plan, width int) string {
	var b strings.Builder
	for _, it := range p.Items {
		fmt.Fprintf(&b, "%s  %s\n", th.Panel.Title.Render(it.Name), fmt.Sprintf("%gg", it.WeightGrams))
		if it.IngredientsBreakdown != "" {
			b.WriteString(th.Panel.Hint.Render("  " + it.IngredientsBreakdown))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	fill := p.FillLevel()
	filled := int(fill/100*20 + 0.5)
	bar := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.FillColor(fill))).
		Render(strings.Repeat("█", filled)) + strings.Repeat("░", 20-filled)
	fmt.Fprintf(&b, "胃部充盈度 %s %.0f%%\n", bar, p.StomachLoadPercentage)
	if p.Overloaded() {
		b.WriteString(th.Footer.Error.Render("有点多了，注意别吃撑哦。"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(wordwrap.String(p.Advice, width))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) contentWidth() int {
	if m.width <= 10 {
		return 56
	}
	return m.width - 10
}
