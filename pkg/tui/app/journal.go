package teaui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/weiwei/pkg/app"
	"tableflip.dev/weiwei/pkg/entry"
	"tableflip.dev/weiwei/pkg/feeling"
	"tableflip.dev/weiwei/pkg/journal"
	"tableflip.dev/weiwei/pkg/timeutil"
)

const journalVisible = 8

type journalModel struct {
	entries    []entry.Entry
	confirm    string
	confirmSeq int
	report     string
	reporting  bool
	err        string
	offset     int
}

type entriesLoadedMsg struct {
	entries []entry.Entry
	err     error
}

type loggedMsg struct {
	entry entry.Entry
	err   error
}

type confirmExpiredMsg struct{ seq int }

type reportDoneMsg struct {
	text string
	err  error
}

func loadEntries(svc *app.Service) tea.Cmd {
	return func() tea.Msg {
		entries, err := svc.Entries(context.Background())
		return entriesLoadedMsg{entries: entries, err: err}
	}
}

func recordFeeling(svc *app.Service, f feeling.Feeling) tea.Cmd {
	return func() tea.Msg {
		e, err := svc.RecordFeeling(context.Background(), f)
		return loggedMsg{entry: e, err: err}
	}
}

func generateReport(svc *app.Service) tea.Cmd {
	return func() tea.Msg {
		res, err := svc.Report(context.Background(), timeutil.Window{})
		return reportDoneMsg{text: res.Text, err: err}
	}
}

func (m *Model) updateJournal(msg tea.Msg) tea.Cmd {
	j := &m.journal
	switch msg := msg.(type) {
	case entriesLoadedMsg:
		if msg.err != nil {
			j.err = msg.err.Error()
			return nil
		}
		j.err = ""
		j.entries = msg.entries
		return nil

	case loggedMsg:
		if msg.err != nil {
			j.err = msg.err.Error()
			return nil
		}
		j.err = ""
		j.confirmSeq++
		seq := j.confirmSeq
		j.confirm = fmt.Sprintf("已记录：%s %s", msg.entry.Feeling.Label(), msg.entry.Food(journal.Unrecorded))
		j.offset = 0
		return tea.Batch(
			loadEntries(m.svc),
			tea.Tick(app.ConfirmationDuration, func(time.Time) tea.Msg { return confirmExpiredMsg{seq: seq} }),
		)

	case confirmExpiredMsg:
		if msg.seq == j.confirmSeq {
			j.confirm = ""
		}
		return nil

	case reportDoneMsg:
		j.reporting = false
		if msg.err != nil {
			j.err = msg.err.Error()
			return nil
		}
		j.report = msg.text
		return nil

	case tea.KeyMsg:
		key := msg.String()
		for _, f := range feeling.All() {
			if key == f.Key() {
				return recordFeeling(m.svc, f)
			}
		}
		switch key {
		case "r":
			if j.reporting {
				return nil
			}
			j.reporting = true
			j.report = ""
			return generateReport(m.svc)
		case "esc":
			j.report = ""
		case "down", "j":
			if j.offset+journalVisible < len(j.entries) {
				j.offset++
			}
		case "up", "k":
			if j.offset > 0 {
				j.offset--
			}
		}
	}
	return nil
}

func (m *Model) journalView() string {
	j := &m.journal
	th := m.theme
	var b strings.Builder

	b.WriteString(th.Panel.Title.Render("吃完感觉怎么样？"))
	b.WriteString("\n")
	if food, ok := m.svc.Session.Pending(); ok {
		b.WriteString(th.Panel.Hint.Render("刚才吃的：" + food))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	buttons := make([]string, 0, 3)
	for _, f := range feeling.All() {
		buttons = append(buttons, th.Feeling[f].Render(fmt.Sprintf("[%s] %s %s", f.Key(), f.Symbol(), f.Label())))
	}
	b.WriteString(strings.Join(buttons, "   "))
	b.WriteString("\n")
	if j.confirm != "" {
		b.WriteString("\n")
		b.WriteString(th.Footer.Status.Render(j.confirm))
		b.WriteString("\n")
	}
	if j.err != "" {
		b.WriteString("\n")
		b.WriteString(th.Footer.Error.Render(j.err))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	counts := journal.Aggregate(j.entries)
	stats := make([]string, 0, 3)
	for _, f := range feeling.All() {
		stats = append(stats, th.Feeling[f].Render(fmt.Sprintf("%s %d", f.Label(), counts[f])))
	}
	fmt.Fprintf(&b, "共 %d 条  %s\n\n", counts.Total(), strings.Join(stats, "  "))

	end := j.offset + journalVisible
	if end > len(j.entries) {
		end = len(j.entries)
	}
	for _, e := range j.entries[j.offset:end] {
		fmt.Fprintf(&b, "%s  %s  %s\n", e.Date, th.Feeling[e.Feeling].Render(e.Feeling.Symbol()+" "+e.Feeling.Label()), e.Food(journal.Unrecorded))
	}
	if len(j.entries) == 0 {
		b.WriteString(th.Panel.Hint.Render("还没有记录"))
		b.WriteString("\n")
	}

	switch {
	case j.reporting:
		b.WriteString("\n正在生成本周简报…\n")
	case j.report != "":
		b.WriteString("\n")
		b.WriteString(th.Report.Frame.Render(wordwrap.String(j.report, m.contentWidth()-6)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(th.Panel.Hint.Render("1/2/3 记录 · r 周报 · ↑/↓ 滚动"))
	return th.Panel.Frame.Render(b.String())
}
