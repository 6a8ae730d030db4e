package teaui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/weiwei/pkg/bubble"
	"tableflip.dev/weiwei/pkg/calm"
	"tableflip.dev/weiwei/pkg/quiz"
)

const (
	canvasWidth  = 48
	canvasHeight = 12
	bubbleKeys   = "abcdefghijklmnopqrstuvwxyz"
)

type emergencyModel struct {
	err string
}

func (m *Model) updateEmergency(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	e := &m.emergency
	e.err = ""
	st := m.calm.State()
	if st.Celebrating {
		return nil
	}
	k := key.String()
	if k == "esc" && st.Mode != calm.Menu {
		m.calm.Back()
		return nil
	}

	var err error
	switch st.Mode {
	case calm.Menu:
		switch k {
		case "1", "b":
			err = m.calm.Enter(calm.Breathe)
		case "2", "g":
			err = m.calm.Enter(calm.Game)
		case "3", "a":
			err = m.calm.Enter(calm.Ask)
		}
	case calm.Game:
		if i := strings.Index(bubbleKeys, k); i >= 0 && len(k) == 1 {
			_, err = m.calm.Pop(i)
		}
	case calm.Ask:
		err = m.askKey(st, k)
	}
	if err != nil {
		e.err = err.Error()
	}
	return nil
}

func (m *Model) askKey(st calm.State, k string) error {
	switch st.AskView {
	case calm.AskQuestion:
		switch k {
		case "r":
			return m.calm.Refresh()
		case "1", "2":
			_, err := m.calm.Answer(int(k[0] - '1'))
			return err
		}
	case calm.AskDistract:
		if k == "1" || k == "2" || k == "3" {
			return m.calm.Complete()
		}
	case calm.AskEat:
		if k == "enter" {
			return m.calm.Complete()
		}
	}
	return nil
}

func (m *Model) emergencyView() string {
	st := m.calm.State()
	th := m.theme
	var b strings.Builder

	switch {
	case st.Celebrating:
		b.WriteString(th.Panel.Title.Render("☺  " + calm.CelebrationTitle))
		b.WriteString("\n\n")
		b.WriteString(calm.CelebrationMessage)
		b.WriteString("\n")
	case st.Mode == calm.Breathe:
		b.WriteString(th.Panel.Title.Render("4-7-8 呼吸法"))
		b.WriteString("\n\n")
		count := ""
		if st.Breath.Countdown {
			count = fmt.Sprintf("%d", st.Breath.Remaining)
		}
		fmt.Fprintf(&b, "%s  %s\n\n", th.Tabs.Active.Render(fmt.Sprintf("%2s", count)), st.Breath.Label)
		b.WriteString(th.Panel.Hint.Render("esc 返回"))
	case st.Mode == calm.Game:
		b.WriteString(th.Panel.Title.Render("戳破压力！"))
		b.WriteString("\n")
		b.WriteString(th.Panel.Hint.Render("把漂浮的烦恼都抓起来，按字母戳泡泡"))
		b.WriteString("\n\n")
		b.WriteString(m.renderBubbles(st.Bubbles))
		b.WriteString("\n")
		b.WriteString(th.Panel.Hint.Render("esc 返回"))
	case st.Mode == calm.Ask:
		b.WriteString(m.renderAsk(st))
	default:
		b.WriteString(th.Panel.Title.Render("冷静一下 ⚡️"))
		b.WriteString("\n")
		b.WriteString(th.Panel.Hint.Render("停一停，给冲动按个暂停键"))
		b.WriteString("\n\n")
		b.WriteString("[1] 呼吸练习  4-7-8 呼吸法\n")
		b.WriteString("[2] 戳泡泡    戳破焦虑，转移注意\n")
		b.WriteString("[3] 聊聊天呗  听听内心的声音\n")
	}
	if m.emergency.err != "" {
		b.WriteString("\n")
		b.WriteString(th.Footer.Error.Render(m.emergency.err))
	}
	return th.Panel.Frame.Render(b.String())
}

// renderBubbles places each bubble on a character canvas by its percentage
// position. Later bubbles overwrite earlier ones sharing a cell.
func (m *Model) renderBubbles(targets []bubble.Target) string {
	grid := make([][]string, canvasHeight)
	for r := range grid {
		grid[r] = make([]string, canvasWidth)
		for c := range grid[r] {
			grid[r][c] = " "
		}
	}
	for _, t := range targets {
		row := int(t.Top / 100 * canvasHeight)
		col := int(t.Left / 100 * canvasWidth)
		if row >= canvasHeight {
			row = canvasHeight - 1
		}
		if col >= canvasWidth-1 {
			col = canvasWidth - 2
		}
		style := m.theme.Bubble[t.Color]
		label := string(bubbleKeys[t.ID%len(bubbleKeys)])
		if t.Popped {
			grid[row][col] = style.Popped.Render("·")
			grid[row][col+1] = " "
			continue
		}
		glyph := "●"
		if t.Size >= 70 {
			glyph = "⬤"
		}
		grid[row][col] = style.Live.Render(glyph)
		grid[row][col+1] = style.Live.Render(label)
	}
	lines := make([]string, canvasHeight)
	for r := range grid {
		lines[r] = strings.Join(grid[r], "")
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderAsk(st calm.State) string {
	th := m.theme
	var b strings.Builder
	switch st.AskView {
	case calm.AskDistract:
		b.WriteString(th.Panel.Title.Render(quiz.DistractTitle))
		b.WriteString("\n\n")
		b.WriteString(quiz.DistractHint)
		b.WriteString("\n\n")
		for i, a := range quiz.Activities {
			fmt.Fprintf(&b, "[%d] %s\n", i+1, a)
		}
	case calm.AskEat:
		b.WriteString(th.Panel.Title.Render(quiz.EatTitle))
		b.WriteString("\n\n")
		b.WriteString(quiz.EatHint)
		b.WriteString("\n\n")
		fmt.Fprintf(&b, "[enter] %s\n", quiz.EatConfirm)
	default:
		b.WriteString(th.Panel.Title.Render(st.Question.Text))
		b.WriteString("\n\n")
		for i, o := range st.Question.Options {
			fmt.Fprintf(&b, "[%d] %s\n", i+1, o.Label)
		}
		b.WriteString("\n")
		b.WriteString(th.Panel.Hint.Render("r 换一题 · esc 返回"))
	}
	return b.String()
}
