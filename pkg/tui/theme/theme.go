package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/weiwei/pkg/bubble"
	"tableflip.dev/weiwei/pkg/feeling"
)

// Hex colors shared by every tab.
const (
	Cream  = "#FFFDF5"
	Blue   = "#4DA3FF"
	Pink   = "#FF8FAB"
	Yellow = "#FFC93C"
	Green  = "#5CC689"
	Orange = "#FFA45B"
	Ink    = "#4A4A4A"
	Muted  = "#9E9E9E"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Footer  FooterTheme
	Panel   PanelTheme
	Tabs    TabTheme
	Report  ReportTheme
	Feeling map[feeling.Feeling]lipgloss.Style
	Bubble  map[bubble.Color]BubbleStyle
}

// FooterTheme groups styles used by the bottom help/status line.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
	Hint  lipgloss.Style
}

// TabTheme styles the navigation bar.
type TabTheme struct {
	Active   lipgloss.Style
	Inactive lipgloss.Style
}

// ReportTheme styles the generated report.
type ReportTheme struct {
	Frame  lipgloss.Style
	Header lipgloss.Style
	Text   lipgloss.Style
}

// BubbleStyle is the live and popped look of one palette class.
type BubbleStyle struct {
	Live   lipgloss.Style
	Popped lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	tab := lipgloss.NewStyle().Padding(0, 2)
	return Theme{
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color(Muted)),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color(Green)).Bold(true),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color(Pink)).Bold(true),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(Yellow)).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Ink)),
			Body:  lipgloss.NewStyle(),
			Hint:  lipgloss.NewStyle().Foreground(lipgloss.Color(Muted)).Italic(true),
		},
		Tabs: TabTheme{
			Active:   tab.Copy().Bold(true).Foreground(lipgloss.Color(Cream)).Background(lipgloss.Color(Orange)),
			Inactive: tab.Copy().Foreground(lipgloss.Color(Muted)),
		},
		Report: ReportTheme{
			Frame:  lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color(Blue)).Padding(1, 2),
			Header: lipgloss.NewStyle().Bold(true),
			Text:   lipgloss.NewStyle(),
		},
		Feeling: map[feeling.Feeling]lipgloss.Style{
			feeling.Great:   lipgloss.NewStyle().Foreground(lipgloss.Color(Green)).Bold(true),
			feeling.Full:    lipgloss.NewStyle().Foreground(lipgloss.Color(Yellow)).Bold(true),
			feeling.Stuffed: lipgloss.NewStyle().Foreground(lipgloss.Color(Pink)).Bold(true),
		},
		Bubble: map[bubble.Color]BubbleStyle{
			bubble.Blue:   bubbleStyle(Blue),
			bubble.Pink:   bubbleStyle(Pink),
			bubble.Yellow: bubbleStyle(Yellow),
			bubble.Green:  bubbleStyle(Green),
		},
	}
}

// Faded blends hex toward the cream background by t in [0,1].
func Faded(hex string, t float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	bg, _ := colorful.Hex(Cream)
	return c.BlendLab(bg, t).Clamped().Hex()
}

// FillColor shades from green at empty to pink at 100% and beyond.
func FillColor(pct float64) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	from, _ := colorful.Hex(Green)
	to, _ := colorful.Hex(Pink)
	return from.BlendHcl(to, pct/100).Clamped().Hex()
}

func bubbleStyle(hex string) BubbleStyle {
	return BubbleStyle{
		Live:   lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Bold(true),
		Popped: lipgloss.NewStyle().Foreground(lipgloss.Color(Faded(hex, 0.75))),
	}
}
