package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/weiwei/pkg/entry"
	"tableflip.dev/weiwei/pkg/feeling"
	"tableflip.dev/weiwei/pkg/journal"
	"tableflip.dev/weiwei/pkg/meal"
)

// DefaultWidth is the wrap width for prose such as advice and reports.
const DefaultWidth = 60

type PrettyPrint struct {
	Out    io.Writer
	ShowID bool
	Width  int
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) width() int {
	if pp.Width <= 0 {
		return DefaultWidth
	}
	return pp.Width
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)
	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

// Plan renders the dishes, a fill gauge and the advice.
func (pp *PrettyPrint) Plan(p meal.Plan) {
	pp.Title("推荐份量")
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	tbl.MaxColWidth = uint(pp.width())
	tbl.AddRow(bold("菜品"), bold("克重"), bold("食材"))
	for _, it := range p.Items {
		tbl.AddRow(it.Name, fmt.Sprintf("%gg", it.WeightGrams), it.IngredientsBreakdown)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()

	_, _ = fmt.Fprintf(pp.out(), "胃部充盈度 %s %s\n", Gauge(p.FillLevel(), 20), fillColor(p).Sprintf("%.0f%%", p.StomachLoadPercentage))
	if p.Overloaded() {
		_, _ = color.New(color.FgRed).Fprintln(pp.out(), "有点多了，注意别吃撑哦。")
	}
	pp.NewLine()
	_, _ = color.New(color.Italic).Fprintln(pp.out(), wordwrap.String(p.Advice, pp.width()))
}

// Entries renders a journal list, newest first.
func (pp *PrettyPrint) Entries(entries []entry.Entry) {
	pp.TitleWithCount("饮食日记", len(entries))
	if len(entries) == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprint(pp.out(), " none\n\n")
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	if pp.ShowID {
		tbl.AddRow(bold("ID"), bold("日期"), bold("感受"), bold("食物"))
	} else {
		tbl.AddRow(bold("日期"), bold("感受"), bold("食物"))
	}
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	for _, e := range entries {
		f := FeelingColor(e.Feeling).Sprintf("%s %s", e.Feeling.Symbol(), e.Feeling.Label())
		food := e.Food(journal.Unrecorded)
		if pp.ShowID {
			tbl.AddRow(y.Sprint(e.ID), e.Date, f, food)
		} else {
			tbl.AddRow(e.Date, f, food)
		}
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Stats renders one bar per feeling.
func (pp *PrettyPrint) Stats(c journal.Counts) {
	pp.TitleWithCount("胃感统计", c.Total())
	total := c.Total()
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, f := range feeling.All() {
		pct := 0.0
		if total > 0 {
			pct = float64(c[f]) * 100 / float64(total)
		}
		tbl.AddRow(FeelingColor(f).Sprintf("%s %s", f.Symbol(), f.Label()), Gauge(pct, 20), c[f])
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Report renders narrative text wrapped to the configured width.
func (pp *PrettyPrint) Report(title, text string) {
	pp.Title(title)
	for _, para := range strings.Split(text, "\n") {
		_, _ = fmt.Fprintln(pp.out(), wordwrap.String(para, pp.width()))
	}
	pp.NewLine()
}

// Gauge draws a fixed-width bar for a 0..100 percentage.
func Gauge(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(pct/100*float64(width) + 0.5)
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

// FeelingColor is the accent used for a feeling everywhere in the CLI.
func FeelingColor(f feeling.Feeling) *color.Color {
	switch f {
	case feeling.Great:
		return color.New(color.FgGreen)
	case feeling.Full:
		return color.New(color.FgYellow)
	case feeling.Stuffed:
		return color.New(color.FgRed)
	default:
		return color.New()
	}
}

func fillColor(p meal.Plan) *color.Color {
	if p.Overloaded() {
		return color.New(color.FgRed, color.Bold)
	}
	return color.New(color.FgGreen, color.Bold)
}

func bold(s string) string {
	return color.New(color.Bold).Sprint(s)
}
