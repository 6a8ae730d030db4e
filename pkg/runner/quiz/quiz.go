// Package quiz runs the mindful-eating check-in as an interactive prompt.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"

	"tableflip.dev/weiwei/pkg/quiz"
)

// Refresh is the extra choice that swaps the current question.
const Refresh = "换一个问题"

// Chooser asks the user to pick one of items and returns its index.
type Chooser func(label string, items []string) (int, error)

type Quiz struct {
	Engine *quiz.Engine
	Choose Chooser
	Out    io.Writer
}

func (q *Quiz) Do(ctx context.Context) error {
	engine := q.Engine
	if engine == nil {
		var err error
		if engine, err = quiz.New(quiz.Catalog(), nil); err != nil {
			return err
		}
	}
	choose := q.Choose
	if choose == nil {
		choose = PromptChooser(nil, nil)
	}
	out := q.Out
	if out == nil {
		out = color.Output
	}

	idx, question := engine.Pick(nil)
	var outcome quiz.Outcome
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		items := make([]string, 0, len(question.Options)+1)
		for _, o := range question.Options {
			items = append(items, o.Label)
		}
		items = append(items, Refresh)

		i, err := choose(question.Text, items)
		if err != nil {
			return err
		}
		if i == len(question.Options) {
			idx, question = engine.Pick(&idx)
			continue
		}
		if i < 0 || i > len(question.Options) {
			return fmt.Errorf("answer %d out of range", i)
		}
		outcome = quiz.Classify(question.Options[i].Action)
		break
	}

	bold := color.New(color.Bold)
	switch outcome {
	case quiz.Eat:
		_, _ = bold.Fprintln(out, quiz.EatTitle)
		_, _ = fmt.Fprintln(out, quiz.EatHint)
		if _, err := choose(quiz.EatTitle, []string{quiz.EatConfirm}); err != nil {
			return err
		}
		_, _ = color.New(color.Faint).Fprintln(out, "weiwei plan \"<你想吃的>\"")
	default:
		_, _ = bold.Fprintln(out, quiz.DistractTitle)
		_, _ = fmt.Fprintln(out, quiz.DistractHint)
		i, err := choose(quiz.DistractTitle, quiz.Activities)
		if err != nil {
			return err
		}
		if i >= 0 && i < len(quiz.Activities) {
			_, _ = fmt.Fprintf(out, "去%s吧。\n", quiz.Activities[i])
		}
	}
	return nil
}

// PromptChooser returns a Chooser backed by promptui. Nil streams use the
// terminal.
func PromptChooser(in io.ReadCloser, out io.WriteCloser) Chooser {
	return func(label string, items []string) (int, error) {
		prompt := promptui.Select{
			HideHelp: true,
			Label:    label,
			Items:    items,
			Size:     len(items),
			Stdin:    in,
			Stdout:   out,
			Templates: &promptui.SelectTemplates{
				Label:    "{{ . | bold }}",
				Active:   "➜  {{ . | cyan }}",
				Inactive: "   {{ . }}",
				Selected: "✔ {{ . | green }}",
			},
		}
		i, _, err := prompt.Run()
		if errors.Is(err, promptui.ErrInterrupt) {
			return -1, context.Canceled
		}
		return i, err
	}
}
