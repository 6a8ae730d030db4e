package snake

import (
	"io"

	"github.com/manifoldco/promptui"
)

// PromptUI asks on the terminal. Nil streams use stdin and stdout.
type PromptUI struct {
	In  io.ReadCloser
	Out io.WriteCloser
}

func (p PromptUI) Select(label string, items []string) (int, error) {
	size := len(items)
	if size > 10 {
		size = 10
	}
	prompt := promptui.Select{
		HideHelp: true,
		Label:    label,
		Items:    items,
		Size:     size,
		Stdin:    p.In,
		Stdout:   p.Out,
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}?",
			Active:   "➜  {{ . | cyan }}",
			Inactive: "   {{ . }}",
			Selected: "➜  {{ . | bold }}",
		},
	}
	i, _, err := prompt.Run()
	return i, err
}

func (p PromptUI) Input(label, def string, validate func(string) error) (string, error) {
	prompt := promptui.Prompt{
		Label:    label,
		Default:  def,
		Validate: validate,
		Stdin:    p.In,
		Stdout:   p.Out,
		Templates: &promptui.PromptTemplates{
			Prompt:  "{{ . }} : ",
			Valid:   "{{ . | green }} : ",
			Invalid: "{{ . | red }} : ",
			Success: "{{ . | bold }} : ",
		},
	}
	return prompt.Run()
}
