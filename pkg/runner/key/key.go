// Package key prints the feeling legend used by log and the TUI.
package key

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/weiwei/pkg/feeling"
	"tableflip.dev/weiwei/pkg/printers"
)

// Key prints a legend of feeling shortcuts.
type Key struct{}

func (k *Key) Do(ctx context.Context) error {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Key"), bold.Sprint("Symbol"), bold.Sprint("Feeling"), bold.Sprint("Value"))
	for _, f := range feeling.All() {
		tbl.AddRow(f.Key(), printers.FeelingColor(f).Sprint(f.Symbol()), f.Label(), string(f))
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(color.Output, "")
	_, _ = fmt.Fprintln(color.Output, tbl)
	_, _ = fmt.Fprintln(color.Output, "")
	return nil
}
