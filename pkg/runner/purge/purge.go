// Package purge empties the journal.
package purge

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"

	"tableflip.dev/weiwei/pkg/app"
)

type Purge struct {
	App *app.Service
	// Yes skips the confirmation prompt.
	Yes bool
	In  io.ReadCloser
	Out io.WriteCloser
}

func (n *Purge) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not clear, no journal")
	}
	if !n.Yes {
		prompt := promptui.Prompt{
			Label:     "清空全部日记",
			IsConfirm: true,
			Stdin:     n.In,
			Stdout:    n.Out,
		}
		if _, err := prompt.Run(); err != nil {
			if errors.Is(err, promptui.ErrAbort) {
				_, _ = fmt.Fprintln(color.Output, "cancelled")
				return nil
			}
			return err
		}
	}
	if err := n.App.Clear(ctx); err != nil {
		return err
	}
	_, _ = color.New(color.Faint).Fprintln(color.Output, "journal cleared")
	return nil
}
