package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/weiwei/pkg/timeutil"
)

// WindowOptions
type WindowOptions struct {
	Last string
}

func AddWindowArg(cmd *cobra.Command, o *WindowOptions, def string) {
	cmd.Flags().StringVar(&o.Last, "last", def,
		`Only include entries from this far back, example: --last=7d, --last="2 weeks", --last=3天. Empty means all.`)
}

func (o *WindowOptions) Get() (timeutil.Window, error) {
	return timeutil.ParseWindow(o.Last)
}
