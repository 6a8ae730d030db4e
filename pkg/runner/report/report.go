// Package report prints the nutritionist summary for a window of entries.
package report

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/weiwei/pkg/app"
	"tableflip.dev/weiwei/pkg/printers"
	"tableflip.dev/weiwei/pkg/timeutil"
)

type Report struct {
	App     *app.Service
	Printer *printers.PrettyPrint
	Window  timeutil.Window
	// Stats also prints the per-feeling counts for the window.
	Stats bool
}

func (n *Report) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not report, no journal")
	}
	res, err := n.App.Report(ctx, n.Window)
	if err != nil {
		return err
	}
	pp := n.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}
	if n.Stats {
		pp.Stats(res.Counts)
	}
	pp.Report(fmt.Sprintf("营养师周报 (%s)", res.Window), res.Text)
	return nil
}
