// Package log records how a meal felt.
package log

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/weiwei/pkg/app"
	"tableflip.dev/weiwei/pkg/entry"
	"tableflip.dev/weiwei/pkg/feeling"
	"tableflip.dev/weiwei/pkg/printers"
)

type Log struct {
	App     *app.Service
	Printer *printers.PrettyPrint
	Feeling feeling.Feeling
	// Food is the food note. Empty means whatever the planner handed over,
	// or unrecorded.
	Food string
}

func (n *Log) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not log, no journal")
	}
	if !n.Feeling.Valid() {
		return fmt.Errorf("unknown feeling %q", n.Feeling)
	}

	var (
		e   entry.Entry
		err error
	)
	if n.Food != "" {
		e, err = n.App.Log(ctx, n.Feeling, n.Food)
	} else {
		e, err = n.App.RecordFeeling(ctx, n.Feeling)
	}
	if err != nil {
		return err
	}

	pp := n.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{Out: color.Output}
	}
	pp.Title("已记录")
	pp.Entries([]entry.Entry{e})
	return nil
}
