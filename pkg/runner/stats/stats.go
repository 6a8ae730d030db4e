// Package stats prints how often each feeling was logged.
package stats

import (
	"context"
	"errors"

	"tableflip.dev/weiwei/pkg/app"
	"tableflip.dev/weiwei/pkg/printers"
)

type Stats struct {
	App     *app.Service
	Printer *printers.PrettyPrint
}

func (n *Stats) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not count, no journal")
	}
	c, err := n.App.Stats(ctx)
	if err != nil {
		return err
	}
	pp := n.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}
	pp.Stats(c)
	return nil
}
