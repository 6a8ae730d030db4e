// Package get lists journal entries.
package get

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/weiwei/pkg/app"
	"tableflip.dev/weiwei/pkg/entry"
	"tableflip.dev/weiwei/pkg/feeling"
	"tableflip.dev/weiwei/pkg/printers"
	"tableflip.dev/weiwei/pkg/timeutil"
)

type Get struct {
	App     *app.Service
	Printer *printers.PrettyPrint
	// ID selects a single entry when set.
	ID string
	// Feeling filters to one feeling when set.
	Feeling feeling.Feeling
	Window  timeutil.Window
	// Today keeps only entries from the current local day.
	Today bool
	Limit int
	Now   func() time.Time
}

func (n *Get) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not get, no journal")
	}
	entries, err := n.Entries(ctx)
	if err != nil {
		return err
	}
	pp := n.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}
	pp.NewLine()
	pp.Entries(entries)
	return nil
}

// Entries returns the entries that pass the filters.
func (n *Get) Entries(ctx context.Context) ([]entry.Entry, error) {
	if n.App == nil {
		return nil, errors.New("can not get, no journal")
	}
	all, err := n.App.Entries(ctx)
	if err != nil {
		return nil, err
	}
	return n.filtered(all), nil
}

func (n *Get) filtered(all []entry.Entry) []entry.Entry {
	now := time.Now()
	if n.Now != nil {
		now = n.Now()
	}
	out := make([]entry.Entry, 0, len(all))
	for _, e := range all {
		if n.ID != "" && e.ID != n.ID {
			continue
		}
		if n.Feeling != "" && e.Feeling != n.Feeling {
			continue
		}
		if !n.Window.Contains(e.Timestamp.Time, now) {
			continue
		}
		if n.Today && !e.Timestamp.SameDay(now) {
			continue
		}
		out = append(out, e)
		if n.Limit > 0 && len(out) == n.Limit {
			break
		}
	}
	return out
}
