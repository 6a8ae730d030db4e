package app

import (
	"context"
	"errors"

	"tableflip.dev/weiwei/pkg/entry"
	"tableflip.dev/weiwei/pkg/gateway"
	"tableflip.dev/weiwei/pkg/journal"
	"tableflip.dev/weiwei/pkg/timeutil"
)

// ReportResult is a narrative report over the entries inside Window.
type ReportResult struct {
	Window  timeutil.Window
	Entries []entry.Entry
	Counts  journal.Counts
	Text    string
}

// Report summarizes the entries logged within w. Provider failures degrade
// to a placeholder text rather than an error.
func (s *Service) Report(ctx context.Context, w timeutil.Window) (ReportResult, error) {
	if s.Reporter == nil {
		return ReportResult{}, errors.New("app: no reporter configured")
	}
	all, err := s.Entries(ctx)
	if err != nil {
		return ReportResult{}, err
	}
	now := s.now()
	var selected []entry.Entry
	for _, e := range all {
		if w.Contains(e.Timestamp.Time, now) {
			selected = append(selected, e)
		}
	}
	text, err := gateway.Summarize(ctx, s.Reporter, selected)
	if err != nil {
		return ReportResult{}, err
	}
	return ReportResult{
		Window:  w,
		Entries: selected,
		Counts:  journal.Aggregate(selected),
		Text:    text,
	}, nil
}
