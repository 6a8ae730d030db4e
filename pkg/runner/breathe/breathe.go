// Package breathe runs the 4-7-8 breathing exercise in the terminal.
package breathe

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"tableflip.dev/weiwei/pkg/calm"
	"tableflip.dev/weiwei/pkg/clock"
	"tableflip.dev/weiwei/pkg/phase"
)

type Breathe struct {
	// Rounds is the number of full cycles, at least one.
	Rounds int
	Clock  clock.Clock
	Table  *phase.Table
	Out    io.Writer
	// Inline redraws a single line in place. It defaults to whether stdout
	// is a terminal.
	Inline *bool
}

func (b *Breathe) Do(ctx context.Context) error {
	out := b.Out
	if out == nil {
		out = color.Output
	}
	inline := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if b.Inline != nil {
		inline = *b.Inline
	}
	table := phase.Breathing478()
	if b.Table != nil {
		table = *b.Table
	}
	rounds := b.Rounds
	if rounds < 1 {
		rounds = 1
	}

	r := &renderer{out: out, inline: inline}
	for i := 0; i < rounds; i++ {
		if rounds > 1 {
			r.line(color.New(color.Faint).Sprintf("第 %d/%d 轮", i+1, rounds))
		}
		if err := b.round(ctx, table, r); err != nil {
			return err
		}
	}
	_, _ = color.New(color.Bold, color.FgGreen).Fprintln(out, calm.CelebrationTitle)
	_, _ = fmt.Fprintln(out, calm.CelebrationMessage)
	return nil
}

func (b *Breathe) round(ctx context.Context, table phase.Table, r *renderer) error {
	done := make(chan struct{})
	s, err := phase.New(b.Clock, table, func() { close(done) }, phase.WithObserver(r.snapshot))
	if err != nil {
		return err
	}
	if err := s.Start(); err != nil {
		return err
	}
	select {
	case <-done:
		r.end()
		return nil
	case <-ctx.Done():
		s.Cancel()
		r.end()
		return ctx.Err()
	}
}

type renderer struct {
	mu     sync.Mutex
	out    io.Writer
	inline bool
	last   phase.Snapshot
	dirty  bool
}

func (r *renderer) snapshot(s phase.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.Finished || s.Cancelled || s.Label == "" || s == r.last {
		return
	}
	r.last = s
	text := s.Label
	if s.Countdown {
		text = fmt.Sprintf("%s  %d", s.Label, s.Remaining)
	}
	if r.inline {
		_, _ = fmt.Fprintf(r.out, "\r\x1b[K%s", color.New(color.Bold).Sprint(text))
		r.dirty = true
		return
	}
	_, _ = fmt.Fprintln(r.out, text)
}

func (r *renderer) line(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.endLocked()
	_, _ = fmt.Fprintln(r.out, text)
}

func (r *renderer) end() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.endLocked()
	r.last = phase.Snapshot{}
}

func (r *renderer) endLocked() {
	if r.dirty {
		_, _ = fmt.Fprintln(r.out)
		r.dirty = false
	}
}
