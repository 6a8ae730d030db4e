// Package timeutil parses the look-back windows accepted by report and list
// commands, such as "1w", "3d" or "2天".
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	day  = 24 * time.Hour
	week = 7 * day
)

var (
	segment = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+|[天日周星期小时分钟秒]+)`)
	units   = map[string]time.Duration{
		"h": time.Hour, "hr": time.Hour, "hour": time.Hour, "hours": time.Hour, "小时": time.Hour,
		"m": time.Minute, "min": time.Minute, "mins": time.Minute, "minutes": time.Minute, "分钟": time.Minute,
		"s": time.Second, "sec": time.Second, "seconds": time.Second, "秒": time.Second,
		"d": day, "day": day, "days": day, "天": day, "日": day,
		"w": week, "wk": week, "week": week, "weeks": week, "周": week, "星期": week,
	}
)

// Window is a look-back period ending at the moment it is applied. The zero
// Window covers everything.
type Window struct {
	Duration time.Duration
}

// ParseWindow parses "1w2d", "36h" or "3天". An empty input yields the
// zero Window.
func ParseWindow(input string) (Window, error) {
	rest := strings.ToLower(strings.TrimSpace(input))
	if rest == "" {
		return Window{}, nil
	}
	var total time.Duration
	for len(rest) > 0 {
		m := segment.FindStringSubmatch(rest)
		if m == nil {
			return Window{}, fmt.Errorf("timeutil: invalid window segment %q", strings.TrimSpace(rest))
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return Window{}, fmt.Errorf("timeutil: invalid window value %q: %w", m[1], err)
		}
		unit, ok := units[m[2]]
		if !ok {
			return Window{}, fmt.Errorf("timeutil: unsupported unit %q", m[2])
		}
		total += time.Duration(n) * unit
		rest = rest[len(m[0]):]
	}
	if total <= 0 {
		return Window{}, fmt.Errorf("timeutil: window must be greater than zero")
	}
	return Window{Duration: total}, nil
}

// All reports whether w places no bound.
func (w Window) All() bool {
	return w.Duration <= 0
}

// Since is the earliest instant inside w when applied at now.
func (w Window) Since(now time.Time) time.Time {
	if w.All() {
		return time.Time{}
	}
	return now.Add(-w.Duration)
}

// Contains reports whether t falls inside w applied at now.
func (w Window) Contains(t, now time.Time) bool {
	return w.All() || !t.Before(w.Since(now))
}

// String renders w with w/d/h/m/s tokens, or "all" for the zero Window.
func (w Window) String() string {
	if w.All() {
		return "all"
	}
	var b strings.Builder
	rem := w.Duration
	for _, u := range []struct {
		label string
		size  time.Duration
	}{{"w", week}, {"d", day}, {"h", time.Hour}, {"m", time.Minute}, {"s", time.Second}} {
		if rem < u.size {
			continue
		}
		fmt.Fprintf(&b, "%d%s", rem/u.size, u.label)
		rem %= u.size
	}
	if b.Len() == 0 {
		return "0s"
	}
	return b.String()
}
