package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/weiwei/pkg/entry"
	"tableflip.dev/weiwei/pkg/feeling"
	"tableflip.dev/weiwei/pkg/journal"
	"tableflip.dev/weiwei/pkg/meal"
)

func init() {
	color.NoColor = true
}

func TestGauge(t *testing.T) {
	tests := map[float64]string{
		0:   "[░░░░░░░░░░]",
		50:  "[█████░░░░░]",
		100: "[██████████]",
		150: "[██████████]",
		-3:  "[░░░░░░░░░░]",
	}
	for pct, want := range tests {
		if got := Gauge(pct, 10); got != want {
			t.Errorf("Gauge(%v) = %q, want %q", pct, got, want)
		}
	}
}

func TestPlanMentionsOverload(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Plan(meal.Plan{
		Items:                 []meal.Item{{Name: "火锅", WeightGrams: 800}},
		StomachLoadPercentage: 120,
		Advice:                "少吃一点。",
	})
	out := buf.String()
	for _, want := range []string{"火锅", "800g", "120%", "有点多了", "少吃一点"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestEntriesUsesLabels(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf, ShowID: true}
	now := time.Date(2023, 10, 27, 8, 0, 0, 0, time.UTC)
	pp.Entries([]entry.Entry{*entry.New("abc", feeling.Stuffed, "", now)})
	out := buf.String()
	for _, want := range []string{"abc", "2023-10-27", "撑到了", journal.Unrecorded} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestStats(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Stats(journal.Counts{feeling.Great: 2, feeling.Full: 1, feeling.Stuffed: 1})
	out := buf.String()
	if !strings.Contains(out, "4 entries") || !strings.Contains(out, "刚好") {
		t.Fatalf("unexpected stats output:\n%s", out)
	}
}
