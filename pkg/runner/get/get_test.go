package get

import (
	"testing"
	"time"

	"tableflip.dev/weiwei/pkg/entry"
	"tableflip.dev/weiwei/pkg/feeling"
	"tableflip.dev/weiwei/pkg/journal"
	"tableflip.dev/weiwei/pkg/timeutil"
)

func TestFiltered(t *testing.T) {
	now := time.Date(2023, 10, 27, 12, 0, 0, 0, time.UTC)
	seed := journal.Seed(now)

	tests := map[string]struct {
		get  Get
		want []string
	}{
		"all":     {Get{}, []string{"1", "2", "3", "4", "5", "6"}},
		"stuffed": {Get{Feeling: feeling.Stuffed}, []string{"4", "5"}},
		"window":  {Get{Window: timeutil.Window{Duration: 13 * time.Hour}}, []string{"5", "6"}},
		"limit":   {Get{Feeling: feeling.Great, Limit: 1}, []string{"1"}},
		"id":      {Get{ID: "4"}, []string{"4"}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			g := tc.get
			g.Now = func() time.Time { return now }
			got := ids(g.filtered(seed))
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("got %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestFilteredToday(t *testing.T) {
	now := time.Date(2024, 3, 9, 8, 30, 0, 0, time.Local)
	at := func(d time.Duration) entry.Timestamp { return entry.Timestamp{Time: now.Add(d)} }
	all := []entry.Entry{
		{ID: "a", Feeling: feeling.Great, Timestamp: at(-time.Hour)},
		{ID: "b", Feeling: feeling.Full, Timestamp: at(-8 * time.Hour)},
		{ID: "c", Feeling: feeling.Stuffed, Timestamp: at(-9 * time.Hour)},
		{ID: "d", Feeling: feeling.Great, Timestamp: at(-26 * time.Hour)},
	}
	g := Get{Today: true, Now: func() time.Time { return now }}
	got := ids(g.filtered(all))
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("got %v, want [a b]", got)
	}
}

func ids(entries []entry.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}
