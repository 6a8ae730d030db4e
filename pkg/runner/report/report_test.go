package report

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/weiwei/pkg/app"
	"tableflip.dev/weiwei/pkg/gateway"
	"tableflip.dev/weiwei/pkg/journal"
	"tableflip.dev/weiwei/pkg/printers"
	"tableflip.dev/weiwei/pkg/store"
	"tableflip.dev/weiwei/pkg/timeutil"
)

func init() {
	color.NoColor = true
}

func TestReport(t *testing.T) {
	now := time.Date(2023, 10, 27, 12, 0, 0, 0, time.UTC)
	zero := time.Duration(0)
	g := gateway.Select(gateway.Settings{MockDelay: &zero})
	svc := &app.Service{
		Journal:  journal.New(store.NewMemory(), journal.WithClock(func() time.Time { return now })),
		Reporter: g.Reporter,
		Now:      func() time.Time { return now },
	}

	var out bytes.Buffer
	r := Report{App: svc, Printer: &printers.PrettyPrint{Out: &out}, Window: timeutil.Window{Duration: 36 * time.Hour}, Stats: true}
	if err := r.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	got := out.String()
	for _, want := range []string{"胃感统计 - 3 entries", "营养师周报", "3 次"} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
}
