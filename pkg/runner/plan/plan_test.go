package plan

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/weiwei/pkg/app"
	"tableflip.dev/weiwei/pkg/gateway"
	"tableflip.dev/weiwei/pkg/journal"
	"tableflip.dev/weiwei/pkg/meal"
	"tableflip.dev/weiwei/pkg/printers"
	"tableflip.dev/weiwei/pkg/store"
)

func init() {
	color.NoColor = true
}

type failing struct{}

func (failing) Analyze(ctx context.Context, food string) (meal.Plan, error) {
	return meal.Plan{}, &gateway.AnalysisFailure{Err: errors.New("boom")}
}

func TestPlan(t *testing.T) {
	zero := time.Duration(0)
	g := gateway.Select(gateway.Settings{MockDelay: &zero})
	svc := &app.Service{Journal: journal.New(store.NewMemory()), Analyzer: g.Analyzer, Session: &app.Session{}}

	var out bytes.Buffer
	p := Plan{App: svc, Printer: &printers.PrettyPrint{Out: &out}, Food: "番茄炒蛋"}
	if err := p.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	for _, want := range []string{"推荐份量", "番茄炒蛋", "75%"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("output missing %q:\n%s", want, out.String())
		}
	}
	if food, ok := svc.Session.Pending(); !ok || !strings.Contains(food, "番茄炒蛋") {
		t.Fatalf("pending = %q, %v", food, ok)
	}
}

func TestPlanFailure(t *testing.T) {
	svc := &app.Service{Analyzer: failing{}}
	p := Plan{App: svc, Printer: &printers.PrettyPrint{Out: &bytes.Buffer{}}, Food: "x"}
	err := p.Do(context.Background())
	if err == nil || !strings.Contains(err.Error(), gateway.AnalysisRetryMessage) {
		t.Fatalf("want retry message, got %v", err)
	}
}
