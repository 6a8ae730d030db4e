package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/weiwei/pkg/app"
	"tableflip.dev/weiwei/pkg/feeling"
	"tableflip.dev/weiwei/pkg/gateway"
	"tableflip.dev/weiwei/pkg/journal"
	"tableflip.dev/weiwei/pkg/store"
)

func newTestService() *Service {
	now := time.Date(2023, time.October, 27, 12, 0, 0, 0, time.UTC)
	zero := time.Duration(0)
	g := gateway.Select(gateway.Settings{Logger: gateway.Discard, MockDelay: &zero})
	return NewService(&app.Service{
		Journal:  journal.New(store.NewMemory(), journal.WithClock(func() time.Time { return now })),
		Analyzer: g.Analyzer,
		Reporter: g.Reporter,
		Session:  &app.Session{},
		Now:      func() time.Time { return now },
	})
}

func TestServiceAnalyzeThenLog(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	plan, err := svc.Analyze(ctx, "米饭")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if plan.StomachLoadPercentage != 75 || plan.Overloaded || len(plan.Items) != 3 {
		t.Fatalf("unexpected plan %+v", plan)
	}

	dto, err := svc.LogFeeling(ctx, feeling.Full, "")
	if err != nil {
		t.Fatalf("LogFeeling failed: %v", err)
	}
	if dto.FoodNote != plan.PendingFood {
		t.Fatalf("expected pending food %q, got %q", plan.PendingFood, dto.FoodNote)
	}
	if dto.FeelingLabel != "有点撑" || dto.TimestampUnix == 0 {
		t.Fatalf("unexpected entry %+v", dto)
	}

	entries, err := svc.ListEntries(ctx, 1)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != dto.ID {
		t.Fatalf("expected newest entry first, got %+v", entries)
	}
}

func TestServiceLogExplicitFood(t *testing.T) {
	svc := newTestService()
	dto, err := svc.LogFeeling(context.Background(), feeling.Stuffed, "火锅")
	if err != nil {
		t.Fatalf("LogFeeling failed: %v", err)
	}
	if dto.FoodNote != "火锅" || dto.Feeling != "STUFFED" {
		t.Fatalf("unexpected entry %+v", dto)
	}
}

func TestServiceEntryByID(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	dto, err := svc.EntryByID(ctx, "4")
	if err != nil {
		t.Fatalf("EntryByID failed: %v", err)
	}
	if dto.FoodNote != "红烧肉+两碗米饭" {
		t.Fatalf("unexpected seed entry %+v", dto)
	}
	if _, err := svc.EntryByID(ctx, "missing"); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestServiceStatsAndReport(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Total != 6 || stats.Counts["GREAT"] != 2 || stats.Labels["STUFFED"] != "撑到了" {
		t.Fatalf("unexpected stats %+v", stats)
	}

	report, err := svc.Report(ctx, "")
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if report.Window != "all" || report.Entries != 6 || report.Text == "" {
		t.Fatalf("unexpected report %+v", report)
	}

	if _, err := svc.Report(ctx, "soon"); err == nil {
		t.Fatalf("expected window parse error")
	}
}
