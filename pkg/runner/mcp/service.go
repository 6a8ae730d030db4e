// Package mcp provides the Model Context Protocol server integration for weiwei.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/weiwei/pkg/app"
	"tableflip.dev/weiwei/pkg/entry"
	"tableflip.dev/weiwei/pkg/feeling"
	"tableflip.dev/weiwei/pkg/journal"
	"tableflip.dev/weiwei/pkg/meal"
	"tableflip.dev/weiwei/pkg/timeutil"
)

// Service projects app operations into transport-friendly DTOs.
type Service struct {
	App *app.Service
}

// ErrEntryNotFound is returned when no entry has the requested id.
var ErrEntryNotFound = errors.New("entry not found")

// EntryDTO is a transport-friendly projection of an entry.
type EntryDTO struct {
	ID            string `json:"id"`
	Date          string `json:"date"`
	TimestampISO  string `json:"timestamp"`
	TimestampUnix int64  `json:"timestampUnix"`
	Feeling       string `json:"feeling"`
	FeelingLabel  string `json:"feelingLabel"`
	FoodNote      string `json:"foodNote,omitempty"`
	Note          string `json:"note,omitempty"`
}

// ItemDTO is one dish of a plan.
type ItemDTO struct {
	Name                 string  `json:"name"`
	WeightGrams          float64 `json:"weightGrams"`
	IngredientsBreakdown string  `json:"ingredientsBreakdown,omitempty"`
}

// PlanDTO is a meal plan plus the derived values the app shows.
type PlanDTO struct {
	Items                 []ItemDTO `json:"items"`
	StomachLoadPercentage float64   `json:"stomachLoadPercentage"`
	FillLevel             float64   `json:"fillLevel"`
	Overloaded            bool      `json:"overloaded"`
	TotalGrams            float64   `json:"totalGrams"`
	Advice                string    `json:"advice"`
	PendingFood           string    `json:"pendingFood"`
}

// StatsDTO counts entries per feeling.
type StatsDTO struct {
	Total  int               `json:"total"`
	Counts map[string]int    `json:"counts"`
	Labels map[string]string `json:"labels"`
}

// ReportDTO is a generated report.
type ReportDTO struct {
	Window  string   `json:"window"`
	Entries int      `json:"entries"`
	Stats   StatsDTO `json:"stats"`
	Text    string   `json:"text"`
}

func NewService(a *app.Service) *Service {
	return &Service{App: a}
}

func (s *Service) Analyze(ctx context.Context, food string) (*PlanDTO, error) {
	plan, err := s.App.Analyze(ctx, food)
	if err != nil {
		return nil, err
	}
	return toPlanDTO(plan), nil
}

// LogFeeling records a feeling. An empty food falls back to the pending food
// from the last analysis.
func (s *Service) LogFeeling(ctx context.Context, f feeling.Feeling, food string) (*EntryDTO, error) {
	var (
		e   entry.Entry
		err error
	)
	if strings.TrimSpace(food) == "" {
		e, err = s.App.RecordFeeling(ctx, f)
	} else {
		e, err = s.App.Log(ctx, f, food)
	}
	if err != nil {
		return nil, err
	}
	dto := toEntryDTO(e)
	return &dto, nil
}

func (s *Service) ListEntries(ctx context.Context, limit int) ([]EntryDTO, error) {
	entries, err := s.App.Entries(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	out := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryDTO(e))
	}
	return out, nil
}

func (s *Service) EntryByID(ctx context.Context, id string) (*EntryDTO, error) {
	entries, err := s.App.Entries(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.ID == id {
			dto := toEntryDTO(e)
			return &dto, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
}

func (s *Service) Stats(ctx context.Context) (StatsDTO, error) {
	counts, err := s.App.Stats(ctx)
	if err != nil {
		return StatsDTO{}, err
	}
	return toStatsDTO(counts), nil
}

func (s *Service) Report(ctx context.Context, last string) (*ReportDTO, error) {
	w, err := timeutil.ParseWindow(last)
	if err != nil {
		return nil, err
	}
	res, err := s.App.Report(ctx, w)
	if err != nil {
		return nil, err
	}
	return &ReportDTO{
		Window:  res.Window.String(),
		Entries: len(res.Entries),
		Stats:   toStatsDTO(res.Counts),
		Text:    res.Text,
	}, nil
}

func toEntryDTO(e entry.Entry) EntryDTO {
	dto := EntryDTO{
		ID:           e.ID,
		Date:         e.Date,
		Feeling:      string(e.Feeling),
		FeelingLabel: e.Feeling.Label(),
		FoodNote:     e.FoodNote,
		Note:         e.Note,
	}
	if !e.Timestamp.IsZero() {
		dto.TimestampISO = entry.FormatTime(e.Timestamp.Time)
		dto.TimestampUnix = e.Timestamp.Unix()
	}
	return dto
}

func toPlanDTO(p meal.Plan) *PlanDTO {
	items := make([]ItemDTO, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, ItemDTO{
			Name:                 it.Name,
			WeightGrams:          it.WeightGrams,
			IngredientsBreakdown: it.IngredientsBreakdown,
		})
	}
	return &PlanDTO{
		Items:                 items,
		StomachLoadPercentage: p.StomachLoadPercentage,
		FillLevel:             p.FillLevel(),
		Overloaded:            p.Overloaded(),
		TotalGrams:            p.TotalGrams(),
		Advice:                p.Advice,
		PendingFood:           p.Summary(),
	}
}

func toStatsDTO(c journal.Counts) StatsDTO {
	dto := StatsDTO{
		Total:  c.Total(),
		Counts: make(map[string]int, len(c)),
		Labels: make(map[string]string, len(c)),
	}
	for _, f := range feeling.All() {
		dto.Counts[string(f)] = c[f]
		dto.Labels[string(f)] = f.Label()
	}
	return dto
}
