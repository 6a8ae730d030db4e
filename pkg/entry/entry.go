package entry

import (
	"fmt"
	"time"

	"tableflip.dev/weiwei/pkg/feeling"
)

// DateLayout is the calendar-date format stored in Entry.Date.
const DateLayout = "2006-01-02"

// New builds an entry stamped with the calendar date and instant of now.
func New(id string, f feeling.Feeling, foodNote string, now time.Time) *Entry {
	return &Entry{
		ID:        id,
		Date:      now.Format(DateLayout),
		Timestamp: Timestamp{Time: now},
		Feeling:   f,
		FoodNote:  foodNote,
	}
}

// Entry is one post-meal feeling record. Entries are never edited once stored.
type Entry struct {
	ID        string          `json:"id"`
	Date      string          `json:"date"`
	Timestamp Timestamp       `json:"timestamp"`
	Feeling   feeling.Feeling `json:"feeling"`
	FoodNote  string          `json:"foodNote,omitempty"`
	Note      string          `json:"note,omitempty"`
}

// Food returns the food note, or fallback when none was recorded.
func (e *Entry) Food(fallback string) string {
	if e.FoodNote == "" {
		return fallback
	}
	return e.FoodNote
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s %s  %s", e.Date, e.Feeling.Symbol(), e.Food("-"))
}
