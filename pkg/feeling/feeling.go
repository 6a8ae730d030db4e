// Package feeling defines the post-meal stomach states a user can report.
package feeling

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Feeling is the user-reported stomach state after a meal.
type Feeling string

const (
	Great   Feeling = "GREAT"
	Full    Feeling = "FULL"
	Stuffed Feeling = "STUFFED"
)

// All lists every feeling in display order.
func All() []Feeling {
	return []Feeling{Great, Full, Stuffed}
}

type glyph struct {
	Key    string
	Symbol string
	Label  string
}

var glyphs = map[Feeling]glyph{
	Great:   {Key: "1", Symbol: "☺", Label: "刚好"},
	Full:    {Key: "2", Symbol: "≈", Label: "有点撑"},
	Stuffed: {Key: "3", Symbol: "☹", Label: "撑到了"},
}

// Label is the user-facing name of the feeling.
func (f Feeling) Label() string {
	if g, ok := glyphs[f]; ok {
		return g.Label
	}
	return string(f)
}

// Symbol is a single-rune marker used in terminal output.
func (f Feeling) Symbol() string {
	if g, ok := glyphs[f]; ok {
		return g.Symbol
	}
	return "?"
}

// Key is the quick-log shortcut for the feeling.
func (f Feeling) Key() string {
	return glyphs[f].Key
}

func (f Feeling) Valid() bool {
	_, ok := glyphs[f]
	return ok
}

func (f Feeling) String() string {
	return string(f)
}

// Parse accepts the wire value, the English name, the shortcut key or the label.
func Parse(s string) (Feeling, error) {
	in := strings.TrimSpace(s)
	for _, f := range All() {
		g := glyphs[f]
		if strings.EqualFold(in, string(f)) || in == g.Key || in == g.Label {
			return f, nil
		}
	}
	return "", fmt.Errorf("feeling: unknown feeling %q", s)
}

func (f *Feeling) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
