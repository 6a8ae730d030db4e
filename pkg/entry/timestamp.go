package entry

import (
	"encoding/json"
	"strconv"
	"time"
)

func ParseTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// Timestamp is an instant persisted as unix milliseconds.
type Timestamp struct {
	time.Time
}

// SameDay reports whether t and then fall on the same local calendar day.
func (t Timestamp) SameDay(then time.Time) bool {
	y1, m1, d1 := t.Local().Date()
	y2, m2, d2 := then.Local().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("0"), nil
	}
	return []byte(strconv.FormatInt(t.UnixMilli(), 10)), nil
}

// UnmarshalJSON accepts unix milliseconds or an RFC3339 string.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var millis int64
	if err := json.Unmarshal(b, &millis); err == nil {
		if millis == 0 {
			t.Time = time.Time{}
			return nil
		}
		t.Time = time.UnixMilli(millis)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	var err error
	t.Time, err = ParseTime(s)
	return err
}

func (t Timestamp) String() string {
	return t.UTC().Format(time.RFC3339)
}

func FormatTime(v time.Time) string {
	return v.UTC().Format(time.RFC3339Nano)
}
