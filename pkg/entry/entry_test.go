package entry

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"tableflip.dev/weiwei/pkg/feeling"
)

func TestNewStampsDateAndInstant(t *testing.T) {
	now := time.Date(2023, time.October, 26, 19, 30, 0, 0, time.Local)
	e := New("abc", feeling.Stuffed, "火锅", now)
	if e.Date != "2023-10-26" {
		t.Fatalf("expected date 2023-10-26, got %s", e.Date)
	}
	if !e.Timestamp.Equal(now) {
		t.Fatalf("expected timestamp %v, got %v", now, e.Timestamp.Time)
	}
	if e.Food("未记录") != "火锅" {
		t.Fatalf("unexpected food %q", e.Food("未记录"))
	}
}

func TestTimestampPersistsAsMillis(t *testing.T) {
	now := time.UnixMilli(1698300000123)
	e := New("abc", feeling.Great, "", now)
	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"timestamp":1698300000123`) {
		t.Fatalf("expected millisecond timestamp in %s", b)
	}
	if strings.Contains(string(b), "foodNote") {
		t.Fatalf("expected empty food note to be omitted: %s", b)
	}

	var back Entry
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Timestamp.Equal(now) {
		t.Fatalf("expected %v, got %v", now, back.Timestamp.Time)
	}
	if back.Food("未记录") != "未记录" {
		t.Fatalf("expected fallback food, got %q", back.Food("未记录"))
	}
}

func TestTimestampAcceptsRFC3339(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`"2023-10-27T08:00:00Z"`), &ts); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := time.Date(2023, time.October, 27, 8, 0, 0, 0, time.UTC)
	if !ts.Equal(want) {
		t.Fatalf("expected %v, got %v", want, ts.Time)
	}
}
