package util

import (
	"testing"
	"time"
)

func TestUnixHourAligned(t *testing.T) {
	ts := time.Date(2025, 8, 1, 14, 0, 0, 0, time.UTC)
	h := UnixHour(ts)
	if HourStart(h) != ts {
		t.Fatalf("hour start %v, want %v", HourStart(h), ts)
	}
}

func TestUnixHourTruncates(t *testing.T) {
	base := time.Date(2025, 8, 1, 14, 0, 0, 0, time.UTC)
	late := base.Add(59*time.Minute + 59*time.Second)
	if UnixHour(base) != UnixHour(late) {
		t.Fatalf("same hour expected: %d vs %d", UnixHour(base), UnixHour(late))
	}
	if UnixHour(base.Add(time.Hour)) != UnixHour(base)+1 {
		t.Fatalf("next hour expected")
	}
}

func TestUntilNextHour(t *testing.T) {
	now := time.Date(2025, 8, 1, 14, 30, 0, 0, time.UTC)
	if got := UntilNextHour(now); got != 30*time.Minute {
		t.Fatalf("got %v, want 30m", got)
	}
}

func TestParseIntDefault(t *testing.T) {
	if got := ParseIntDefault("", 7); got != 7 {
		t.Fatalf("empty: got %d", got)
	}
	if got := ParseIntDefault("12", 7); got != 12 {
		t.Fatalf("valid: got %d", got)
	}
	if got := ParseInt64Default("x", 9); got != 9 {
		t.Fatalf("invalid: got %d", got)
	}
}
