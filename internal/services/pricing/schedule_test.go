package pricing

import (
	"testing"

	"ShellWatch/pkg/util"
)

func TestBuildScheduleOrdering(t *testing.T) {
	entries := BuildSchedule("user123", "item456", 487000, 487005, 250)
	if len(entries) != 6 {
		t.Fatalf("expected 6 entries, got %d", len(entries))
	}

	// Expected ranking computed from the pinned digest fixtures.
	wantHours := []int64{487001, 487003, 487002, 487004, 487000, 487005}
	for i, wantHour := range wantHours {
		if !entries[i].Time.Equal(util.HourStart(wantHour)) {
			t.Fatalf("position %d: got %v, want hour %d", i, entries[i].Time, wantHour)
		}
	}

	// Best window: hour 487001 prices at 227 against reference 250.
	wantDiscount := (250.0 - 227.0) / 250.0 * 100
	if entries[0].DiscountPercent != wantDiscount {
		t.Fatalf("best discount %v, want %v", entries[0].DiscountPercent, wantDiscount)
	}
}

func TestBuildScheduleSorted(t *testing.T) {
	entries := BuildSchedule("user123", "item456", 487000, 487200, 250)
	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]
		if cur.DiscountPercent > prev.DiscountPercent {
			t.Fatalf("not sorted by discount at %d: %v after %v", i, cur.DiscountPercent, prev.DiscountPercent)
		}
		if cur.DiscountPercent == prev.DiscountPercent && cur.Time.Before(prev.Time) {
			t.Fatalf("tie not broken by earliest time at %d", i)
		}
	}
}

func TestBuildScheduleSingleHour(t *testing.T) {
	entries := BuildSchedule("user123", "item456", 487000, 487000, 250)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if !entries[0].Time.Equal(util.HourStart(487000)) {
		t.Fatalf("unexpected time %v", entries[0].Time)
	}
}

func TestBuildScheduleInvertedRange(t *testing.T) {
	if entries := BuildSchedule("user123", "item456", 487005, 487000, 250); len(entries) != 0 {
		t.Fatalf("expected empty schedule, got %d entries", len(entries))
	}
}

func TestBuildScheduleHourAligned(t *testing.T) {
	for _, e := range BuildSchedule("user123", "item456", 487000, 487010, 250) {
		if e.Time.Minute() != 0 || e.Time.Second() != 0 || e.Time.Nanosecond() != 0 {
			t.Fatalf("entry not hour aligned: %v", e.Time)
		}
	}
}
