package calendar_test

import (
	"testing"
	"time"

	"paymind/internal/platform/calendar"
)

func TestLastDaysIsInclusiveOfEnd(t *testing.T) {
	t.Parallel()
	end := time.Date(2026, 10, 17, 18, 30, 0, 0, time.UTC)
	r := calendar.LastDays(end, 7)
	if got := calendar.Format(r.From); got != "2026-10-11" {
		t.Fatalf("expected window to start 2026-10-11, got %s", got)
	}
	if r.Len() != 7 {
		t.Fatalf("expected 7 days, got %d", r.Len())
	}
	if !r.Contains(end) {
		t.Fatalf("window must contain its end day")
	}
	if r.Contains(end.AddDate(0, 0, -7)) {
		t.Fatalf("window must not contain the eighth day back")
	}
	if calendar.LastDays(end, 0).Len() != 1 {
		t.Fatalf("non-positive length should collapse to a single day")
	}
}

func TestDaysDescendingAndRangeValidation(t *testing.T) {
	t.Parallel()
	from, _ := calendar.Parse("2026-02-27")
	to, _ := calendar.Parse("2026-03-01")
	r, err := calendar.NewRange(from, to)
	if err != nil {
		t.Fatalf("new range: %v", err)
	}
	days := r.DaysDescending()
	if len(days) != 3 || calendar.Format(days[0]) != "2026-03-01" || calendar.Format(days[2]) != "2026-02-27" {
		t.Fatalf("unexpected days: %v", days)
	}
	if _, err := calendar.NewRange(to, from); err == nil {
		t.Fatalf("reversed range should fail")
	}
	if _, err := calendar.Parse("17/10/2026"); err == nil {
		t.Fatalf("non ISO date should fail")
	}
}
