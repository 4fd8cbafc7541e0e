package service

import (
	"errors"
	"testing"
	"time"

	valuation "paymind/internal/modules/valuation/domain"
	"paymind/internal/platform/clock"
	apperrors "paymind/internal/platform/errors"
)

type fixedID struct{ n int }

func (f *fixedID) New() string {
	f.n++
	return "id-" + string(rune('a'+f.n-1))
}

func TestUsageDayDropsZeroAndMergesDuplicates(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 5, 1, 23, 59, 0, 0, time.UTC)
	svc := NewTrackingService(clock.Fixed{At: now}, &fixedID{}, valuation.DefaultEngine())

	entries, dropped, err := svc.UsageDay("u1", time.Time{}, []AppHours{
		{App: " Instagram ", Hours: 1},
		{App: "Discord", Hours: 0},
		{App: "Instagram", Hours: 2},
	})
	if err != nil {
		t.Fatalf("usage day: %v", err)
	}
	if dropped != 1 || len(entries) != 1 {
		t.Fatalf("dropped=%d entries=%+v", dropped, entries)
	}
	e := entries[0]
	if e.AppName != "Instagram" || e.Hours != 2 || e.ID != "id-a" {
		t.Fatalf("last value should win under the first id: %+v", e)
	}
	if e.Date != time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("date should default to today, got %v", e.Date)
	}
	want, _ := valuation.DefaultEngine().TimeLoss("Instagram", 2)
	if e.EstValueLost != want {
		t.Fatalf("loss = %v, want %v", e.EstValueLost, want)
	}
}

func TestFocusRoundsPoints(t *testing.T) {
	t.Parallel()
	svc := NewTrackingService(clock.Fixed{At: time.Now()}, &fixedID{}, valuation.DefaultEngine())
	a, err := svc.Focus("u1", time.Time{}, "reading", 1.25)
	if err != nil {
		t.Fatalf("focus: %v", err)
	}
	if a.Points != 88 {
		t.Fatalf("points = %d, want 88", a.Points)
	}
	if _, err := svc.Focus("", time.Time{}, "reading", 1); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank user, got %v", err)
	}
}

func TestSubscriptionValidation(t *testing.T) {
	t.Parallel()
	svc := NewTrackingService(clock.Fixed{At: time.Now()}, &fixedID{}, valuation.DefaultEngine())
	if _, err := svc.Subscription("u1", "Music", -1, 0); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error for negative cost, got %v", err)
	}
	sub, err := svc.Subscription("u1", " Music ", 99, 3)
	if err != nil || sub.Name != "Music" {
		t.Fatalf("sub = %+v, %v", sub, err)
	}
}
