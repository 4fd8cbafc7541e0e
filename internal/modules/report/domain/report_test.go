package domain

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()
	cases := map[string]Format{"": FormatJSON, "JSON": FormatJSON, "markdown": FormatMarkdown, "md": FormatMarkdown, " pdf ": FormatPDF}
	for in, want := range cases {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("html"); err == nil {
		t.Fatalf("expected html to be rejected")
	}
}

func TestFileName(t *testing.T) {
	t.Parallel()
	asOf := time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC)
	if got := FileName(asOf, FormatPDF); got != "paymind-report-2025-03-10.pdf" {
		t.Fatalf("unexpected file name %s", got)
	}
}

func TestTipsThresholds(t *testing.T) {
	t.Parallel()
	calm := Tips(Summary{ValueLost: 5000, FocusHours: 10}, 5, 7)
	busy := Tips(Summary{ValueLost: 5000.01, FocusHours: 9.9}, 6, 6)
	if len(calm) != 4 || len(busy) != 4 {
		t.Fatalf("expected four tips each, got %d and %d", len(calm), len(busy))
	}
	for i := range calm {
		if calm[i] == busy[i] {
			t.Fatalf("tip %d should flip across the threshold: %q", i, calm[i])
		}
	}
	if !strings.HasPrefix(busy[0], "High attention loss") || !strings.HasPrefix(calm[3], "Great tracking consistency") {
		t.Fatalf("unexpected tips: %v / %v", calm, busy)
	}
}

func TestInsights(t *testing.T) {
	t.Parallel()
	money := func(v float64) string { return fmt.Sprintf("₹%.0f", v) }
	empty := Insights(Summary{}, 0, money)
	if len(empty) != 2 || empty[1] != "Keep tracking to build awareness of your digital habits." {
		t.Fatalf("unexpected empty insights: %v", empty)
	}
	full := Insights(Summary{Entries: 4, Apps: 2, ValueLost: 1957.5, FocusHours: 3}, 8, money)
	if len(full) != 4 {
		t.Fatalf("expected four insights, got %v", full)
	}
	if !strings.Contains(full[1], "₹1958") || !strings.Contains(full[3], "8-day") {
		t.Fatalf("unexpected insights: %v", full)
	}
}

func TestAllTimeCoversHistory(t *testing.T) {
	t.Parallel()
	asOf := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	r := AllTime(asOf)
	if !r.Contains(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)) || r.Contains(asOf.AddDate(0, 0, 1)) {
		t.Fatalf("unexpected range %s", r)
	}
}
