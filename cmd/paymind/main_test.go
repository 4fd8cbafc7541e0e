package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootRegistersCommands(t *testing.T) {
	t.Parallel()
	root := newRootCmd()
	for _, path := range [][]string{
		{"tui"}, {"serve"}, {"track", "screen"}, {"track", "distractions"}, {"focus", "log"},
		{"sub", "add"}, {"goal", "allocate"}, {"wallet"}, {"dashboard"}, {"recommend"},
		{"report"}, {"calc", "debt"}, {"plugin", "doctor"},
	} {
		cmd, _, err := root.Find(path)
		if err != nil || cmd.Name() != path[len(path)-1] {
			t.Fatalf("command %v not registered: %v", path, err)
		}
	}
}

func TestScreenRejectsMalformedPairBeforeLoading(t *testing.T) {
	t.Parallel()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"--data-dir", t.TempDir(), "track", "screen", "TikTok"})
	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "expected app=hours") {
		t.Fatalf("err = %v", err)
	}
}

func TestParseDay(t *testing.T) {
	t.Parallel()
	d, err := parseDay("")
	if err != nil || !d.IsZero() {
		t.Fatalf("empty day = %v, %v", d, err)
	}
	d, err = parseDay("2024-03-05")
	if err != nil || day(d) != "2024-03-05" {
		t.Fatalf("day = %v, %v", d, err)
	}
	if _, err := parseDay("March 5"); err == nil {
		t.Fatalf("expected error for bad day")
	}
	if _, err := parseIntArg("pickups", "ten"); err == nil {
		t.Fatalf("expected error for non-integer")
	}
}
