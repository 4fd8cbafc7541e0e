package domain

import (
	"strings"
	"testing"
	"time"
)

func TestManifestValidate(t *testing.T) {
	t.Parallel()
	valid := Manifest{Name: "bedtime", Version: "1.0.0", Binary: "/bin/true", Enabled: true}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid manifest rejected: %v", err)
	}

	cases := map[string]Manifest{
		"name":     {Name: "Bed Time", Binary: "/bin/true"},
		"binary":   {Name: "bedtime"},
		"checksum": {Name: "bedtime", Binary: "/bin/true", SHA256: "ABC"},
		"timeout":  {Name: "bedtime", Binary: "/bin/true", TimeoutMS: -1},
	}
	for field, m := range cases {
		if err := m.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", field)
		}
	}
	withSum := valid
	withSum.SHA256 = strings.Repeat("a", 64)
	if err := withSum.Validate(); err != nil {
		t.Fatalf("checksum manifest rejected: %v", err)
	}
}

func TestManifestTimeout(t *testing.T) {
	t.Parallel()
	if got := (Manifest{}).Timeout(time.Second); got != time.Second {
		t.Fatalf("fallback = %v", got)
	}
	if got := (Manifest{TimeoutMS: 250}).Timeout(time.Second); got != 250*time.Millisecond {
		t.Fatalf("timeout = %v", got)
	}
}

func TestSuggestionValidate(t *testing.T) {
	t.Parallel()
	if err := (Suggestion{ID: "a", Title: "A", Difficulty: "easy"}).Validate(); err != nil {
		t.Fatalf("valid suggestion rejected: %v", err)
	}
	if err := (Suggestion{ID: "a", Title: "A", Difficulty: "extreme"}).Validate(); err == nil {
		t.Fatalf("unknown difficulty should fail")
	}
	if err := (Suggestion{ID: "a", Title: "A", PotentialSaving: -1}).Validate(); err == nil {
		t.Fatalf("negative saving should fail")
	}
	if err := (Suggestion{Title: "A"}).Validate(); err == nil {
		t.Fatalf("missing id should fail")
	}
}
