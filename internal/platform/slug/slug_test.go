package slug

import "testing"

func TestMake(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"Weekly Report":     "weekly-report",
		"  José Müller  ":   "jose-muller",
		"user@example.com":  "user-example-com",
		"***":               "untitled",
		"":                  "untitled",
		"Café / Crème 2025": "cafe-creme-2025",
	}
	for in, want := range cases {
		if got := Make(in); got != want {
			t.Fatalf("Make(%q) = %q, want %q", in, got, want)
		}
	}
}
