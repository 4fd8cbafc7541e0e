package domain_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"paymind/internal/modules/valuation/domain"
	apperrors "paymind/internal/platform/errors"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestDefaultRates(t *testing.T) {
	t.Parallel()
	e := domain.DefaultEngine()
	if !near(e.BaseHourlyValue(), 187.5) {
		t.Fatalf("expected base hourly value 187.5, got %v", e.BaseHourlyValue())
	}
	if !near(e.AttentionValue(1.0), 112.5) {
		t.Fatalf("expected neutral attention value 112.5, got %v", e.AttentionValue(1.0))
	}
	if e.ReferenceHourlyRate() != 187.5 {
		t.Fatalf("reference rate must stay independent at 187.5")
	}
}

func TestTimeLossFallsBackForUnknownApps(t *testing.T) {
	t.Parallel()
	e := domain.DefaultEngine()
	for _, app := range []string{"Threads", "", "tiktok"} {
		got, err := e.TimeLoss(app, 3)
		if err != nil {
			t.Fatalf("time loss %q: %v", app, err)
		}
		if !near(got, e.AttentionValue(1.0)*3) {
			t.Fatalf("unknown app %q should use neutral weight, got %v", app, got)
		}
	}
	if _, ok := e.Config().ProfitWeights.Lookup("Threads"); ok {
		t.Fatalf("lookup should report unknown app")
	}
	tiktok, err := e.TimeLoss("TikTok", 1)
	if err != nil || !near(tiktok, 112.5*1.8) {
		t.Fatalf("unexpected TikTok loss %v (%v)", tiktok, err)
	}
}

func TestTimeLossIsLinearInHours(t *testing.T) {
	t.Parallel()
	e := domain.DefaultEngine()
	for _, app := range []string{"Instagram", "WhatsApp", "Unknown"} {
		for _, h := range []float64{0, 0.25, 1.5, 7} {
			one, _ := e.TimeLoss(app, h)
			two, _ := e.TimeLoss(app, 2*h)
			if !near(two, 2*one) {
				t.Fatalf("%s: loss(2h)=%v, 2*loss(h)=%v", app, two, 2*one)
			}
		}
	}
}

func TestNegativeAndNonFiniteInputsAreRejected(t *testing.T) {
	t.Parallel()
	e := domain.DefaultEngine()
	checks := []error{}
	_, err := e.TimeLoss("TikTok", -1)
	checks = append(checks, err)
	_, err = e.CorporateProfit("TikTok", math.NaN())
	checks = append(checks, err)
	_, err = e.FocusPoints("study", math.Inf(1))
	checks = append(checks, err)
	_, err = e.SubscriptionROI(-10, 1)
	checks = append(checks, err)
	_, err = e.SubscriptionROI(10, -1)
	checks = append(checks, err)
	for i, err := range checks {
		if !errors.Is(err, apperrors.ErrValidation) {
			t.Fatalf("check %d: expected validation error, got %v", i, err)
		}
	}
}

func TestCorporateProfit(t *testing.T) {
	t.Parallel()
	e := domain.DefaultEngine()
	got, _ := e.CorporateProfit("YouTube", 2)
	if got != 240 {
		t.Fatalf("expected 240, got %v", got)
	}
	got, _ = e.CorporateProfit("Mastodon", 2)
	if got != 100 {
		t.Fatalf("unknown app should earn 50/h, got %v", got)
	}
}

func TestFocusPoints(t *testing.T) {
	t.Parallel()
	e := domain.DefaultEngine()
	if got, _ := e.FocusPoints("study", 2); got != 200 {
		t.Fatalf("expected 200 study points, got %v", got)
	}
	if got, _ := e.FocusPoints("unknown_type", 2); got != 100 {
		t.Fatalf("expected fallback 100 points, got %v", got)
	}
	if got, _ := e.FocusPoints("meditation", 0.5); got != 30 {
		t.Fatalf("expected fractional 30 points, got %v", got)
	}
}

func TestSubscriptionROI(t *testing.T) {
	t.Parallel()
	e := domain.DefaultEngine()

	cheap, err := e.SubscriptionROI(100, 4)
	if err != nil {
		t.Fatalf("roi: %v", err)
	}
	if cheap.CostPerHour != 25 || !cheap.IsWorthwhile || cheap.Verdict != domain.VerdictWorthwhile {
		t.Fatalf("unexpected cheap roi: %+v", cheap)
	}
	if !strings.Contains(cheap.Advice, "₹25/hour") {
		t.Fatalf("advice should quote the hourly cost: %q", cheap.Advice)
	}

	pricey, _ := e.SubscriptionROI(300, 4)
	if pricey.CostPerHour != 75 || pricey.IsWorthwhile || pricey.Verdict != domain.VerdictExpensive {
		t.Fatalf("unexpected pricey roi: %+v", pricey)
	}

	unused, _ := e.SubscriptionROI(499, 0)
	if unused.CostPerHour != 499 || unused.IsWorthwhile {
		t.Fatalf("unused subscription should carry the whole cost per hour: %+v", unused)
	}
	boundary, _ := e.SubscriptionROI(50, 1)
	if boundary.IsWorthwhile {
		t.Fatalf("threshold is exclusive: 50/h is not worthwhile")
	}
}

func TestInjectedConfig(t *testing.T) {
	t.Parallel()
	cfg := domain.DefaultConfig()
	cfg.MonthlySalary = 80000
	cfg.ProfitWeights = domain.NewRateTable(map[domain.App]float64{"Mastodon": 0.2}, 2)
	e, err := domain.NewEngine(cfg)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if !near(e.BaseHourlyValue(), 500) {
		t.Fatalf("expected 500/h, got %v", e.BaseHourlyValue())
	}
	got, _ := e.TimeLoss("TikTok", 1)
	if !near(got, 500*0.6*2) {
		t.Fatalf("unknown app should use injected fallback, got %v", got)
	}

	cfg.ProductiveHoursPerMonth = 0
	if _, err := domain.NewEngine(cfg); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("zero productive hours must be rejected, got %v", err)
	}
}

func TestActivityTypeValidate(t *testing.T) {
	t.Parallel()
	for _, a := range domain.ActivityTypes {
		if err := a.Validate(); err != nil {
			t.Fatalf("%s should be valid: %v", a, err)
		}
	}
	if err := domain.ActivityType("gaming").Validate(); err == nil {
		t.Fatalf("gaming is not a focus activity")
	}
	if len(domain.DefaultFocusPointRates().Keys()) != 7 {
		t.Fatalf("expected 7 focus rates")
	}
}
