package domain

import (
	"errors"
	"math"
	"testing"
	"time"

	tracking "paymind/internal/modules/tracking/domain"
	valuation "paymind/internal/modules/valuation/domain"
	"paymind/internal/platform/calendar"
	apperrors "paymind/internal/platform/errors"
)

func day(s string) time.Time {
	t, err := calendar.Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

func entry(app string, hours float64, date string) tracking.UsageEntry {
	return tracking.UsageEntry{AppName: app, Hours: hours, Date: day(date)}
}

func TestAggregateByAppSumsAndOrders(t *testing.T) {
	t.Parallel()
	got := AggregateByApp([]tracking.UsageEntry{
		entry("Reddit", 2, "2025-01-01"),
		entry("TikTok", 1, "2025-01-01"),
		entry("Netflix", 3, "2025-01-02"),
		entry("TikTok", 4, "2025-01-02"),
		entry("Discord", 3, "2025-01-03"),
	})
	want := []AppUsage{{"TikTok", 5, 1}, {"Netflix", 3, 2}, {"Discord", 3, 3}, {"Reddit", 2, 0}}
	if len(got) != len(want) {
		t.Fatalf("got %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: got %+v want %+v", i, got[i], want[i])
		}
	}
	top, ok := TopApp(got)
	if !ok || top.App != "TikTok" {
		t.Fatalf("top app = %+v", top)
	}
	if TotalHours(got) != 13 {
		t.Fatalf("total hours = %v", TotalHours(got))
	}
	if _, ok := TopApp(nil); ok {
		t.Fatalf("empty usage has no top app")
	}
}

func TestPeriodTotalsHonoursRange(t *testing.T) {
	t.Parallel()
	engine := valuation.DefaultEngine()
	entries := []tracking.UsageEntry{
		entry("Unknown", 2, "2025-01-07"),
		entry("Unknown", 1, "2025-01-01"),
		entry("Unknown", 5, "2024-12-31"),
		entry("Unknown", 9, "2025-01-08"),
	}
	week := calendar.LastDays(day("2025-01-07"), 7)
	totals, err := PeriodTotals(entries, week, engine)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if totals.Hours != 3 || totals.Entries != 2 {
		t.Fatalf("unexpected totals %+v", totals)
	}
	if math.Abs(totals.Loss-3*112.5) > 1e-9 {
		t.Fatalf("loss = %v, want %v", totals.Loss, 3*112.5)
	}
	profit, err := CorporateProfitFor(entries, week, engine)
	if err != nil || profit != 150 {
		t.Fatalf("profit = %v, %v", profit, err)
	}
}

func TestDistractionDebt(t *testing.T) {
	t.Parallel()
	debt, err := DistractionDebt(20, 60, valuation.DefaultReferenceHourlyRate)
	if err != nil {
		t.Fatalf("debt: %v", err)
	}
	if debt.Minutes != 90 || debt.Value != 281.25 {
		t.Fatalf("unexpected debt %+v", debt)
	}
	if _, err := DistractionDebt(-1, 0, 187.5); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestStreak(t *testing.T) {
	t.Parallel()
	identity := func(b bool) bool { return b }
	cases := []struct {
		in   []bool
		want int
	}{
		{[]bool{true, true, false, true}, 2},
		{[]bool{false, true}, 0},
		{[]bool{true, true, true}, 3},
		{nil, 0},
	}
	for _, tc := range cases {
		if got := Streak(tc.in, identity); got != tc.want {
			t.Fatalf("Streak(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestActivityStreakStopsAtGap(t *testing.T) {
	t.Parallel()
	r := calendar.LastDays(day("2025-03-10"), 30)
	active := []time.Time{day("2025-03-10"), day("2025-03-09"), day("2025-03-08"), day("2025-03-06")}
	if got := ActivityStreak(r, active); got != 3 {
		t.Fatalf("streak = %d, want 3", got)
	}
	if got := ActivityStreak(r, []time.Time{day("2025-03-09")}); got != 0 {
		t.Fatalf("inactive today should break the streak, got %d", got)
	}
}

func TestDistractionStreak(t *testing.T) {
	t.Parallel()
	logs := []tracking.DistractionLog{{PickupCount: 10}, {PickupCount: 49}, {PickupCount: 50}, {PickupCount: 5}}
	if got := DistractionStreak(logs); got != 2 {
		t.Fatalf("distraction streak = %d, want 2", got)
	}
}

func TestGenerateRecommendationsSwitchRule(t *testing.T) {
	t.Parallel()
	engine := valuation.DefaultEngine()

	recs := GenerateRecommendations([]AppUsage{{App: "TikTok", Hours: 8}}, 0, engine)
	if len(recs) != 1 || recs[0].Kind != KindSwitch {
		t.Fatalf("expected a single switch recommendation, got %+v", recs)
	}
	rec := recs[0]
	if math.Abs(rec.CurrentCost-2700) > 1e-9 || math.Abs(rec.PotentialSaving-8*187.5*1.8*0.6) > 1e-9 {
		t.Fatalf("unexpected costs %+v", rec)
	}
	if rec.Difficulty != DifficultyHard || rec.Alternative != "YouTube (educational channels)" {
		t.Fatalf("unexpected difficulty or alternative %+v", rec)
	}

	if recs := GenerateRecommendations([]AppUsage{{App: "Netflix", Hours: 8}}, 0, engine); len(recs) != 0 {
		t.Fatalf("Netflix should not trigger a switch, got %+v", recs)
	}
	if recs := GenerateRecommendations([]AppUsage{{App: "NewApp", Hours: 8}}, 0, engine); len(recs) != 0 {
		t.Fatalf("unknown apps use weight 1.0 and should not switch, got %+v", recs)
	}
}

func TestGenerateRecommendationsGroupOrder(t *testing.T) {
	t.Parallel()
	engine := valuation.DefaultEngine()
	usage := []AppUsage{{"YouTube", 20, 0}, {"Instagram", 12, 1}, {"Reddit", 11, 2}, {"Discord", 11, 3}}

	recs := GenerateRecommendations(usage, 1500, engine)
	var kinds []Kind
	var apps []string
	for _, r := range recs {
		kinds = append(kinds, r.Kind)
		apps = append(apps, r.App)
	}
	wantKinds := []Kind{KindSwitch, KindReduce, KindReduce, KindReduce, KindInvest}
	wantApps := []string{"Instagram", "YouTube", "Instagram", "Reddit", ""}
	if len(kinds) != len(wantKinds) {
		t.Fatalf("got kinds %v apps %v", kinds, apps)
	}
	for i := range wantKinds {
		if kinds[i] != wantKinds[i] || apps[i] != wantApps[i] {
			t.Fatalf("position %d: got %s/%s want %s/%s", i, kinds[i], apps[i], wantKinds[i], wantApps[i])
		}
	}
	invest := recs[len(recs)-1]
	if invest.PotentialSaving != 2625 || invest.CurrentCost != 1500 {
		t.Fatalf("unexpected invest recommendation %+v", invest)
	}
	if math.Abs(recs[1].PotentialSaving-1125) > 1e-9 {
		t.Fatalf("unexpected reduce saving %+v", recs[1])
	}
}

func TestSwitchRecommendationsFollowFirstLoggedOrder(t *testing.T) {
	t.Parallel()
	usage := AggregateByApp([]tracking.UsageEntry{
		entry("Instagram", 6, "2025-01-01"),
		entry("TikTok", 9, "2025-01-01"),
		entry("Instagram", 1, "2025-01-02"),
	})
	if usage[0].App != "TikTok" {
		t.Fatalf("aggregate is ordered by hours, got %+v", usage)
	}

	var switched []string
	for _, r := range GenerateRecommendations(usage, 0, valuation.DefaultEngine()) {
		if r.Kind == KindSwitch {
			switched = append(switched, r.App)
		}
	}
	if len(switched) != 2 || switched[0] != "Instagram" || switched[1] != "TikTok" {
		t.Fatalf("switch order = %v, want [Instagram TikTok]", switched)
	}
}

func TestCutBackPlans(t *testing.T) {
	t.Parallel()
	plans := CutBackPlans(187.5)
	if len(plans) != 3 {
		t.Fatalf("expected 3 plans, got %d", len(plans))
	}
	want := map[string]float64{"morning-routine": 5625, "notification-diet": 2812.5, "evening-cutoff": 11250}
	for _, p := range plans {
		if p.MonthlySaving != want[p.ID] {
			t.Fatalf("%s monthly saving = %v, want %v", p.ID, p.MonthlySaving, want[p.ID])
		}
		if len(p.Steps) != 4 {
			t.Fatalf("%s should list 4 steps", p.ID)
		}
	}
}
