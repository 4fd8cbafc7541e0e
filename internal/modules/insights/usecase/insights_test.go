package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"

	advisordto "paymind/internal/modules/advisor/dto"
	"paymind/internal/modules/insights/dto"
	tracking "paymind/internal/modules/tracking/domain"
	valuation "paymind/internal/modules/valuation/domain"
	"paymind/internal/platform/calendar"
	"paymind/internal/platform/clock"
	apperrors "paymind/internal/platform/errors"
)

type fakeTracking struct {
	usage         []tracking.UsageEntry
	distractions  []tracking.DistractionLog
	focus         []tracking.FocusActivity
	subscriptions []tracking.Subscription
}

func (f *fakeTracking) ListUsage(_ context.Context, userID string, r calendar.Range) ([]tracking.UsageEntry, error) {
	var out []tracking.UsageEntry
	for _, e := range f.usage {
		if e.UserID == userID && r.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeTracking) ListDistractions(_ context.Context, userID string, r calendar.Range) ([]tracking.DistractionLog, error) {
	var out []tracking.DistractionLog
	for _, l := range f.distractions {
		if l.UserID == userID && r.Contains(l.Date) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeTracking) ListFocus(_ context.Context, userID string, r calendar.Range) ([]tracking.FocusActivity, error) {
	var out []tracking.FocusActivity
	for _, a := range f.focus {
		if a.UserID == userID && r.Contains(a.Date) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeTracking) ListSubscriptions(_ context.Context, userID string) ([]tracking.Subscription, error) {
	var out []tracking.Subscription
	for _, s := range f.subscriptions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeAdvisor struct {
	out   advisordto.AdviseOutput
	err   error
	input advisordto.AdviseInput
}

func (f *fakeAdvisor) List(context.Context) ([]advisordto.PluginInfo, error) { return nil, nil }

func (f *fakeAdvisor) Doctor(context.Context) ([]advisordto.DoctorResult, error) { return nil, nil }

func (f *fakeAdvisor) Advise(_ context.Context, input advisordto.AdviseInput) (advisordto.AdviseOutput, error) {
	f.input = input
	return f.out, f.err
}

var asOf = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return asOf.AddDate(0, 0, offset)
}

func seeded() *fakeTracking {
	return &fakeTracking{
		usage: []tracking.UsageEntry{
			{UserID: "u1", AppName: "TikTok", Hours: 2, Date: day(0)},
			{UserID: "u1", AppName: "Notes", Hours: 3, Date: day(-1)},
			{UserID: "u1", AppName: "TikTok", Hours: 6, Date: day(-2)},
			{UserID: "u1", AppName: "Instagram", Hours: 5, Date: day(-7)},
			{UserID: "u2", AppName: "YouTube", Hours: 9, Date: day(0)},
		},
		distractions: []tracking.DistractionLog{
			{UserID: "u1", Date: day(0), PickupCount: 30, NotificationCount: 20},
			{UserID: "u1", Date: day(-1), PickupCount: 60},
			{UserID: "u1", Date: day(-2), PickupCount: 10, NotificationCount: 10},
		},
		focus: []tracking.FocusActivity{
			{UserID: "u1", Type: valuation.ActivityStudy, Hours: 1, Points: 100, Date: day(0)},
			{UserID: "u1", Type: valuation.ActivityReading, Hours: 2, Points: 150, Date: day(-3)},
			{UserID: "u1", Type: valuation.ActivityWork, Hours: 4, Points: 360, Date: day(-9)},
		},
		subscriptions: []tracking.Subscription{
			{UserID: "u1", Name: "Netflix", Cost: 199},
			{UserID: "u1", Name: "Spotify", Cost: 499},
		},
	}
}

func newInteractor(store *fakeTracking, advisor *fakeAdvisor) *Interactor {
	deps := Deps{
		Engine:        valuation.DefaultEngine(),
		Clock:         clock.Fixed{At: asOf.Add(15 * time.Hour)},
		Usage:         store,
		Distractions:  store,
		Focus:         store,
		Subscriptions: store,
		Log:           zerolog.Nop(),
	}
	if advisor != nil {
		deps.Advisor = advisor
	}
	return NewInteractor(deps).(*Interactor)
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDashboardAggregatesWeek(t *testing.T) {
	t.Parallel()
	uc := newInteractor(seeded(), nil)

	out, err := uc.Dashboard(context.Background(), dto.AsOfInput{UserID: "u1", AsOf: asOf})
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if !near(out.TodayHours, 2) || !near(out.TodayLoss, 405) {
		t.Fatalf("unexpected today: %v hours, %v loss", out.TodayHours, out.TodayLoss)
	}
	if !near(out.WeekHours, 11) || !near(out.WeekLoss, 1957.5) {
		t.Fatalf("unexpected week: %v hours, %v loss", out.WeekHours, out.WeekLoss)
	}
	if !near(out.WeekCorporateProfit, 1310) {
		t.Fatalf("expected corporate profit 1310, got %v", out.WeekCorporateProfit)
	}
	if out.TopApp != "TikTok" || !near(out.TopAppHours, 8) {
		t.Fatalf("unexpected top app: %s %v", out.TopApp, out.TopAppHours)
	}
	if len(out.WeeklyApps) != 2 || out.WeeklyApps[1].App != "Notes" || !near(out.WeeklyApps[1].Loss, 337.5) {
		t.Fatalf("unexpected weekly apps: %+v", out.WeeklyApps)
	}
	if !near(out.FocusTodayHours, 1) || out.FocusTodayPoints != 100 {
		t.Fatalf("unexpected focus today: %v/%d", out.FocusTodayHours, out.FocusTodayPoints)
	}
	if !near(out.FocusWeekHours, 3) || out.FocusWeekPoints != 250 {
		t.Fatalf("unexpected focus week: %v/%d", out.FocusWeekHours, out.FocusWeekPoints)
	}
	d := out.Distractions
	if d.Pickups != 100 || d.Notifications != 30 || d.DaysLogged != 3 {
		t.Fatalf("unexpected distraction totals: %+v", d)
	}
	if !near(d.DebtMinutes, 315) || !near(d.DebtValue, 984.375) {
		t.Fatalf("unexpected debt: %+v", d)
	}
	if d.LowPickupStreak != 1 {
		t.Fatalf("expected low pickup streak 1, got %d", d.LowPickupStreak)
	}
	if out.SubscriptionCount != 2 || !near(out.SubscriptionMonthly, 698) {
		t.Fatalf("unexpected subscriptions: %d %v", out.SubscriptionCount, out.SubscriptionMonthly)
	}
}

func TestDashboardDefaultsToClockDay(t *testing.T) {
	t.Parallel()
	uc := newInteractor(seeded(), nil)
	out, err := uc.Dashboard(context.Background(), dto.AsOfInput{UserID: "u1"})
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if !out.AsOf.Equal(asOf) {
		t.Fatalf("expected as-of %s, got %s", asOf, out.AsOf)
	}
}

func TestDashboardEmptyUser(t *testing.T) {
	t.Parallel()
	uc := newInteractor(&fakeTracking{}, nil)
	out, err := uc.Dashboard(context.Background(), dto.AsOfInput{UserID: "nobody", AsOf: asOf})
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if out.TopApp != "" || out.WeekLoss != 0 || out.Distractions.DebtValue != 0 {
		t.Fatalf("expected zero dashboard, got %+v", out)
	}
	if _, err := uc.Dashboard(context.Background(), dto.AsOfInput{}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestRecommendationsAppendsAdvisorItems(t *testing.T) {
	t.Parallel()
	advisor := &fakeAdvisor{out: advisordto.AdviseOutput{
		Items: []advisordto.AdviceItem{{
			Plugin: "reference", ID: "bedtime", Title: "Phone-free last hour",
			CurrentCost: 0, PotentialSaving: 787.5, Difficulty: "easy",
		}},
		Failures: map[string]string{"broken": "advisor plugin timeout"},
	}}
	uc := newInteractor(seeded(), advisor)

	out, err := uc.Recommendations(context.Background(), dto.AsOfInput{UserID: "u1", AsOf: asOf})
	if err != nil {
		t.Fatalf("recommendations: %v", err)
	}
	ids := make([]string, 0, len(out.Items))
	for _, item := range out.Items {
		ids = append(ids, item.ID)
	}
	want := []string{"switch-TikTok", "invest-learning", "reference:bedtime"}
	if len(ids) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, ids)
		}
	}
	switchItem := out.Items[0]
	if switchItem.Alternative != "YouTube (educational channels)" || switchItem.Difficulty != "hard" || switchItem.Source != "built-in" {
		t.Fatalf("unexpected switch item: %+v", switchItem)
	}
	if !near(switchItem.CurrentCost, 2700) || !near(switchItem.PotentialSaving, 1620) {
		t.Fatalf("unexpected switch amounts: %+v", switchItem)
	}
	if out.Items[2].Kind != "advisor" || out.Items[2].Source != "reference" || out.Items[2].Difficulty != "easy" {
		t.Fatalf("unexpected advisor item: %+v", out.Items[2])
	}
	if !near(out.TotalPotentialSaving, 5032.5) {
		t.Fatalf("expected total saving 5032.5, got %v", out.TotalPotentialSaving)
	}
	if len(out.AdvisorFailures) != 1 || out.AdvisorFailures[0] != "broken" {
		t.Fatalf("unexpected failures: %v", out.AdvisorFailures)
	}
	if len(out.Plans) != 3 || !near(out.Plans[2].MonthlySaving, 11250) {
		t.Fatalf("unexpected plans: %+v", out.Plans)
	}
	if !near(advisor.input.WeeklyHours, 11) || !near(advisor.input.ReferenceRate, 187.5) || len(advisor.input.WeeklyUsage) != 2 {
		t.Fatalf("unexpected advisor input: %+v", advisor.input)
	}
}

func TestRecommendationsSurviveAdvisorError(t *testing.T) {
	t.Parallel()
	uc := newInteractor(seeded(), &fakeAdvisor{err: errors.New("plugin dir unreadable")})
	out, err := uc.Recommendations(context.Background(), dto.AsOfInput{UserID: "u1", AsOf: asOf})
	if err != nil {
		t.Fatalf("recommendations: %v", err)
	}
	if len(out.Items) != 2 {
		t.Fatalf("expected built-in items only, got %+v", out.Items)
	}
}

func TestRecommendationsWithoutUsage(t *testing.T) {
	t.Parallel()
	uc := newInteractor(&fakeTracking{}, nil)
	out, err := uc.Recommendations(context.Background(), dto.AsOfInput{UserID: "u1", AsOf: asOf})
	if err != nil {
		t.Fatalf("recommendations: %v", err)
	}
	if len(out.Items) != 0 || out.TotalPotentialSaving != 0 {
		t.Fatalf("expected no recommendations, got %+v", out.Items)
	}
	if len(out.Plans) != 3 {
		t.Fatalf("cut-back plans are always offered, got %d", len(out.Plans))
	}
}
