package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	insightsdto "paymind/internal/modules/insights/dto"
	reportadapter "paymind/internal/modules/report/adapter/out"
	"paymind/internal/modules/report/dto"
	reportport "paymind/internal/modules/report/port/out"
	tracking "paymind/internal/modules/tracking/domain"
	valuation "paymind/internal/modules/valuation/domain"
	walletdto "paymind/internal/modules/wallet/dto"
	"paymind/internal/platform/calendar"
	"paymind/internal/platform/clock"
	apperrors "paymind/internal/platform/errors"
	"paymind/internal/platform/money"
)

type fakeTracking struct {
	usage         []tracking.UsageEntry
	distractions  []tracking.DistractionLog
	focus         []tracking.FocusActivity
	subscriptions []tracking.Subscription
	ranges        []calendar.Range
}

func (f *fakeTracking) ListUsage(_ context.Context, _ string, r calendar.Range) ([]tracking.UsageEntry, error) {
	f.ranges = append(f.ranges, r)
	return f.usage, nil
}

func (f *fakeTracking) ListDistractions(context.Context, string, calendar.Range) ([]tracking.DistractionLog, error) {
	return f.distractions, nil
}

func (f *fakeTracking) ListFocus(context.Context, string, calendar.Range) ([]tracking.FocusActivity, error) {
	return f.focus, nil
}

func (f *fakeTracking) ListSubscriptions(context.Context, string) ([]tracking.Subscription, error) {
	return f.subscriptions, nil
}

type fakeWallet struct {
	wallet walletdto.WalletOutput
	goals  walletdto.GoalListOutput
}

func (f *fakeWallet) GetWallet(context.Context, string) (walletdto.WalletOutput, error) {
	return f.wallet, nil
}

func (f *fakeWallet) Accrue(context.Context, walletdto.AccrueInput) (walletdto.AccrueOutput, error) {
	return walletdto.AccrueOutput{}, errors.New("not used")
}

func (f *fakeWallet) AddGoal(context.Context, walletdto.AddGoalInput) (walletdto.GoalItem, error) {
	return walletdto.GoalItem{}, errors.New("not used")
}

func (f *fakeWallet) ListGoals(context.Context, string) (walletdto.GoalListOutput, error) {
	return f.goals, nil
}

func (f *fakeWallet) DeleteGoal(context.Context, walletdto.DeleteGoalInput) error {
	return errors.New("not used")
}

func (f *fakeWallet) AllocateToGoal(context.Context, walletdto.AllocateInput) (walletdto.AllocateOutput, error) {
	return walletdto.AllocateOutput{}, errors.New("not used")
}

type fakeInsights struct{}

func (fakeInsights) Dashboard(context.Context, insightsdto.AsOfInput) (insightsdto.DashboardOutput, error) {
	return insightsdto.DashboardOutput{}, nil
}

func (fakeInsights) Recommendations(context.Context, insightsdto.AsOfInput) (insightsdto.RecommendationsOutput, error) {
	return insightsdto.RecommendationsOutput{Items: []insightsdto.RecommendationItem{
		{Title: "Invest in Learning", PotentialSaving: 2625, Source: "built-in"},
	}}, nil
}

var asOf = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func seeded() *fakeTracking {
	f := &fakeTracking{}
	apps := []string{"TikTok", "Instagram", "YouTube", "Facebook", "Twitter", "Reddit"}
	for n, app := range apps {
		hours := float64(len(apps) - n)
		f.usage = append(f.usage, tracking.UsageEntry{AppName: app, Hours: hours, EstValueLost: hours * 100, Date: asOf})
	}
	f.usage = append(f.usage, tracking.UsageEntry{AppName: "Reddit", Hours: 0.5, EstValueLost: 50, Date: asOf.AddDate(0, 0, -40)})
	for n := 0; n < 12; n++ {
		f.focus = append(f.focus, tracking.FocusActivity{Type: valuation.ActivityReading, Hours: 1, Points: 70, Date: asOf.AddDate(0, 0, -n)})
	}
	f.distractions = []tracking.DistractionLog{
		{Date: asOf, PickupCount: 40, NotificationCount: 10},
		{Date: asOf.AddDate(0, 0, -1), PickupCount: 60, NotificationCount: 30},
	}
	for n := 0; n < 6; n++ {
		f.subscriptions = append(f.subscriptions, tracking.Subscription{Name: fmt.Sprintf("Service %d", n), Cost: 100, UsageHours: float64(n)})
	}
	return f
}

func newInteractor(t *testing.T, store *fakeTracking) *Interactor {
	t.Helper()
	wallet := &fakeWallet{
		wallet: walletdto.WalletOutput{MoneySaved: 1200, TotalPoints: 840, StreakDays: 8, Achievements: []walletdto.AchievementItem{
			{Title: "First Steps", Unlocked: true}, {Title: "Week Warrior", Unlocked: true}, {Title: "Time Master"},
		}},
		goals: walletdto.GoalListOutput{Goals: []walletdto.GoalItem{{Title: "Laptop", TargetAmount: 300, CurrentSaved: 50, Progress: 100.0 / 6}}},
	}
	formatter := money.Default()
	return NewInteractor(Deps{
		Engine:        valuation.DefaultEngine(),
		Clock:         clock.Fixed{At: asOf.Add(20 * time.Hour)},
		Money:         formatter,
		Usage:         store,
		Distractions:  store,
		Focus:         store,
		Subscriptions: store,
		Wallet:        wallet,
		Insights:      fakeInsights{},
		Renderers: []reportport.Renderer{
			reportadapter.NewJSONRenderer(),
			reportadapter.NewMarkdownRenderer(formatter),
			reportadapter.NewPDFRenderer(formatter),
		},
		Writer:    reportadapter.NewFileWriter(),
		Inspector: reportadapter.NewPDFInspector(),
		ReportDir: t.TempDir(),
		Log:       zerolog.Nop(),
	}).(*Interactor)
}

func TestBuildCollectsHistory(t *testing.T) {
	t.Parallel()
	store := seeded()
	uc := newInteractor(t, store)

	out, err := uc.Build(context.Background(), dto.BuildInput{UserID: "u1"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	r := out.Report
	if !r.AsOf.Equal(asOf) {
		t.Fatalf("expected as-of from clock, got %s", r.AsOf)
	}
	if !store.ranges[0].Contains(asOf.AddDate(-5, 0, 0)) {
		t.Fatalf("expected all-time range, got %s", store.ranges[0])
	}
	if r.Summary.ScreenHours != 21.5 || r.Summary.ValueLost != 2150 || r.Summary.Apps != 6 || r.Summary.Entries != 7 {
		t.Fatalf("unexpected summary: %+v", r.Summary)
	}
	if len(r.TopApps) != 5 || r.TopApps[0].App != "TikTok" || r.TopApps[4].App != "Twitter" {
		t.Fatalf("unexpected top apps: %+v", r.TopApps)
	}
	if len(r.Focus) != 10 || r.MoreFocus != 2 || r.Summary.FocusHours != 12 || r.Summary.FocusPoints != 840 {
		t.Fatalf("unexpected focus: %d shown, %d more, %+v", len(r.Focus), r.MoreFocus, r.Summary)
	}
	if r.Distractions.AvgDailyPickups != 50 || r.Distractions.AvgDailyNotifications != 20 {
		t.Fatalf("unexpected distractions: %+v", r.Distractions)
	}
	if len(r.Subscriptions) != 6 || r.Subscriptions[0].CostPerHour != 100 || r.Subscriptions[4].CostPerHour != 25 {
		t.Fatalf("unexpected subscriptions: %+v", r.Subscriptions)
	}
	if r.Summary.SubscriptionMonthly != 600 {
		t.Fatalf("expected monthly 600, got %v", r.Summary.SubscriptionMonthly)
	}
	if len(r.Wallet.Unlocked) != 2 || len(r.Goals) != 1 || len(r.Recommendations) != 1 {
		t.Fatalf("unexpected wallet/goals/recommendations: %+v %+v %+v", r.Wallet, r.Goals, r.Recommendations)
	}
	want := []string{
		"Your attention usage appears reasonable. Continue monitoring for awareness.",
		"Review your subscriptions - you might have unused services costing you money.",
		"Excellent focus activity levels! Keep up these productive habits.",
		"Great tracking consistency! Your streak shows commitment to digital wellness.",
	}
	for n := range want {
		if r.Tips[n] != want[n] {
			t.Fatalf("tip %d: expected %q, got %q", n, want[n], r.Tips[n])
		}
	}
	if len(r.Insights) != 4 {
		t.Fatalf("expected four insights, got %v", r.Insights)
	}
}

func TestBuildRequiresUser(t *testing.T) {
	t.Parallel()
	uc := newInteractor(t, seeded())
	if _, err := uc.Build(context.Background(), dto.BuildInput{}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	t.Parallel()
	uc := newInteractor(t, seeded())
	if _, err := uc.Render(context.Background(), dto.RenderInput{UserID: "u1", Format: "docx"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	out, err := uc.Render(context.Background(), dto.RenderInput{UserID: "u1", AsOf: asOf, Format: "md"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out.FileName != "paymind-report-2025-03-10.md" || out.ContentType != "text/markdown; charset=utf-8" || len(out.Data) == 0 {
		t.Fatalf("unexpected render output: %s %s %d", out.FileName, out.ContentType, len(out.Data))
	}
}

func TestExportWritesPDFIntoReportDir(t *testing.T) {
	t.Parallel()
	uc := newInteractor(t, seeded())
	out, err := uc.Export(context.Background(), dto.ExportInput{UserID: "u1", AsOf: asOf, Format: "pdf"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if filepath.Base(out.Path) != "paymind-report-2025-03-10.pdf" || filepath.Dir(out.Path) != uc.reportDir {
		t.Fatalf("unexpected path %s", out.Path)
	}
	if out.Pages < 1 {
		t.Fatalf("expected at least one page, got %d", out.Pages)
	}
	info, err := os.Stat(out.Path)
	if err != nil {
		t.Fatalf("stat report: %v", err)
	}
	if info.Size() != int64(out.Bytes) {
		t.Fatalf("expected %d bytes on disk, got %d", out.Bytes, info.Size())
	}
}

func TestExportHonoursExplicitPath(t *testing.T) {
	t.Parallel()
	uc := newInteractor(t, seeded())
	target := filepath.Join(t.TempDir(), "custom", "weekly.json")
	out, err := uc.Export(context.Background(), dto.ExportInput{UserID: "u1", AsOf: asOf, Format: "json", Path: target})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if out.Path != target || out.Pages != 0 {
		t.Fatalf("unexpected export: %+v", out)
	}
}
