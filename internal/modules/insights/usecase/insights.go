package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	advisordto "paymind/internal/modules/advisor/dto"
	advisorin "paymind/internal/modules/advisor/port/in"
	"paymind/internal/modules/insights/domain"
	"paymind/internal/modules/insights/dto"
	insightsin "paymind/internal/modules/insights/port/in"
	insightsout "paymind/internal/modules/insights/port/out"
	valuation "paymind/internal/modules/valuation/domain"
	"paymind/internal/platform/calendar"
	"paymind/internal/platform/clock"
	apperrors "paymind/internal/platform/errors"

	"github.com/rs/zerolog"
)

const (
	weekDays      = 7
	builtInSource = "built-in"
)

type Interactor struct {
	engine        valuation.Engine
	clock         clock.Clock
	usage         insightsout.UsageReader
	distractions  insightsout.DistractionReader
	focus         insightsout.FocusReader
	subscriptions insightsout.SubscriptionReader
	advisor       advisorin.Usecase
	log           zerolog.Logger
}

// Deps wires the readers. Advisor may be nil, in which case only built-in recommendations are produced.
type Deps struct {
	Engine        valuation.Engine
	Clock         clock.Clock
	Usage         insightsout.UsageReader
	Distractions  insightsout.DistractionReader
	Focus         insightsout.FocusReader
	Subscriptions insightsout.SubscriptionReader
	Advisor       advisorin.Usecase
	Log           zerolog.Logger
}

func NewInteractor(deps Deps) insightsin.Usecase {
	clk := deps.Clock
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &Interactor{
		engine:        deps.Engine,
		clock:         clk,
		usage:         deps.Usage,
		distractions:  deps.Distractions,
		focus:         deps.Focus,
		subscriptions: deps.Subscriptions,
		advisor:       deps.Advisor,
		log:           deps.Log.With().Str("component", "insights").Logger(),
	}
}

func (i *Interactor) Dashboard(ctx context.Context, input dto.AsOfInput) (dto.DashboardOutput, error) {
	asOf, err := i.resolve(input)
	if err != nil {
		return dto.DashboardOutput{}, err
	}
	today := calendar.SingleDay(asOf)
	week := calendar.LastDays(asOf, weekDays)

	entries, err := i.usage.ListUsage(ctx, input.UserID, week)
	if err != nil {
		return dto.DashboardOutput{}, fmt.Errorf("list usage: %w", err)
	}
	todayTotals, err := domain.PeriodTotals(entries, today, i.engine)
	if err != nil {
		return dto.DashboardOutput{}, err
	}
	weekTotals, err := domain.PeriodTotals(entries, week, i.engine)
	if err != nil {
		return dto.DashboardOutput{}, err
	}
	profit, err := domain.CorporateProfitFor(entries, week, i.engine)
	if err != nil {
		return dto.DashboardOutput{}, err
	}
	apps, err := i.appItems(domain.AggregateByApp(entries))
	if err != nil {
		return dto.DashboardOutput{}, err
	}

	out := dto.DashboardOutput{
		AsOf:                asOf,
		TodayHours:          todayTotals.Hours,
		TodayLoss:           todayTotals.Loss,
		WeekHours:           weekTotals.Hours,
		WeekLoss:            weekTotals.Loss,
		WeekCorporateProfit: profit,
		WeeklyApps:          apps,
	}
	if len(apps) > 0 {
		out.TopApp = apps[0].App
		out.TopAppHours = apps[0].Hours
	}

	activities, err := i.focus.ListFocus(ctx, input.UserID, week)
	if err != nil {
		return dto.DashboardOutput{}, fmt.Errorf("list focus: %w", err)
	}
	for _, a := range activities {
		out.FocusWeekHours += a.Hours
		out.FocusWeekPoints += a.Points
		if today.Contains(a.Date) {
			out.FocusTodayHours += a.Hours
			out.FocusTodayPoints += a.Points
		}
	}

	logs, err := i.distractions.ListDistractions(ctx, input.UserID, week)
	if err != nil {
		return dto.DashboardOutput{}, fmt.Errorf("list distractions: %w", err)
	}
	for _, l := range logs {
		out.Distractions.Pickups += l.PickupCount
		out.Distractions.Notifications += l.NotificationCount
	}
	debt, err := domain.DistractionDebt(out.Distractions.Pickups, out.Distractions.Notifications, i.engine.ReferenceHourlyRate())
	if err != nil {
		return dto.DashboardOutput{}, err
	}
	out.Distractions.DebtMinutes = debt.Minutes
	out.Distractions.DebtValue = debt.Value
	out.Distractions.LowPickupStreak = domain.DistractionStreak(logs)
	out.Distractions.DaysLogged = len(logs)

	subs, err := i.subscriptions.ListSubscriptions(ctx, input.UserID)
	if err != nil {
		return dto.DashboardOutput{}, fmt.Errorf("list subscriptions: %w", err)
	}
	out.SubscriptionCount = len(subs)
	for _, s := range subs {
		out.SubscriptionMonthly += s.Cost
	}
	return out, nil
}

// Recommendations runs the weekly decision table, then appends advisor plugin suggestions.
func (i *Interactor) Recommendations(ctx context.Context, input dto.AsOfInput) (dto.RecommendationsOutput, error) {
	asOf, err := i.resolve(input)
	if err != nil {
		return dto.RecommendationsOutput{}, err
	}
	week := calendar.LastDays(asOf, weekDays)
	entries, err := i.usage.ListUsage(ctx, input.UserID, week)
	if err != nil {
		return dto.RecommendationsOutput{}, fmt.Errorf("list usage: %w", err)
	}
	totals, err := domain.PeriodTotals(entries, week, i.engine)
	if err != nil {
		return dto.RecommendationsOutput{}, err
	}
	usage := domain.AggregateByApp(entries)
	recs := domain.GenerateRecommendations(usage, totals.Loss, i.engine)

	out := dto.RecommendationsOutput{AsOf: asOf, WeekLoss: totals.Loss, AdvisorFailures: []string{}}
	if i.advisor != nil {
		advice, failures := i.consultAdvisors(ctx, input.UserID, asOf, usage, totals)
		recs = append(recs, advice...)
		out.AdvisorFailures = failures
	}
	out.Items = make([]dto.RecommendationItem, 0, len(recs))
	for _, r := range recs {
		out.Items = append(out.Items, toRecommendationItem(r))
	}
	out.TotalPotentialSaving = domain.TotalPotentialSaving(recs)
	for _, p := range domain.CutBackPlans(i.engine.ReferenceHourlyRate()) {
		out.Plans = append(out.Plans, dto.CutBackPlanItem{
			ID:              p.ID,
			Title:           p.Title,
			Description:     p.Description,
			DailyTimeSaving: p.DailyTimeSaving,
			MonthlySaving:   p.MonthlySaving,
			Steps:           append([]string(nil), p.Steps...),
		})
	}
	return out, nil
}

// consultAdvisors never fails the request; an advisor error only removes that advisor's items.
func (i *Interactor) consultAdvisors(ctx context.Context, userID string, asOf time.Time, usage []domain.AppUsage, totals domain.Totals) ([]domain.Recommendation, []string) {
	apps := make([]advisordto.AppHours, 0, len(usage))
	for _, u := range usage {
		apps = append(apps, advisordto.AppHours{App: u.App, Hours: u.Hours})
	}
	advice, err := i.advisor.Advise(ctx, advisordto.AdviseInput{
		UserID:        userID,
		AsOf:          asOf,
		WeeklyUsage:   apps,
		WeeklyHours:   totals.Hours,
		WeeklyLoss:    totals.Loss,
		ReferenceRate: i.engine.ReferenceHourlyRate(),
	})
	if err != nil {
		i.log.Warn().Err(err).Msg("advisors unavailable")
		return nil, []string{}
	}
	failures := make([]string, 0, len(advice.Failures))
	for name := range advice.Failures {
		failures = append(failures, name)
	}
	sort.Strings(failures)

	recs := make([]domain.Recommendation, 0, len(advice.Items))
	for _, item := range advice.Items {
		recs = append(recs, domain.Recommendation{
			ID:              item.Plugin + ":" + item.ID,
			Kind:            domain.KindAdvisor,
			Title:           item.Title,
			Description:     item.Description,
			App:             item.App,
			CurrentCost:     item.CurrentCost,
			PotentialSaving: item.PotentialSaving,
			Timeframe:       "weekly",
			Difficulty:      difficultyOf(item.Difficulty),
			Source:          item.Plugin,
		})
	}
	return recs, failures
}

func (i *Interactor) appItems(usage []domain.AppUsage) ([]dto.AppUsageItem, error) {
	out := make([]dto.AppUsageItem, 0, len(usage))
	for _, u := range usage {
		loss, err := i.engine.TimeLoss(u.App, u.Hours)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.AppUsageItem{App: u.App, Hours: u.Hours, Loss: loss})
	}
	return out, nil
}

func (i *Interactor) resolve(input dto.AsOfInput) (time.Time, error) {
	if strings.TrimSpace(input.UserID) == "" {
		return time.Time{}, fmt.Errorf("%w: user id is required", apperrors.ErrInvalidInput)
	}
	if input.AsOf.IsZero() {
		return calendar.Day(i.clock.Now()), nil
	}
	return calendar.Day(input.AsOf), nil
}

func difficultyOf(value string) domain.Difficulty {
	switch domain.Difficulty(value) {
	case domain.DifficultyEasy, domain.DifficultyHard:
		return domain.Difficulty(value)
	default:
		return domain.DifficultyMedium
	}
}

func toRecommendationItem(r domain.Recommendation) dto.RecommendationItem {
	source := r.Source
	if source == "" {
		source = builtInSource
	}
	return dto.RecommendationItem{
		ID:              r.ID,
		Kind:            string(r.Kind),
		Title:           r.Title,
		Description:     r.Description,
		App:             r.App,
		Alternative:     r.Alternative,
		CurrentCost:     r.CurrentCost,
		PotentialSaving: r.PotentialSaving,
		Timeframe:       r.Timeframe,
		Difficulty:      string(r.Difficulty),
		Source:          source,
	}
}
