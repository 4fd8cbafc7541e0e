package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"paymind/internal/modules/tracking/domain"
	"paymind/internal/modules/tracking/dto"
	trackingin "paymind/internal/modules/tracking/port/in"
	trackingout "paymind/internal/modules/tracking/port/out"
	"paymind/internal/modules/tracking/service"
	walletdto "paymind/internal/modules/wallet/dto"
	walletin "paymind/internal/modules/wallet/port/in"
	"paymind/internal/platform/calendar"
	apperrors "paymind/internal/platform/errors"
	"paymind/internal/platform/tx"
)

type Interactor struct {
	svc           *service.TrackingService
	usage         trackingout.UsageStore
	distractions  trackingout.DistractionStore
	focus         trackingout.FocusStore
	subscriptions trackingout.SubscriptionStore
	wallet        walletin.Usecase
	txm           tx.Manager
	log           zerolog.Logger
}

type Deps struct {
	Service       *service.TrackingService
	Usage         trackingout.UsageStore
	Distractions  trackingout.DistractionStore
	Focus         trackingout.FocusStore
	Subscriptions trackingout.SubscriptionStore
	Wallet        walletin.Usecase
	Tx            tx.Manager
	Log           zerolog.Logger
}

func NewInteractor(deps Deps) trackingin.Usecase {
	txm := deps.Tx
	if txm == nil {
		txm = tx.NoopManager{}
	}
	return &Interactor{
		svc:           deps.Service,
		usage:         deps.Usage,
		distractions:  deps.Distractions,
		focus:         deps.Focus,
		subscriptions: deps.Subscriptions,
		wallet:        deps.Wallet,
		txm:           txm,
		log:           deps.Log.With().Str("component", "tracking").Logger(),
	}
}

// SaveScreenTime replaces the whole day for the user with the given app hours.
func (i *Interactor) SaveScreenTime(ctx context.Context, input dto.SaveScreenTimeInput) (dto.SaveScreenTimeOutput, error) {
	apps := make([]service.AppHours, 0, len(input.Apps))
	for _, a := range input.Apps {
		apps = append(apps, service.AppHours{App: a.App, Hours: a.Hours})
	}
	entries, dropped, err := i.svc.UsageDay(input.UserID, input.Date, apps)
	if err != nil {
		return dto.SaveScreenTimeOutput{}, err
	}
	day := entries[0].Date
	if err := i.txm.Within(ctx, func(ctx context.Context) error {
		return i.usage.ReplaceDay(ctx, input.UserID, day, entries)
	}); err != nil {
		return dto.SaveScreenTimeOutput{}, err
	}

	out := dto.SaveScreenTimeOutput{Date: day, Dropped: dropped}
	for _, e := range entries {
		out.Entries = append(out.Entries, toUsageItem(e))
		out.TotalLoss += e.EstValueLost
	}
	i.log.Info().Str("user", input.UserID).Str("date", calendar.Format(day)).Int("apps", len(entries)).
		Float64("loss", out.TotalLoss).Msg("screen time saved")
	return out, nil
}

func (i *Interactor) ListUsage(ctx context.Context, input dto.RangeInput) (dto.UsageListOutput, error) {
	r, err := i.rangeFor(input)
	if err != nil {
		return dto.UsageListOutput{}, err
	}
	entries, err := i.usage.ListUsage(ctx, input.UserID, r)
	if err != nil {
		return dto.UsageListOutput{}, err
	}
	out := dto.UsageListOutput{Entries: make([]dto.UsageItem, 0, len(entries))}
	for _, e := range entries {
		out.Entries = append(out.Entries, toUsageItem(e))
		out.TotalHours += e.Hours
		out.TotalLoss += e.EstValueLost
	}
	return out, nil
}

func (i *Interactor) LogDistractions(ctx context.Context, input dto.LogDistractionsInput) (dto.DistractionItem, error) {
	log, err := i.svc.Distraction(input.UserID, input.Date, input.PickupCount, input.NotificationCount)
	if err != nil {
		return dto.DistractionItem{}, err
	}
	saved, err := i.distractions.UpsertDistraction(ctx, log)
	if err != nil {
		return dto.DistractionItem{}, err
	}
	i.log.Info().Str("user", input.UserID).Str("date", calendar.Format(saved.Date)).
		Int("pickups", saved.PickupCount).Int("notifications", saved.NotificationCount).Msg("distractions logged")
	return toDistractionItem(saved), nil
}

func (i *Interactor) ListDistractions(ctx context.Context, input dto.RangeInput) (dto.DistractionListOutput, error) {
	r, err := i.rangeFor(input)
	if err != nil {
		return dto.DistractionListOutput{}, err
	}
	logs, err := i.distractions.ListDistractions(ctx, input.UserID, r)
	if err != nil {
		return dto.DistractionListOutput{}, err
	}
	out := dto.DistractionListOutput{Logs: make([]dto.DistractionItem, 0, len(logs))}
	for _, l := range logs {
		out.Logs = append(out.Logs, toDistractionItem(l))
	}
	return out, nil
}

// LogFocus upserts the activity for (user, day, type) and hands the row's totals to the wallet,
// which credits only what exceeds the most that row ever paid. Lowering a logged value never
// debits the wallet and raising it back does not pay twice.
func (i *Interactor) LogFocus(ctx context.Context, input dto.LogFocusInput) (dto.LogFocusOutput, error) {
	activity, err := i.svc.Focus(input.UserID, input.Date, input.Type, input.Hours)
	if err != nil {
		return dto.LogFocusOutput{}, err
	}
	activity, err = tx.Do(ctx, i.txm, func(ctx context.Context) (domain.FocusActivity, error) {
		return i.focus.UpsertFocus(ctx, activity)
	})
	if err != nil {
		return dto.LogFocusOutput{}, err
	}

	out := dto.LogFocusOutput{Activity: toFocusItem(activity)}
	if i.wallet != nil {
		accrued, err := i.wallet.Accrue(ctx, walletdto.AccrueInput{
			UserID: activity.UserID,
			Key:    focusCreditKey(activity),
			Hours:  activity.Hours,
			Points: activity.Points,
			AsOf:   activity.Date,
		})
		if err != nil {
			return dto.LogFocusOutput{}, fmt.Errorf("accrue wallet: %w", err)
		}
		out.AccruedHours = accrued.Hours
		out.AccruedPoints = accrued.Points
		out.AccruedMoney = accrued.Money
		out.WalletBalance = accrued.Wallet.MoneySaved
		out.WalletStreak = accrued.Wallet.StreakDays
	}
	i.log.Info().Str("user", activity.UserID).Str("type", string(activity.Type)).Float64("hours", activity.Hours).
		Int("points", activity.Points).Float64("accrued_hours", out.AccruedHours).Msg("focus logged")
	return out, nil
}

// focusCreditKey names the wallet credit mark of one (day, type) focus row.
func focusCreditKey(a domain.FocusActivity) string {
	return "focus:" + calendar.Format(a.Date) + ":" + string(a.Type)
}

func (i *Interactor) ListFocus(ctx context.Context, input dto.RangeInput) (dto.FocusListOutput, error) {
	r, err := i.rangeFor(input)
	if err != nil {
		return dto.FocusListOutput{}, err
	}
	activities, err := i.focus.ListFocus(ctx, input.UserID, r)
	if err != nil {
		return dto.FocusListOutput{}, err
	}
	out := dto.FocusListOutput{Activities: make([]dto.FocusItem, 0, len(activities))}
	for _, a := range activities {
		out.Activities = append(out.Activities, toFocusItem(a))
		out.TotalHours += a.Hours
		out.TotalPoints += a.Points
	}
	return out, nil
}

func (i *Interactor) AddSubscription(ctx context.Context, input dto.AddSubscriptionInput) (dto.SubscriptionItem, error) {
	sub, err := i.svc.Subscription(input.UserID, input.Name, input.Cost, input.UsageHours)
	if err != nil {
		return dto.SubscriptionItem{}, err
	}
	if err := i.subscriptions.AddSubscription(ctx, sub); err != nil {
		return dto.SubscriptionItem{}, err
	}
	i.log.Info().Str("user", input.UserID).Str("subscription", sub.Name).Float64("cost", sub.Cost).Msg("subscription added")
	return i.toSubscriptionItem(sub)
}

func (i *Interactor) ListSubscriptions(ctx context.Context, userID string) (dto.SubscriptionListOutput, error) {
	if strings.TrimSpace(userID) == "" {
		return dto.SubscriptionListOutput{}, fmt.Errorf("%w: user id is required", apperrors.ErrInvalidInput)
	}
	subs, err := i.subscriptions.ListSubscriptions(ctx, userID)
	if err != nil {
		return dto.SubscriptionListOutput{}, err
	}
	out := dto.SubscriptionListOutput{Subscriptions: make([]dto.SubscriptionItem, 0, len(subs))}
	for _, s := range subs {
		item, err := i.toSubscriptionItem(s)
		if err != nil {
			return dto.SubscriptionListOutput{}, err
		}
		out.Subscriptions = append(out.Subscriptions, item)
		out.TotalMonthly += s.Cost
	}
	return out, nil
}

func (i *Interactor) DeleteSubscription(ctx context.Context, input dto.DeleteInput) error {
	if strings.TrimSpace(input.UserID) == "" || strings.TrimSpace(input.ID) == "" {
		return fmt.Errorf("%w: user id and subscription id are required", apperrors.ErrInvalidInput)
	}
	if err := i.subscriptions.DeleteSubscription(ctx, input.UserID, input.ID); err != nil {
		return err
	}
	i.log.Info().Str("user", input.UserID).Str("subscription", input.ID).Msg("subscription deleted")
	return nil
}

func (i *Interactor) rangeFor(input dto.RangeInput) (calendar.Range, error) {
	if strings.TrimSpace(input.UserID) == "" {
		return calendar.Range{}, fmt.Errorf("%w: user id is required", apperrors.ErrInvalidInput)
	}
	return i.svc.Range(input.From, input.To)
}

func (i *Interactor) toSubscriptionItem(s domain.Subscription) (dto.SubscriptionItem, error) {
	roi, err := i.svc.Engine().SubscriptionROI(s.Cost, s.UsageHours)
	if err != nil {
		return dto.SubscriptionItem{}, err
	}
	return dto.SubscriptionItem{
		ID:           s.ID,
		Name:         s.Name,
		Cost:         s.Cost,
		UsageHours:   s.UsageHours,
		CostPerHour:  roi.CostPerHour,
		IsWorthwhile: roi.IsWorthwhile,
		Advice:       roi.Advice,
	}, nil
}

func toUsageItem(e domain.UsageEntry) dto.UsageItem {
	return dto.UsageItem{ID: e.ID, App: e.AppName, Hours: e.Hours, Date: e.Date, EstValueLost: e.EstValueLost}
}

func toDistractionItem(l domain.DistractionLog) dto.DistractionItem {
	return dto.DistractionItem{ID: l.ID, Date: l.Date, PickupCount: l.PickupCount, NotificationCount: l.NotificationCount}
}

func toFocusItem(a domain.FocusActivity) dto.FocusItem {
	return dto.FocusItem{ID: a.ID, Type: string(a.Type), Hours: a.Hours, Points: a.Points, Date: a.Date}
}
