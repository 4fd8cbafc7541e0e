package in

import (
	"context"
	"time"

	"paymind/internal/modules/tracking/dto"
	trackingin "paymind/internal/modules/tracking/port/in"
)

type CLIHandler struct {
	usecase trackingin.Usecase
}

func NewCLIHandler(usecase trackingin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) SaveScreenTime(ctx context.Context, userID string, date time.Time, apps []dto.AppHours) (dto.SaveScreenTimeOutput, error) {
	return h.usecase.SaveScreenTime(ctx, dto.SaveScreenTimeInput{UserID: userID, Date: date, Apps: apps})
}

func (h CLIHandler) ListUsage(ctx context.Context, userID string, from, to time.Time) (dto.UsageListOutput, error) {
	return h.usecase.ListUsage(ctx, dto.RangeInput{UserID: userID, From: from, To: to})
}

func (h CLIHandler) LogDistractions(ctx context.Context, userID string, date time.Time, pickups, notifications int) (dto.DistractionItem, error) {
	return h.usecase.LogDistractions(ctx, dto.LogDistractionsInput{UserID: userID, Date: date, PickupCount: pickups, NotificationCount: notifications})
}

func (h CLIHandler) ListDistractions(ctx context.Context, userID string, from, to time.Time) (dto.DistractionListOutput, error) {
	return h.usecase.ListDistractions(ctx, dto.RangeInput{UserID: userID, From: from, To: to})
}

func (h CLIHandler) LogFocus(ctx context.Context, userID string, date time.Time, activityType string, hours float64) (dto.LogFocusOutput, error) {
	return h.usecase.LogFocus(ctx, dto.LogFocusInput{UserID: userID, Date: date, Type: activityType, Hours: hours})
}

func (h CLIHandler) ListFocus(ctx context.Context, userID string, from, to time.Time) (dto.FocusListOutput, error) {
	return h.usecase.ListFocus(ctx, dto.RangeInput{UserID: userID, From: from, To: to})
}

func (h CLIHandler) AddSubscription(ctx context.Context, userID, name string, cost, usageHours float64) (dto.SubscriptionItem, error) {
	return h.usecase.AddSubscription(ctx, dto.AddSubscriptionInput{UserID: userID, Name: name, Cost: cost, UsageHours: usageHours})
}

func (h CLIHandler) ListSubscriptions(ctx context.Context, userID string) (dto.SubscriptionListOutput, error) {
	return h.usecase.ListSubscriptions(ctx, userID)
}

func (h CLIHandler) DeleteSubscription(ctx context.Context, userID, id string) error {
	return h.usecase.DeleteSubscription(ctx, dto.DeleteInput{UserID: userID, ID: id})
}
