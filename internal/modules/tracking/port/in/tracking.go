package in

import (
	"context"

	"paymind/internal/modules/tracking/dto"
)

type Usecase interface {
	SaveScreenTime(ctx context.Context, input dto.SaveScreenTimeInput) (dto.SaveScreenTimeOutput, error)
	ListUsage(ctx context.Context, input dto.RangeInput) (dto.UsageListOutput, error)
	LogDistractions(ctx context.Context, input dto.LogDistractionsInput) (dto.DistractionItem, error)
	ListDistractions(ctx context.Context, input dto.RangeInput) (dto.DistractionListOutput, error)
	LogFocus(ctx context.Context, input dto.LogFocusInput) (dto.LogFocusOutput, error)
	ListFocus(ctx context.Context, input dto.RangeInput) (dto.FocusListOutput, error)
	AddSubscription(ctx context.Context, input dto.AddSubscriptionInput) (dto.SubscriptionItem, error)
	ListSubscriptions(ctx context.Context, userID string) (dto.SubscriptionListOutput, error)
	DeleteSubscription(ctx context.Context, input dto.DeleteInput) error
}
