package out

import (
	"context"

	tracking "paymind/internal/modules/tracking/domain"
	"paymind/internal/platform/calendar"
)

// The tracking SQL store satisfies every reader below.

type UsageReader interface {
	ListUsage(ctx context.Context, userID string, r calendar.Range) ([]tracking.UsageEntry, error)
}

type DistractionReader interface {
	ListDistractions(ctx context.Context, userID string, r calendar.Range) ([]tracking.DistractionLog, error)
}

type FocusReader interface {
	ListFocus(ctx context.Context, userID string, r calendar.Range) ([]tracking.FocusActivity, error)
}

type SubscriptionReader interface {
	ListSubscriptions(ctx context.Context, userID string) ([]tracking.Subscription, error)
}
