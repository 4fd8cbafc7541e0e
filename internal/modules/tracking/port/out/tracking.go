package out

import (
	"context"
	"time"

	"paymind/internal/modules/tracking/domain"
	"paymind/internal/platform/calendar"
)

type UsageStore interface {
	// ReplaceDay deletes every entry of (user, day) and inserts entries in their place.
	ReplaceDay(ctx context.Context, userID string, day time.Time, entries []domain.UsageEntry) error
	ListUsage(ctx context.Context, userID string, r calendar.Range) ([]domain.UsageEntry, error)
}

type DistractionStore interface {
	UpsertDistraction(ctx context.Context, log domain.DistractionLog) (domain.DistractionLog, error)
	// ListDistractions returns logs most recent first.
	ListDistractions(ctx context.Context, userID string, r calendar.Range) ([]domain.DistractionLog, error)
}

type FocusStore interface {
	// FindFocus returns apperrors.ErrNotFound when no row exists for (user, day, type).
	FindFocus(ctx context.Context, userID string, day time.Time, activityType string) (domain.FocusActivity, error)
	UpsertFocus(ctx context.Context, activity domain.FocusActivity) (domain.FocusActivity, error)
	// ListFocus returns activities most recent first.
	ListFocus(ctx context.Context, userID string, r calendar.Range) ([]domain.FocusActivity, error)
}

type SubscriptionStore interface {
	AddSubscription(ctx context.Context, sub domain.Subscription) error
	ListSubscriptions(ctx context.Context, userID string) ([]domain.Subscription, error)
	DeleteSubscription(ctx context.Context, userID, id string) error
}
