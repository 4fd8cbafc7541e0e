package out

import (
	"context"

	"paymind/internal/modules/report/domain"
	tracking "paymind/internal/modules/tracking/domain"
	"paymind/internal/platform/calendar"
)

type UsageReader interface {
	ListUsage(ctx context.Context, userID string, r calendar.Range) ([]tracking.UsageEntry, error)
}

type DistractionReader interface {
	ListDistractions(ctx context.Context, userID string, r calendar.Range) ([]tracking.DistractionLog, error)
}

// FocusReader returns activities most recent first.
type FocusReader interface {
	ListFocus(ctx context.Context, userID string, r calendar.Range) ([]tracking.FocusActivity, error)
}

type SubscriptionReader interface {
	ListSubscriptions(ctx context.Context, userID string) ([]tracking.Subscription, error)
}

type Renderer interface {
	Format() domain.Format
	Render(report domain.Report) ([]byte, error)
}

// Writer persists a rendered report at path and returns the final location.
type Writer interface {
	Write(ctx context.Context, path string, format domain.Format, data []byte) (string, error)
}

// Inspector reopens a written PDF and reports its page count.
type Inspector interface {
	PageCount(path string) (int, error)
}
