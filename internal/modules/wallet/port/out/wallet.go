package out

import (
	"context"
	"time"

	"paymind/internal/modules/wallet/domain"
	"paymind/internal/platform/calendar"
)

type WalletStore interface {
	// LoadWallet returns apperrors.ErrNotFound when the user has no wallet yet.
	LoadWallet(ctx context.Context, userID string) (domain.Wallet, error)
	// CreateWallet inserts w unless a wallet already exists for the user.
	CreateWallet(ctx context.Context, w domain.Wallet) error
	// SaveWallet persists w only while the stored version still equals w.Version and returns the
	// wallet with its bumped version. A stale version fails with apperrors.ErrConflict.
	SaveWallet(ctx context.Context, w domain.Wallet) (domain.Wallet, error)
}

type GoalStore interface {
	AddGoal(ctx context.Context, goal domain.Goal) error
	ListGoals(ctx context.Context, userID string) ([]domain.Goal, error)
	// LoadGoal returns apperrors.ErrNotFound for unknown ids.
	LoadGoal(ctx context.Context, userID, goalID string) (domain.Goal, error)
	UpdateGoal(ctx context.Context, goal domain.Goal) error
	DeleteGoal(ctx context.Context, userID, goalID string) error
}

// CreditStore keeps the credited high-water mark per cumulative source.
type CreditStore interface {
	// LoadCredit returns apperrors.ErrNotFound when nothing was credited under key yet.
	LoadCredit(ctx context.Context, userID, key string) (domain.Credit, error)
	SaveCredit(ctx context.Context, c domain.Credit) error
}

// ActivityCalendar reports the days in r on which the user logged usage, distractions or focus.
type ActivityCalendar interface {
	ActiveDays(ctx context.Context, userID string, r calendar.Range) ([]time.Time, error)
}

// Locker serialises wallet mutations per key across goroutines or processes.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
