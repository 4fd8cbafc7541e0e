package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	insights "paymind/internal/modules/insights/domain"
	"paymind/internal/modules/wallet/domain"
	"paymind/internal/modules/wallet/dto"
	walletin "paymind/internal/modules/wallet/port/in"
	walletout "paymind/internal/modules/wallet/port/out"
	"paymind/internal/modules/wallet/service"
	"paymind/internal/platform/calendar"
	apperrors "paymind/internal/platform/errors"
	"paymind/internal/platform/tx"
)

const (
	// MaxAttempts bounds the optimistic retries of one wallet mutation.
	MaxAttempts      = 3
	streakWindowDays = 30
)

type Interactor struct {
	svc      *service.WalletService
	wallets  walletout.WalletStore
	goals    walletout.GoalStore
	credits  walletout.CreditStore
	activity walletout.ActivityCalendar
	locker   walletout.Locker
	txm      tx.Manager
	log      zerolog.Logger
}

type Deps struct {
	Service  *service.WalletService
	Wallets  walletout.WalletStore
	Goals    walletout.GoalStore
	Credits  walletout.CreditStore
	Activity walletout.ActivityCalendar
	Locker   walletout.Locker
	Tx       tx.Manager
	Log      zerolog.Logger
}

func NewInteractor(deps Deps) walletin.Usecase {
	txm := deps.Tx
	if txm == nil {
		txm = tx.NoopManager{}
	}
	return &Interactor{
		svc:      deps.Service,
		wallets:  deps.Wallets,
		goals:    deps.Goals,
		credits:  deps.Credits,
		activity: deps.Activity,
		locker:   deps.Locker,
		txm:      txm,
		log:      deps.Log.With().Str("component", "wallet").Logger(),
	}
}

func (i *Interactor) GetWallet(ctx context.Context, userID string) (dto.WalletOutput, error) {
	if err := requireUser(userID); err != nil {
		return dto.WalletOutput{}, err
	}
	w, err := i.loadOrCreate(ctx, userID)
	if err != nil {
		return dto.WalletOutput{}, err
	}
	return toWalletOutput(w), nil
}

func (i *Interactor) Accrue(ctx context.Context, input dto.AccrueInput) (dto.AccrueOutput, error) {
	if err := requireUser(input.UserID); err != nil {
		return dto.AccrueOutput{}, err
	}
	if input.Key != "" && i.credits == nil {
		return dto.AccrueOutput{}, fmt.Errorf("keyed accrual %q: no credit store configured", input.Key)
	}
	asOf := input.AsOf
	if asOf.IsZero() {
		asOf = i.svc.Clock().Now()
	}
	var out dto.AccrueOutput
	saved, _, err := i.mutate(ctx, input.UserID, func(ctx context.Context, w domain.Wallet) (domain.Wallet, afterSave, error) {
		hours, points := input.Hours, input.Points
		var after afterSave
		if input.Key != "" {
			mark, err := i.credits.LoadCredit(ctx, input.UserID, input.Key)
			switch {
			case errors.Is(err, apperrors.ErrNotFound):
				mark = domain.Credit{UserID: input.UserID, Key: input.Key}
			case err != nil:
				return domain.Wallet{}, nil, err
			}
			var raised domain.Credit
			hours, points, raised = mark.Claim(input.Hours, input.Points)
			raised.UpdatedAt = i.svc.Clock().Now()
			after = func(ctx context.Context) error { return i.credits.SaveCredit(ctx, raised) }
		}
		next, added, err := i.svc.Ledger().Accrue(w, hours, points)
		if err != nil {
			return domain.Wallet{}, nil, err
		}
		streak, err := i.streak(ctx, input.UserID, asOf)
		if err != nil {
			return domain.Wallet{}, nil, err
		}
		next.StreakDays = streak
		next.UpdatedAt = i.svc.Clock().Now()
		out.Hours, out.Points, out.Money = hours, points, added
		return next, after, nil
	})
	if err != nil {
		return dto.AccrueOutput{}, err
	}
	i.log.Info().Str("user", input.UserID).Str("key", input.Key).Float64("hours", out.Hours).Int("points", out.Points).
		Float64("money", out.Money).Int("streak", saved.StreakDays).Msg("wallet accrued")
	out.Wallet = toWalletOutput(saved)
	return out, nil
}

func (i *Interactor) AddGoal(ctx context.Context, input dto.AddGoalInput) (dto.GoalItem, error) {
	goal, err := i.svc.NewGoal(input.UserID, input.Title, input.TargetAmount)
	if err != nil {
		return dto.GoalItem{}, err
	}
	if err := i.goals.AddGoal(ctx, goal); err != nil {
		return dto.GoalItem{}, err
	}
	i.log.Info().Str("user", input.UserID).Str("goal", goal.ID).Float64("target", goal.TargetAmount).Msg("goal added")
	return toGoalItem(goal), nil
}

func (i *Interactor) ListGoals(ctx context.Context, userID string) (dto.GoalListOutput, error) {
	if err := requireUser(userID); err != nil {
		return dto.GoalListOutput{}, err
	}
	goals, err := i.goals.ListGoals(ctx, userID)
	if err != nil {
		return dto.GoalListOutput{}, err
	}
	out := dto.GoalListOutput{Goals: make([]dto.GoalItem, 0, len(goals))}
	for _, g := range goals {
		out.Goals = append(out.Goals, toGoalItem(g))
		out.TotalTarget += g.TargetAmount
		out.TotalSaved += g.CurrentSaved
	}
	return out, nil
}

func (i *Interactor) DeleteGoal(ctx context.Context, input dto.DeleteGoalInput) error {
	if err := requireUser(input.UserID); err != nil {
		return err
	}
	if strings.TrimSpace(input.GoalID) == "" {
		return fmt.Errorf("%w: goal id is required", apperrors.ErrInvalidInput)
	}
	if err := i.goals.DeleteGoal(ctx, input.UserID, input.GoalID); err != nil {
		return err
	}
	i.log.Info().Str("user", input.UserID).Str("goal", input.GoalID).Msg("goal deleted")
	return nil
}

// AllocateToGoal moves wallet money into a goal. The wallet write is a compare-and-swap on its
// version and the goal is only written once that swap succeeded.
func (i *Interactor) AllocateToGoal(ctx context.Context, input dto.AllocateInput) (dto.AllocateOutput, error) {
	if err := requireUser(input.UserID); err != nil {
		return dto.AllocateOutput{}, err
	}
	if strings.TrimSpace(input.GoalID) == "" {
		return dto.AllocateOutput{}, fmt.Errorf("%w: goal id is required", apperrors.ErrInvalidInput)
	}
	var goal domain.Goal
	saved, attempts, err := i.mutate(ctx, input.UserID, func(ctx context.Context, w domain.Wallet) (domain.Wallet, afterSave, error) {
		current, err := i.goals.LoadGoal(ctx, input.UserID, input.GoalID)
		if err != nil {
			return domain.Wallet{}, nil, err
		}
		updatedGoal, updatedWallet, err := i.svc.Ledger().AllocateToGoal(current, w, input.Amount)
		if err != nil {
			return domain.Wallet{}, nil, err
		}
		goal = updatedGoal
		updatedWallet.UpdatedAt = i.svc.Clock().Now()
		return updatedWallet, func(ctx context.Context) error { return i.goals.UpdateGoal(ctx, updatedGoal) }, nil
	})
	if err != nil {
		i.log.Warn().Err(err).Str("user", input.UserID).Str("goal", input.GoalID).Float64("amount", input.Amount).Msg("allocation failed")
		return dto.AllocateOutput{}, err
	}
	i.log.Info().Str("user", input.UserID).Str("goal", input.GoalID).Float64("amount", input.Amount).
		Float64("balance", saved.MoneySaved).Int("attempts", attempts).Msg("allocated to goal")
	return dto.AllocateOutput{Goal: toGoalItem(goal), Wallet: toWalletOutput(saved), Attempts: attempts}, nil
}

// afterSave runs in the same transaction once the wallet swap went through.
type afterSave func(context.Context) error

// mutate loads the wallet, applies fn and writes the result inside one transaction while holding
// the per-user lock. ErrConflict from the store restarts the cycle up to MaxAttempts times.
func (i *Interactor) mutate(
	ctx context.Context,
	userID string,
	fn func(context.Context, domain.Wallet) (domain.Wallet, afterSave, error),
) (domain.Wallet, int, error) {
	if i.locker != nil {
		unlock, err := i.locker.Lock(ctx, "wallet:"+userID)
		if err != nil {
			return domain.Wallet{}, 0, fmt.Errorf("lock wallet: %w", err)
		}
		defer unlock()
	}

	var lastErr error
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		var saved domain.Wallet
		err := i.txm.Within(ctx, func(ctx context.Context) error {
			w, err := i.loadOrCreate(ctx, userID)
			if err != nil {
				return err
			}
			next, after, err := fn(ctx, w)
			if err != nil {
				return err
			}
			if saved, err = i.wallets.SaveWallet(ctx, next); err != nil {
				return err
			}
			if after != nil {
				return after(ctx)
			}
			return nil
		})
		if err == nil {
			return saved, attempt, nil
		}
		if !errors.Is(err, apperrors.ErrConflict) {
			return domain.Wallet{}, attempt, err
		}
		lastErr = err
		i.log.Debug().Str("user", userID).Int("attempt", attempt).Msg("wallet version conflict, retrying")
		if ctx.Err() != nil {
			return domain.Wallet{}, attempt, ctx.Err()
		}
	}
	return domain.Wallet{}, MaxAttempts, fmt.Errorf("wallet update after %d attempts: %w", MaxAttempts, lastErr)
}

func (i *Interactor) loadOrCreate(ctx context.Context, userID string) (domain.Wallet, error) {
	w, err := i.wallets.LoadWallet(ctx, userID)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return domain.Wallet{}, err
	}
	fresh := domain.NewWallet(userID)
	fresh.UpdatedAt = i.svc.Clock().Now()
	if err := i.wallets.CreateWallet(ctx, fresh); err != nil {
		return domain.Wallet{}, err
	}
	return i.wallets.LoadWallet(ctx, userID)
}

func (i *Interactor) streak(ctx context.Context, userID string, asOf time.Time) (int, error) {
	if i.activity == nil {
		return 0, nil
	}
	window := calendar.LastDays(asOf, streakWindowDays)
	days, err := i.activity.ActiveDays(ctx, userID, window)
	if err != nil {
		return 0, fmt.Errorf("load active days: %w", err)
	}
	return insights.ActivityStreak(window, days), nil
}

func requireUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user id is required", apperrors.ErrInvalidInput)
	}
	return nil
}

func toWalletOutput(w domain.Wallet) dto.WalletOutput {
	out := dto.WalletOutput{
		UserID:         w.UserID,
		TotalSavedTime: w.TotalSavedTime,
		TotalPoints:    w.TotalPoints,
		MoneySaved:     w.MoneySaved,
		StreakDays:     w.StreakDays,
		UpdatedAt:      w.UpdatedAt,
	}
	for _, a := range domain.Achievements(w) {
		out.Achievements = append(out.Achievements, dto.AchievementItem{
			Key: a.Key, Title: a.Title, Description: a.Description, Unlocked: a.Unlocked,
		})
	}
	return out
}

func toGoalItem(g domain.Goal) dto.GoalItem {
	return dto.GoalItem{
		ID:                   g.ID,
		Title:                g.Title,
		TargetAmount:         g.TargetAmount,
		CurrentSaved:         g.CurrentSaved,
		Remaining:            g.Remaining(),
		Progress:             g.Progress(),
		EstimatedDaysDelayed: g.EstimatedDaysDelayed,
		Completed:            g.Completed(),
		CreatedAt:            g.CreatedAt,
	}
}
