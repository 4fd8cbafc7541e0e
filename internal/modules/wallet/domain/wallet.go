package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	valuation "paymind/internal/modules/valuation/domain"
	apperrors "paymind/internal/platform/errors"
)

// Wallet is the per-user running ledger of focus value. Version increments on every
// persisted change and guards concurrent writers.
type Wallet struct {
	UserID         string
	TotalSavedTime float64
	TotalPoints    int
	MoneySaved     float64
	StreakDays     int
	Version        int64
	UpdatedAt      time.Time
}

type Goal struct {
	ID                   string
	UserID               string
	Title                string
	TargetAmount         float64
	CurrentSaved         float64
	EstimatedDaysDelayed int
	CreatedAt            time.Time
}

// Credit is the high-water mark of what a cumulative source, such as one day's focus
// log of a given type, has already paid into the wallet.
type Credit struct {
	UserID    string
	Key       string
	Hours     float64
	Points    int
	UpdatedAt time.Time
}

// Claim returns the part of the totals not yet credited and the raised mark. Totals below
// the mark pay nothing and leave the mark where it is, so lowering then restoring a
// total never pays twice.
func (c Credit) Claim(hours float64, points int) (float64, int, Credit) {
	dh := math.Max(hours-c.Hours, 0)
	dp := max(points-c.Points, 0)
	c.Hours = math.Max(c.Hours, hours)
	c.Points = max(c.Points, points)
	return dh, dp, c
}

func NewWallet(userID string) Wallet {
	return Wallet{UserID: userID}
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Title) == "" {
		return fmt.Errorf("%w: goal title is required", apperrors.ErrInvalidInput)
	}
	if err := valuation.RequireNonNegative("target amount", g.TargetAmount); err != nil {
		return err
	}
	if g.TargetAmount == 0 {
		return fmt.Errorf("%w: target amount must be greater than zero", apperrors.ErrValidation)
	}
	return valuation.RequireNonNegative("current saved", g.CurrentSaved)
}

func (g Goal) Remaining() float64 {
	return math.Max(g.TargetAmount-g.CurrentSaved, 0)
}

// Progress is the saved share of the target in percent, capped at 100.
func (g Goal) Progress() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	return math.Min(g.CurrentSaved/g.TargetAmount*100, 100)
}

func (g Goal) Completed() bool { return g.CurrentSaved >= g.TargetAmount }

// Ledger applies wallet arithmetic at a fixed reference rate per hour saved.
type Ledger struct {
	Rate float64
}

func NewLedger(rate float64) Ledger { return Ledger{Rate: rate} }

func DefaultLedger() Ledger { return Ledger{Rate: valuation.DefaultReferenceHourlyRate} }

// DaysToGoal is how many reference hours are still needed to close remaining.
func (l Ledger) DaysToGoal(remaining float64) int {
	if remaining <= 0 || l.Rate <= 0 {
		return 0
	}
	return int(math.Ceil(remaining / l.Rate))
}

// Accrue credits hours and points of focus work. The returned amount is the money added.
func (l Ledger) Accrue(w Wallet, hours float64, points int) (Wallet, float64, error) {
	if err := valuation.RequireNonNegative("hours", hours); err != nil {
		return Wallet{}, 0, err
	}
	if points < 0 {
		return Wallet{}, 0, fmt.Errorf("%w: points must be non-negative", apperrors.ErrValidation)
	}
	money := hours * l.Rate
	w.TotalSavedTime += hours
	w.TotalPoints += points
	w.MoneySaved += money
	return w, money, nil
}

// AllocateToGoal moves amount from the wallet into the goal. The wallet balance never goes
// negative: an amount above MoneySaved fails with ErrInsufficientFunds and nothing changes.
func (l Ledger) AllocateToGoal(goal Goal, wallet Wallet, amount float64) (Goal, Wallet, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return goal, wallet, fmt.Errorf("%w: allocation amount must be greater than zero", apperrors.ErrValidation)
	}
	if amount > wallet.MoneySaved {
		return goal, wallet, fmt.Errorf("%w: requested %.2f, available %.2f", apperrors.ErrInsufficientFunds, amount, wallet.MoneySaved)
	}
	goal.CurrentSaved += amount
	wallet.MoneySaved -= amount
	goal.EstimatedDaysDelayed = l.DaysToGoal(goal.Remaining())
	return goal, wallet, nil
}

// AllocateToGoal applies the allocation at the default reference rate.
func AllocateToGoal(goal Goal, wallet Wallet, amount float64) (Goal, Wallet, error) {
	return DefaultLedger().AllocateToGoal(goal, wallet, amount)
}
