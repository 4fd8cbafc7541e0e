package domain

import (
	"fmt"
	"strings"
	"time"

	valuation "paymind/internal/modules/valuation/domain"
	apperrors "paymind/internal/platform/errors"
)

// UsageEntry is one app's manual usage log for one day.
type UsageEntry struct {
	ID           string
	UserID       string
	AppName      string
	Hours        float64
	Date         time.Time
	EstValueLost float64
	CreatedAt    time.Time
}

type DistractionLog struct {
	ID                string
	UserID            string
	Date              time.Time
	PickupCount       int
	NotificationCount int
	CreatedAt         time.Time
}

type FocusActivity struct {
	ID        string
	UserID    string
	Type      valuation.ActivityType
	Hours     float64
	Points    int
	Date      time.Time
	CreatedAt time.Time
}

// Subscription costs and usage hours are monthly figures.
type Subscription struct {
	ID         string
	UserID     string
	Name       string
	Cost       float64
	UsageHours float64
	CreatedAt  time.Time
}

func (e UsageEntry) Validate() error {
	if strings.TrimSpace(e.AppName) == "" {
		return fmt.Errorf("%w: app name is required", apperrors.ErrInvalidInput)
	}
	return valuation.RequireNonNegative("hours", e.Hours)
}

func (l DistractionLog) Validate() error {
	if l.PickupCount < 0 || l.NotificationCount < 0 {
		return fmt.Errorf("%w: pickup and notification counts must be non-negative", apperrors.ErrValidation)
	}
	if l.PickupCount == 0 && l.NotificationCount == 0 {
		return fmt.Errorf("%w: enter at least one pickup or notification", apperrors.ErrInvalidInput)
	}
	return nil
}

func (a FocusActivity) Validate() error {
	if err := a.Type.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if err := valuation.RequireNonNegative("hours", a.Hours); err != nil {
		return err
	}
	if a.Hours == 0 {
		return fmt.Errorf("%w: focus hours must be greater than zero", apperrors.ErrInvalidInput)
	}
	return nil
}

func (s Subscription) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: subscription name is required", apperrors.ErrInvalidInput)
	}
	if err := valuation.RequireNonNegative("cost", s.Cost); err != nil {
		return err
	}
	return valuation.RequireNonNegative("usage hours", s.UsageHours)
}
