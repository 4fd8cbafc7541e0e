package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	"paymind/internal/modules/tracking/domain"
	valuation "paymind/internal/modules/valuation/domain"
	"paymind/internal/platform/calendar"
	"paymind/internal/platform/clock"
	apperrors "paymind/internal/platform/errors"
	"paymind/internal/platform/id"
)

// TrackingService turns raw user input into validated records stamped with ids and valuations.
type TrackingService struct {
	clock  clock.Clock
	idGen  id.Generator
	engine valuation.Engine
}

func NewTrackingService(clock clock.Clock, idGen id.Generator, engine valuation.Engine) *TrackingService {
	return &TrackingService{clock: clock, idGen: idGen, engine: engine}
}

func (s *TrackingService) Engine() valuation.Engine { return s.engine }

// Today is the calendar day of the service clock.
func (s *TrackingService) Today() time.Time { return calendar.Day(s.clock.Now()) }

func (s *TrackingService) dayOrToday(t time.Time) time.Time {
	if t.IsZero() {
		return s.Today()
	}
	return calendar.Day(t)
}

// UsageDay builds the entries saved for one day. Zero-hour apps are dropped and an empty
// selection afterwards is rejected. Repeated apps keep the last value.
func (s *TrackingService) UsageDay(userID string, day time.Time, hoursByApp []AppHours) ([]domain.UsageEntry, int, error) {
	if err := requireUser(userID); err != nil {
		return nil, 0, err
	}
	day = s.dayOrToday(day)
	now := s.clock.Now()

	index := make(map[string]int, len(hoursByApp))
	entries := make([]domain.UsageEntry, 0, len(hoursByApp))
	dropped := 0
	for _, item := range hoursByApp {
		entry := domain.UsageEntry{UserID: userID, AppName: strings.TrimSpace(item.App), Hours: item.Hours, Date: day, CreatedAt: now}
		if err := entry.Validate(); err != nil {
			return nil, 0, err
		}
		if entry.Hours == 0 {
			dropped++
			continue
		}
		loss, err := s.engine.TimeLoss(entry.AppName, entry.Hours)
		if err != nil {
			return nil, 0, err
		}
		entry.EstValueLost = loss
		if pos, ok := index[entry.AppName]; ok {
			entry.ID = entries[pos].ID
			entries[pos] = entry
			continue
		}
		entry.ID = s.idGen.New()
		index[entry.AppName] = len(entries)
		entries = append(entries, entry)
	}
	if len(entries) == 0 {
		return nil, dropped, fmt.Errorf("%w: select at least one app with usage hours", apperrors.ErrInvalidInput)
	}
	return entries, dropped, nil
}

type AppHours struct {
	App   string
	Hours float64
}

func (s *TrackingService) Distraction(userID string, day time.Time, pickups, notifications int) (domain.DistractionLog, error) {
	if err := requireUser(userID); err != nil {
		return domain.DistractionLog{}, err
	}
	log := domain.DistractionLog{
		ID:                s.idGen.New(),
		UserID:            userID,
		Date:              s.dayOrToday(day),
		PickupCount:       pickups,
		NotificationCount: notifications,
		CreatedAt:         s.clock.Now(),
	}
	if err := log.Validate(); err != nil {
		return domain.DistractionLog{}, err
	}
	return log, nil
}

func (s *TrackingService) Focus(userID string, day time.Time, activityType string, hours float64) (domain.FocusActivity, error) {
	if err := requireUser(userID); err != nil {
		return domain.FocusActivity{}, err
	}
	activity := domain.FocusActivity{
		ID:        s.idGen.New(),
		UserID:    userID,
		Type:      valuation.ActivityType(strings.TrimSpace(activityType)),
		Hours:     hours,
		Date:      s.dayOrToday(day),
		CreatedAt: s.clock.Now(),
	}
	if err := activity.Validate(); err != nil {
		return domain.FocusActivity{}, err
	}
	points, err := s.engine.FocusPoints(string(activity.Type), hours)
	if err != nil {
		return domain.FocusActivity{}, err
	}
	activity.Points = int(math.Round(points))
	return activity, nil
}

func (s *TrackingService) Subscription(userID, name string, cost, usageHours float64) (domain.Subscription, error) {
	if err := requireUser(userID); err != nil {
		return domain.Subscription{}, err
	}
	sub := domain.Subscription{
		ID:         s.idGen.New(),
		UserID:     userID,
		Name:       strings.TrimSpace(name),
		Cost:       cost,
		UsageHours: usageHours,
		CreatedAt:  s.clock.Now(),
	}
	if err := sub.Validate(); err != nil {
		return domain.Subscription{}, err
	}
	return sub, nil
}

// Range normalises a caller range; a zero bound defaults to today.
func (s *TrackingService) Range(from, to time.Time) (calendar.Range, error) {
	r, err := calendar.NewRange(s.dayOrToday(from), s.dayOrToday(to))
	if err != nil {
		return calendar.Range{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return r, nil
}

func requireUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user id is required", apperrors.ErrInvalidInput)
	}
	return nil
}
