package domain

import (
	"fmt"
	"sort"
	"time"

	tracking "paymind/internal/modules/tracking/domain"
	valuation "paymind/internal/modules/valuation/domain"
	"paymind/internal/platform/calendar"
	apperrors "paymind/internal/platform/errors"
)

type AppUsage struct {
	App   string
	Hours float64
	// FirstSeen is the app's position among the distinct apps of the input, in input order.
	FirstSeen int
}

// AggregateByApp sums hours per app, ordered by descending hours. Ties keep the order in which
// the apps first appear in entries.
func AggregateByApp(entries []tracking.UsageEntry) []AppUsage {
	index := make(map[string]int, len(entries))
	out := make([]AppUsage, 0, len(entries))
	for _, e := range entries {
		if pos, ok := index[e.AppName]; ok {
			out[pos].Hours += e.Hours
			continue
		}
		index[e.AppName] = len(out)
		out = append(out, AppUsage{App: e.AppName, Hours: e.Hours, FirstSeen: len(out)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Hours > out[j].Hours })
	return out
}

func TopApp(usage []AppUsage) (AppUsage, bool) {
	if len(usage) == 0 {
		return AppUsage{}, false
	}
	return usage[0], true
}

func TotalHours(usage []AppUsage) float64 {
	total := 0.0
	for _, u := range usage {
		total += u.Hours
	}
	return total
}

type Totals struct {
	Hours   float64
	Loss    float64
	Entries int
}

// PeriodTotals sums hours and weighted time loss over the entries dated inside r.
func PeriodTotals(entries []tracking.UsageEntry, r calendar.Range, engine valuation.Engine) (Totals, error) {
	var t Totals
	for _, e := range entries {
		if !r.Contains(e.Date) {
			continue
		}
		loss, err := engine.TimeLoss(e.AppName, e.Hours)
		if err != nil {
			return Totals{}, fmt.Errorf("value %s on %s: %w", e.AppName, calendar.Format(e.Date), err)
		}
		t.Hours += e.Hours
		t.Loss += loss
		t.Entries++
	}
	return t, nil
}

// CorporateProfitFor sums what the platforms earned from the entries dated inside r.
func CorporateProfitFor(entries []tracking.UsageEntry, r calendar.Range, engine valuation.Engine) (float64, error) {
	total := 0.0
	for _, e := range entries {
		if !r.Contains(e.Date) {
			continue
		}
		profit, err := engine.CorporateProfit(e.AppName, e.Hours)
		if err != nil {
			return 0, err
		}
		total += profit
	}
	return total, nil
}

type Debt struct {
	Minutes float64
	Value   float64
}

// DistractionDebt values interruptions at the flat reference rate: three minutes per pickup and
// half a minute per notification.
func DistractionDebt(pickups, notifications int, referenceRate float64) (Debt, error) {
	if pickups < 0 || notifications < 0 {
		return Debt{}, fmt.Errorf("%w: pickups and notifications must be non-negative", apperrors.ErrValidation)
	}
	minutes := float64(pickups)*3 + float64(notifications)*0.5
	return Debt{Minutes: minutes, Value: minutes / 60 * referenceRate}, nil
}

// Streak counts consecutive matches from the first element, stopping at the first miss.
// Callers order items most recent first.
func Streak[T any](items []T, match func(T) bool) int {
	n := 0
	for _, item := range items {
		if !match(item) {
			break
		}
		n++
	}
	return n
}

// ActivityStreak counts consecutive active days walking r backwards from its last day.
func ActivityStreak(r calendar.Range, activeDays []time.Time) int {
	active := make(map[string]struct{}, len(activeDays))
	for _, d := range activeDays {
		active[calendar.Format(d)] = struct{}{}
	}
	return Streak(r.DaysDescending(), func(d time.Time) bool {
		_, ok := active[calendar.Format(d)]
		return ok
	})
}

// LowPickupThreshold is the pickup count under which a day counts toward the distraction streak.
const LowPickupThreshold = 50

// DistractionStreak counts consecutive logs, most recent first, under LowPickupThreshold.
func DistractionStreak(logsDescending []tracking.DistractionLog) int {
	return Streak(logsDescending, func(l tracking.DistractionLog) bool { return l.PickupCount < LowPickupThreshold })
}
