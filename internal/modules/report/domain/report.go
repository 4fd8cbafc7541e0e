// Package domain holds the report model and the rules that turn tracked history into it.
// Renderers consume Report as plain values.
package domain

import (
	"fmt"
	"strings"
	"time"

	"paymind/internal/platform/calendar"
)

type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatPDF      Format = "pdf"
)

func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "json":
		return FormatJSON, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unsupported report format %q", value)
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/json"
	}
}

// FileName is paymind-report-<date>.<ext>.
func FileName(asOf time.Time, format Format) string {
	return fmt.Sprintf("paymind-report-%s.%s", calendar.Format(asOf), format)
}

const (
	TopAppLimit = 5
	FocusLimit  = 10
)

type Summary struct {
	ScreenHours         float64
	ValueLost           float64
	FocusHours          float64
	FocusPoints         int
	SubscriptionMonthly float64
	Pickups             int
	Notifications       int
	Entries             int
	Apps                int
}

type AppLine struct {
	App   string
	Hours float64
}

type DistractionLine struct {
	DaysLogged            int
	Pickups               int
	Notifications         int
	AvgDailyPickups       float64
	AvgDailyNotifications float64
}

type SubscriptionLine struct {
	Name        string
	Cost        float64
	UsageHours  float64
	CostPerHour float64
	Worthwhile  bool
}

type FocusLine struct {
	Date   time.Time
	Type   string
	Hours  float64
	Points int
}

type GoalLine struct {
	Title        string
	TargetAmount float64
	CurrentSaved float64
	Progress     float64
	Completed    bool
}

type WalletLine struct {
	MoneySaved     float64
	TotalPoints    int
	StreakDays     int
	TotalSavedTime float64
	Unlocked       []string
}

type RecommendationLine struct {
	Title           string
	Description     string
	PotentialSaving float64
	Source          string
}

type Report struct {
	UserID          string
	AsOf            time.Time
	GeneratedAt     time.Time
	Summary         Summary
	TopApps         []AppLine
	Distractions    DistractionLine
	Subscriptions   []SubscriptionLine
	Focus           []FocusLine
	MoreFocus       int
	Goals           []GoalLine
	Wallet          WalletLine
	Recommendations []RecommendationLine
	Insights        []string
	Tips            []string
}

// AllTime is every calendar day up to and including asOf.
func AllTime(asOf time.Time) calendar.Range {
	return calendar.Range{From: calendar.Day(time.Time{}), To: calendar.Day(asOf)}
}

const (
	highLossAbove          = 5000
	manySubscriptionsAbove = 5
	lowFocusBelow          = 10
	steadyStreakFrom       = 7
)

// Tips applies the four fixed habit rules, one line per rule.
func Tips(s Summary, subscriptions int, streakDays int) []string {
	tips := make([]string, 0, 4)
	if s.ValueLost > highLossAbove {
		tips = append(tips, "High attention loss detected. Consider setting app time limits and using focus modes.")
	} else {
		tips = append(tips, "Your attention usage appears reasonable. Continue monitoring for awareness.")
	}
	if subscriptions > manySubscriptionsAbove {
		tips = append(tips, "Review your subscriptions - you might have unused services costing you money.")
	} else {
		tips = append(tips, "Your subscription count looks manageable. Good financial discipline!")
	}
	if s.FocusHours < lowFocusBelow {
		tips = append(tips, "Try to increase focus activities for better attention ROI and personal growth.")
	} else {
		tips = append(tips, "Excellent focus activity levels! Keep up these productive habits.")
	}
	if streakDays < steadyStreakFrom {
		tips = append(tips, "Try to track daily for better insights and to build a consistent habit.")
	} else {
		tips = append(tips, "Great tracking consistency! Your streak shows commitment to digital wellness.")
	}
	return tips
}

// Insights summarises the history in a few sentences. money renders amounts.
func Insights(s Summary, streakDays int, money func(float64) string) []string {
	out := []string{fmt.Sprintf("You've tracked %d screen time entries across %d different apps.", s.Entries, s.Apps)}
	if s.ValueLost > 0 {
		out = append(out, fmt.Sprintf("Your total attention value of %s represents significant opportunity cost.", money(s.ValueLost)))
	} else {
		out = append(out, "Keep tracking to build awareness of your digital habits.")
	}
	if s.FocusHours > 0 {
		out = append(out, fmt.Sprintf("Your %.1f hours of focus activities demonstrate excellent commitment to personal development.", s.FocusHours))
	}
	if streakDays > steadyStreakFrom {
		out = append(out, fmt.Sprintf("Your %d-day tracking streak shows great consistency!", streakDays))
	}
	return out
}
