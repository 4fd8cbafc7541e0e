package out

import (
	"encoding/json"
	"fmt"
	"time"

	"paymind/internal/modules/report/domain"
	reportout "paymind/internal/modules/report/port/out"
	"paymind/internal/platform/calendar"
)

type JSONRenderer struct{}

func NewJSONRenderer() reportout.Renderer {
	return JSONRenderer{}
}

func (JSONRenderer) Format() domain.Format { return domain.FormatJSON }

type jsonReport struct {
	UserID          string               `json:"user_id"`
	AsOf            string               `json:"as_of"`
	GeneratedAt     time.Time            `json:"generated_at"`
	Summary         jsonSummary          `json:"summary"`
	TopApps         []jsonApp            `json:"top_apps"`
	Distractions    jsonDistractions     `json:"distractions"`
	Subscriptions   []jsonSubscription   `json:"subscriptions"`
	Focus           []jsonFocus          `json:"focus_activities"`
	MoreFocus       int                  `json:"more_focus_activities"`
	Goals           []jsonGoal           `json:"goals"`
	Wallet          jsonWallet           `json:"wallet"`
	Recommendations []jsonRecommendation `json:"recommendations"`
	Insights        []string             `json:"insights"`
	Tips            []string             `json:"tips"`
}

type jsonSummary struct {
	ScreenHours         float64 `json:"screen_hours"`
	ValueLost           float64 `json:"value_lost"`
	FocusHours          float64 `json:"focus_hours"`
	FocusPoints         int     `json:"focus_points"`
	SubscriptionMonthly float64 `json:"subscription_monthly"`
	Pickups             int     `json:"pickups"`
	Notifications       int     `json:"notifications"`
	Entries             int     `json:"entries"`
	Apps                int     `json:"apps"`
}

type jsonApp struct {
	App   string  `json:"app"`
	Hours float64 `json:"hours"`
}

type jsonDistractions struct {
	DaysLogged            int     `json:"days_logged"`
	Pickups               int     `json:"pickups"`
	Notifications         int     `json:"notifications"`
	AvgDailyPickups       float64 `json:"avg_daily_pickups"`
	AvgDailyNotifications float64 `json:"avg_daily_notifications"`
}

type jsonSubscription struct {
	Name        string  `json:"name"`
	Cost        float64 `json:"cost"`
	UsageHours  float64 `json:"usage_hours"`
	CostPerHour float64 `json:"cost_per_hour"`
	Worthwhile  bool    `json:"worthwhile"`
}

type jsonFocus struct {
	Date   string  `json:"date"`
	Type   string  `json:"type"`
	Hours  float64 `json:"hours"`
	Points int     `json:"points"`
}

type jsonGoal struct {
	Title        string  `json:"title"`
	TargetAmount float64 `json:"target_amount"`
	CurrentSaved float64 `json:"current_saved"`
	Progress     float64 `json:"progress"`
	Completed    bool    `json:"completed"`
}

type jsonWallet struct {
	MoneySaved     float64  `json:"money_saved"`
	TotalPoints    int      `json:"total_points"`
	StreakDays     int      `json:"streak_days"`
	TotalSavedTime float64  `json:"total_saved_time"`
	Achievements   []string `json:"achievements"`
}

type jsonRecommendation struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	PotentialSaving float64 `json:"potential_saving"`
	Source          string  `json:"source"`
}

func (JSONRenderer) Render(report domain.Report) ([]byte, error) {
	view := jsonReport{
		UserID:       report.UserID,
		AsOf:         calendar.Format(report.AsOf),
		GeneratedAt:  report.GeneratedAt,
		Summary:      jsonSummary(report.Summary),
		Distractions: jsonDistractions(report.Distractions),
		MoreFocus:    report.MoreFocus,
		Wallet: jsonWallet{
			MoneySaved:     report.Wallet.MoneySaved,
			TotalPoints:    report.Wallet.TotalPoints,
			StreakDays:     report.Wallet.StreakDays,
			TotalSavedTime: report.Wallet.TotalSavedTime,
			Achievements:   nonNil(report.Wallet.Unlocked),
		},
		TopApps:         make([]jsonApp, 0, len(report.TopApps)),
		Subscriptions:   make([]jsonSubscription, 0, len(report.Subscriptions)),
		Focus:           make([]jsonFocus, 0, len(report.Focus)),
		Goals:           make([]jsonGoal, 0, len(report.Goals)),
		Recommendations: make([]jsonRecommendation, 0, len(report.Recommendations)),
		Insights:        nonNil(report.Insights),
		Tips:            nonNil(report.Tips),
	}
	for _, a := range report.TopApps {
		view.TopApps = append(view.TopApps, jsonApp(a))
	}
	for _, s := range report.Subscriptions {
		view.Subscriptions = append(view.Subscriptions, jsonSubscription(s))
	}
	for _, f := range report.Focus {
		view.Focus = append(view.Focus, jsonFocus{Date: calendar.Format(f.Date), Type: f.Type, Hours: f.Hours, Points: f.Points})
	}
	for _, g := range report.Goals {
		view.Goals = append(view.Goals, jsonGoal(g))
	}
	for _, r := range report.Recommendations {
		view.Recommendations = append(view.Recommendations, jsonRecommendation(r))
	}
	raw, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return append(raw, '\n'), nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
