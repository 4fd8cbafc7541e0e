package dto

import "time"

type AsOfInput struct {
	UserID string
	AsOf   time.Time
}

type AppUsageItem struct {
	App   string
	Hours float64
	Loss  float64
}

type DistractionStats struct {
	Pickups         int
	Notifications   int
	DebtMinutes     float64
	DebtValue       float64
	LowPickupStreak int
	DaysLogged      int
}

type DashboardOutput struct {
	AsOf                time.Time
	TodayHours          float64
	TodayLoss           float64
	WeekHours           float64
	WeekLoss            float64
	WeekCorporateProfit float64
	TopApp              string
	TopAppHours         float64
	WeeklyApps          []AppUsageItem
	FocusTodayHours     float64
	FocusTodayPoints    int
	FocusWeekHours      float64
	FocusWeekPoints     int
	Distractions        DistractionStats
	SubscriptionCount   int
	SubscriptionMonthly float64
}

type RecommendationItem struct {
	ID              string
	Kind            string
	Title           string
	Description     string
	App             string
	Alternative     string
	CurrentCost     float64
	PotentialSaving float64
	Timeframe       string
	Difficulty      string
	Source          string
}

type CutBackPlanItem struct {
	ID              string
	Title           string
	Description     string
	DailyTimeSaving float64
	MonthlySaving   float64
	Steps           []string
}

type RecommendationsOutput struct {
	AsOf                 time.Time
	WeekLoss             float64
	Items                []RecommendationItem
	TotalPotentialSaving float64
	Plans                []CutBackPlanItem
	// AdvisorFailures lists advisor plugins that were skipped.
	AdvisorFailures []string
}
