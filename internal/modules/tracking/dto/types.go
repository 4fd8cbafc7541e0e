package dto

import "time"

type AppHours struct {
	App   string
	Hours float64
}

type SaveScreenTimeInput struct {
	UserID string
	Date   time.Time
	Apps   []AppHours
}

type UsageItem struct {
	ID           string
	App          string
	Hours        float64
	Date         time.Time
	EstValueLost float64
}

type SaveScreenTimeOutput struct {
	Date      time.Time
	Entries   []UsageItem
	TotalLoss float64
	Dropped   int
}

type RangeInput struct {
	UserID string
	From   time.Time
	To     time.Time
}

type UsageListOutput struct {
	Entries    []UsageItem
	TotalHours float64
	TotalLoss  float64
}

type LogDistractionsInput struct {
	UserID            string
	Date              time.Time
	PickupCount       int
	NotificationCount int
}

type DistractionItem struct {
	ID                string
	Date              time.Time
	PickupCount       int
	NotificationCount int
}

type DistractionListOutput struct {
	Logs []DistractionItem
}

type LogFocusInput struct {
	UserID string
	Date   time.Time
	Type   string
	Hours  float64
}

type FocusItem struct {
	ID     string
	Type   string
	Hours  float64
	Points int
	Date   time.Time
}

type LogFocusOutput struct {
	Activity      FocusItem
	AccruedHours  float64
	AccruedPoints int
	AccruedMoney  float64
	WalletBalance float64
	WalletStreak  int
}

type FocusListOutput struct {
	Activities  []FocusItem
	TotalHours  float64
	TotalPoints int
}

type AddSubscriptionInput struct {
	UserID     string
	Name       string
	Cost       float64
	UsageHours float64
}

type SubscriptionItem struct {
	ID           string
	Name         string
	Cost         float64
	UsageHours   float64
	CostPerHour  float64
	IsWorthwhile bool
	Advice       string
}

type SubscriptionListOutput struct {
	Subscriptions []SubscriptionItem
	TotalMonthly  float64
}

type DeleteInput struct {
	UserID string
	ID     string
}
