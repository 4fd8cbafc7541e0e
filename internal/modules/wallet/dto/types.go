package dto

import "time"

type AchievementItem struct {
	Key         string
	Title       string
	Description string
	Unlocked    bool
}

type WalletOutput struct {
	UserID         string
	TotalSavedTime float64
	TotalPoints    int
	MoneySaved     float64
	StreakDays     int
	UpdatedAt      time.Time
	Achievements   []AchievementItem
}

// AccrueInput adds Hours and Points to the wallet. With a Key they are running totals for
// that source and only the part above what the key already credited is added.
type AccrueInput struct {
	UserID string
	Key    string
	Hours  float64
	Points int
	AsOf   time.Time
}

type AccrueOutput struct {
	Hours  float64
	Points int
	Money  float64
	Wallet WalletOutput
}

type AddGoalInput struct {
	UserID       string
	Title        string
	TargetAmount float64
}

type GoalItem struct {
	ID                   string
	Title                string
	TargetAmount         float64
	CurrentSaved         float64
	Remaining            float64
	Progress             float64
	EstimatedDaysDelayed int
	Completed            bool
	CreatedAt            time.Time
}

type GoalListOutput struct {
	Goals       []GoalItem
	TotalTarget float64
	TotalSaved  float64
}

type AllocateInput struct {
	UserID string
	GoalID string
	Amount float64
}

type AllocateOutput struct {
	Goal     GoalItem
	Wallet   WalletOutput
	Attempts int
}

type DeleteGoalInput struct {
	UserID string
	GoalID string
}
