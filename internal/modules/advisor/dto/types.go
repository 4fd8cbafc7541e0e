package dto

import "time"

type PluginInfo struct {
	Name    string
	Version string
	Enabled bool
	Binary  string
}

type DoctorResult struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}

type AppHours struct {
	App   string
	Hours float64
}

type AdviseInput struct {
	UserID        string
	AsOf          time.Time
	WeeklyUsage   []AppHours
	WeeklyHours   float64
	WeeklyLoss    float64
	ReferenceRate float64
}

type AdviceItem struct {
	Plugin          string
	ID              string
	Title           string
	Description     string
	App             string
	CurrentCost     float64
	PotentialSaving float64
	Difficulty      string
}

// AdviseOutput holds suggestions from every healthy advisor. Failures maps plugin name to the error that skipped it.
type AdviseOutput struct {
	Items    []AdviceItem
	Failures map[string]string
}
