package domain

import (
	"cmp"
	"fmt"
	"slices"

	valuation "paymind/internal/modules/valuation/domain"
)

type Kind string

const (
	KindSwitch Kind = "switch"
	KindReduce Kind = "reduce"
	KindInvest Kind = "invest"
	// KindAdvisor marks suggestions contributed by advisor plugins.
	KindAdvisor Kind = "advisor"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type Recommendation struct {
	ID              string
	Kind            Kind
	Title           string
	Description     string
	App             string
	Alternative     string
	CurrentCost     float64
	PotentialSaving float64
	Timeframe       string
	Difficulty      Difficulty
	Source          string
}

const (
	switchWeightAbove = 1.5
	switchHoursAbove  = 5
	switchSaveRatio   = 0.6
	reduceTopN        = 3
	reduceHoursAbove  = 10
	reduceSaveRatio   = 0.3
	investLossAbove   = 1000
	investDailyHours  = 2
)

var alternatives = map[string]string{
	"TikTok":    "YouTube (educational channels)",
	"Instagram": "Pinterest (inspiration boards)",
	"Facebook":  "LinkedIn (professional networking)",
	"Twitter":   "Newsletter subscriptions",
	"Snapchat":  "Direct messaging apps",
	"YouTube":   "Skillshare or Coursera",
}

func SuggestedAlternative(app string) string {
	if alt, ok := alternatives[app]; ok {
		return alt
	}
	return "Productive alternatives"
}

// GenerateRecommendations applies the weekly decision table. weeklyUsage must be ordered by
// descending hours, as AggregateByApp returns it. Output order is switch, reduce, invest; switch
// items follow the order in which the apps were first logged, reduce items follow hours.
func GenerateRecommendations(weeklyUsage []AppUsage, weeklyTotalLoss float64, engine valuation.Engine) []Recommendation {
	rate := engine.ReferenceHourlyRate()
	var out []Recommendation

	firstSeen := slices.Clone(weeklyUsage)
	slices.SortStableFunc(firstSeen, func(a, b AppUsage) int { return cmp.Compare(a.FirstSeen, b.FirstSeen) })
	for _, u := range firstSeen {
		weight, known := engine.Config().ProfitWeights.Lookup(valuation.App(u.App))
		if !known || weight <= switchWeightAbove || u.Hours <= switchHoursAbove {
			continue
		}
		cost := u.Hours * rate * weight
		difficulty := DifficultyMedium
		if u.App == string(valuation.AppTikTok) {
			difficulty = DifficultyHard
		}
		out = append(out, Recommendation{
			ID:              "switch-" + u.App,
			Kind:            KindSwitch,
			Title:           "Switch from " + u.App,
			Description:     fmt.Sprintf("%s has high attention extraction. Consider alternatives with lower profit margins.", u.App),
			App:             u.App,
			Alternative:     SuggestedAlternative(u.App),
			CurrentCost:     cost,
			PotentialSaving: cost * switchSaveRatio,
			Timeframe:       "weekly",
			Difficulty:      difficulty,
		})
	}

	top := weeklyUsage
	if len(top) > reduceTopN {
		top = top[:reduceTopN]
	}
	for _, u := range top {
		if u.Hours <= reduceHoursAbove {
			continue
		}
		cost := u.Hours * rate
		out = append(out, Recommendation{
			ID:              "reduce-" + u.App,
			Kind:            KindReduce,
			Title:           fmt.Sprintf("Reduce %s Usage", u.App),
			Description:     fmt.Sprintf("Cut your %s time by 30%% to reclaim valuable attention.", u.App),
			App:             u.App,
			CurrentCost:     cost,
			PotentialSaving: cost * reduceSaveRatio,
			Timeframe:       "weekly",
			Difficulty:      DifficultyMedium,
		})
	}

	if weeklyTotalLoss > investLossAbove {
		out = append(out, Recommendation{
			ID:              "invest-learning",
			Kind:            KindInvest,
			Title:           "Invest in Learning",
			Description:     "Redirect 2 hours daily from social media to skill-building courses.",
			CurrentCost:     weeklyTotalLoss,
			PotentialSaving: investDailyHours * 7 * rate,
			Timeframe:       "weekly",
			Difficulty:      DifficultyMedium,
		})
	}
	return out
}

func TotalPotentialSaving(recs []Recommendation) float64 {
	total := 0.0
	for _, r := range recs {
		total += r.PotentialSaving
	}
	return total
}

type CutBackPlan struct {
	ID              string
	Title           string
	Description     string
	DailyTimeSaving float64
	MonthlySaving   float64
	Steps           []string
}

// CutBackPlans returns the fixed habit plans valued at the reference rate over a 30-day month.
func CutBackPlans(referenceRate float64) []CutBackPlan {
	plans := []CutBackPlan{
		{
			ID:              "morning-routine",
			Title:           "Morning Phone-Free Hour",
			Description:     "Start your day without checking your phone for the first hour after waking up.",
			DailyTimeSaving: 1,
			Steps: []string{
				"Place phone in another room before sleep",
				"Use a physical alarm clock",
				"Create a morning routine: exercise, meditation, or reading",
				"Check phone only after breakfast",
			},
		},
		{
			ID:              "notification-diet",
			Title:           "Notification Diet",
			Description:     "Reduce interruptions by turning off non-essential notifications.",
			DailyTimeSaving: 0.5,
			Steps: []string{
				"Turn off notifications for social media apps",
				"Keep only calls, messages, and calendar alerts",
				"Use Do Not Disturb during focus hours",
				"Check apps intentionally, not reactively",
			},
		},
		{
			ID:              "evening-cutoff",
			Title:           "Evening Digital Sunset",
			Description:     "Stop using devices 2 hours before bedtime for better sleep and focus.",
			DailyTimeSaving: 2,
			Steps: []string{
				"Set a daily phone curfew at 8 PM",
				"Use blue light filters after sunset",
				"Replace screen time with reading or journaling",
				"Charge phone outside the bedroom",
			},
		},
	}
	for i := range plans {
		plans[i].MonthlySaving = plans[i].DailyTimeSaving * 30 * referenceRate
	}
	return plans
}
