package domain

type Achievement struct {
	Key         string
	Title       string
	Description string
	Unlocked    bool
}

type achievementRule struct {
	key, title, description string
	unlocked                func(Wallet) bool
}

var achievementRules = []achievementRule{
	{"first_steps", "First Steps", "Track your first day of screen time", func(w Wallet) bool { return w.TotalSavedTime > 0 || w.TotalPoints > 0 }},
	{"week_warrior", "Week Warrior", "Track screen time for 7 consecutive days", func(w Wallet) bool { return w.StreakDays >= 7 }},
	{"money_saver", "Money Saver", "Save ₹1,000 worth of attention value", func(w Wallet) bool { return w.MoneySaved >= 1000 }},
	{"time_master", "Time Master", "Reclaim 24+ hours of attention", func(w Wallet) bool { return w.TotalSavedTime >= 24 }},
	{"focus_champion", "Focus Champion", "Earn 1,000+ focus points", func(w Wallet) bool { return w.TotalPoints >= 1000 }},
}

// Achievements evaluates every badge against the wallet in display order.
func Achievements(w Wallet) []Achievement {
	out := make([]Achievement, 0, len(achievementRules))
	for _, rule := range achievementRules {
		out = append(out, Achievement{
			Key:         rule.key,
			Title:       rule.title,
			Description: rule.description,
			Unlocked:    rule.unlocked(w),
		})
	}
	return out
}

func UnlockedCount(achievements []Achievement) int {
	n := 0
	for _, a := range achievements {
		if a.Unlocked {
			n++
		}
	}
	return n
}
