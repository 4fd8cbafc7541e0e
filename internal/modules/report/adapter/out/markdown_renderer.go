package out

import (
	"fmt"
	"math"
	"strings"

	"paymind/internal/modules/report/domain"
	reportout "paymind/internal/modules/report/port/out"
	"paymind/internal/platform/calendar"
	"paymind/internal/platform/markdown"
	"paymind/internal/platform/money"
	"paymind/internal/platform/slug"
)

const (
	BlockStart = "<!-- paymind:report:start -->"
	BlockEnd   = "<!-- paymind:report:end -->"
)

type MarkdownRenderer struct {
	money money.Formatter
}

func NewMarkdownRenderer(formatter money.Formatter) reportout.Renderer {
	return MarkdownRenderer{money: formatter}
}

func (MarkdownRenderer) Format() domain.Format { return domain.FormatMarkdown }

// Render writes a frontmatter document whose generated part sits inside a managed block, so a
// re-export over an annotated file only replaces that block.
func (r MarkdownRenderer) Render(report domain.Report) ([]byte, error) {
	meta := map[string]any{
		"id":           "report-" + slug.Make(report.UserID) + "-" + calendar.Format(report.AsOf),
		"title":        "PayMind Attention Report",
		"user":         report.UserID,
		"as_of":        calendar.Format(report.AsOf),
		"generated_at": report.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z"),
		"screen_hours": round1(report.Summary.ScreenHours),
		"value_lost":   round1(report.Summary.ValueLost),
	}
	body := "# PayMind Attention Report\n\n" + markdown.ReplaceManagedBlock("", BlockStart, BlockEnd, r.block(report))
	doc, err := markdown.RenderFrontmatter(meta, body)
	if err != nil {
		return nil, err
	}
	return []byte(doc), nil
}

func (r MarkdownRenderer) block(report domain.Report) string {
	var b strings.Builder
	f := r.money.Format
	s := report.Summary

	b.WriteString("## Summary\n\n| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Total screen time | %.1fh |\n", s.ScreenHours)
	fmt.Fprintf(&b, "| Attention value lost | %s |\n", f(s.ValueLost))
	fmt.Fprintf(&b, "| Focus hours | %.1fh |\n", s.FocusHours)
	fmt.Fprintf(&b, "| Monthly subscriptions | %s |\n", f(s.SubscriptionMonthly))

	w := report.Wallet
	b.WriteString("\n## Attention Wallet\n\n")
	fmt.Fprintf(&b, "- Money saved: %s\n- Focus points: %d\n- Streak days: %d\n- Total saved time: %.1fh\n", f(w.MoneySaved), w.TotalPoints, w.StreakDays, w.TotalSavedTime)
	if len(w.Unlocked) > 0 {
		fmt.Fprintf(&b, "- Achievements: %s\n", strings.Join(w.Unlocked, ", "))
	}

	if len(report.TopApps) > 0 {
		b.WriteString("\n## Top Apps by Usage\n\n")
		for n, a := range report.TopApps {
			fmt.Fprintf(&b, "%d. %s: %.1fh\n", n+1, a.App, a.Hours)
		}
	}

	if d := report.Distractions; d.DaysLogged > 0 {
		b.WriteString("\n## Distraction Summary\n\n")
		fmt.Fprintf(&b, "- Total phone pickups: %d\n- Total notifications: %d\n", d.Pickups, d.Notifications)
		fmt.Fprintf(&b, "- Avg daily pickups: %.1f\n- Avg daily notifications: %.1f\n", d.AvgDailyPickups, d.AvgDailyNotifications)
	}

	if len(report.Goals) > 0 {
		b.WriteString("\n## Goals Progress\n\n| Goal | Target | Saved | Progress |\n|---|---|---|---|\n")
		for _, g := range report.Goals {
			fmt.Fprintf(&b, "| %s | %s | %s | %.1f%% |\n", cell(g.Title), f(g.TargetAmount), f(g.CurrentSaved), g.Progress)
		}
	}

	if len(report.Subscriptions) > 0 {
		b.WriteString("\n## Subscriptions Analysis\n\n| Service | Monthly cost | Usage | Cost per hour | Verdict |\n|---|---|---|---|---|\n")
		for _, sub := range report.Subscriptions {
			verdict := "Expensive"
			if sub.Worthwhile {
				verdict = "Worth it"
			}
			fmt.Fprintf(&b, "| %s | %s | %.1fh | %s | %s |\n", cell(sub.Name), f(sub.Cost), sub.UsageHours, f(sub.CostPerHour), verdict)
		}
	}

	if len(report.Focus) > 0 {
		b.WriteString("\n## Focus Activities\n\n| Date | Activity | Hours | Points |\n|---|---|---|---|\n")
		for _, a := range report.Focus {
			fmt.Fprintf(&b, "| %s | %s | %.1fh | %d |\n", calendar.Format(a.Date), a.Type, a.Hours, a.Points)
		}
		if report.MoreFocus > 0 {
			fmt.Fprintf(&b, "\n... and %d more activities\n", report.MoreFocus)
		}
	}

	if len(report.Recommendations) > 0 {
		b.WriteString("\n## Recommendations\n\n")
		for _, rec := range report.Recommendations {
			fmt.Fprintf(&b, "- **%s** (save %s): %s\n", rec.Title, f(rec.PotentialSaving), rec.Description)
		}
	}

	b.WriteString("\n## Key Insights\n\n")
	b.WriteString(strings.Join(report.Insights, " "))
	b.WriteString("\n\n## Tips\n\n")
	for _, tip := range report.Tips {
		fmt.Fprintf(&b, "- %s\n", tip)
	}
	return strings.TrimRight(b.String(), "\n")
}

func cell(value string) string {
	return strings.ReplaceAll(value, "|", "/")
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
