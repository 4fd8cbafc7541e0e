package out

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"paymind/internal/modules/report/domain"
	reportout "paymind/internal/modules/report/port/out"
	"paymind/internal/platform/calendar"
	"paymind/internal/platform/money"
)

// Layout in points on A4 portrait.
const (
	pageMargin  = 50
	bodySize    = 11
	headingSize = 14
	titleSize   = 18
	lineLeading = 15
)

type pdfLine struct {
	text string
	bold bool
	size float64
}

// PDFRenderer lays the report out with fpdf in the core Helvetica faces.
type PDFRenderer struct {
	money money.Formatter
}

func NewPDFRenderer(formatter money.Formatter) reportout.Renderer {
	return PDFRenderer{money: formatter}
}

func (PDFRenderer) Format() domain.Format { return domain.FormatPDF }

func (r PDFRenderer) Render(report domain.Report) ([]byte, error) {
	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(true, pageMargin)
	doc.SetTitle("PayMind Attention Report", true)
	doc.SetAuthor(report.UserID, true)
	doc.SetCreator("paymind", true)
	doc.SetCatalogSort(true)
	if !report.GeneratedAt.IsZero() {
		doc.SetCreationDate(report.GeneratedAt)
	}
	doc.AddPage()
	for _, l := range r.lines(report) {
		if strings.TrimSpace(l.text) == "" {
			doc.Ln(lineLeading)
			continue
		}
		style := ""
		if l.bold {
			style = "B"
		}
		doc.SetFont("Helvetica", style, l.size)
		doc.MultiCell(0, lineLeading, winAnsi(l.text), "", "L", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r PDFRenderer) lines(report domain.Report) []pdfLine {
	f := r.money.Format
	var out []pdfLine
	heading := func(text string) {
		out = append(out, pdfLine{}, pdfLine{text: text, bold: true, size: headingSize})
	}
	body := func(format string, args ...any) {
		out = append(out, pdfLine{text: fmt.Sprintf(format, args...), size: bodySize})
	}

	out = append(out, pdfLine{text: "PayMind Attention Report", bold: true, size: titleSize})
	body("User %s, as of %s", report.UserID, calendar.Format(report.AsOf))

	s := report.Summary
	heading("Summary")
	body("Total screen time: %.1fh", s.ScreenHours)
	body("Attention value lost: %s", f(s.ValueLost))
	body("Focus hours: %.1fh", s.FocusHours)
	body("Monthly subscriptions: %s", f(s.SubscriptionMonthly))

	w := report.Wallet
	heading("Attention Wallet")
	body("Money saved: %s  Focus points: %d  Streak days: %d  Saved time: %.1fh", f(w.MoneySaved), w.TotalPoints, w.StreakDays, w.TotalSavedTime)

	if len(report.TopApps) > 0 {
		heading("Top Apps by Usage")
		for n, a := range report.TopApps {
			body("%d. %s: %.1fh", n+1, a.App, a.Hours)
		}
	}
	if d := report.Distractions; d.DaysLogged > 0 {
		heading("Distraction Summary")
		body("Pickups: %d  Notifications: %d  Avg daily pickups: %.1f  Avg daily notifications: %.1f", d.Pickups, d.Notifications, d.AvgDailyPickups, d.AvgDailyNotifications)
	}
	if len(report.Goals) > 0 {
		heading("Goals Progress")
		for _, g := range report.Goals {
			body("%s: %s of %s (%.1f%%)", g.Title, f(g.CurrentSaved), f(g.TargetAmount), g.Progress)
		}
	}
	if len(report.Subscriptions) > 0 {
		heading("Subscriptions Analysis")
		for _, sub := range report.Subscriptions {
			body("%s: %s monthly, %.1fh used, %s per hour", sub.Name, f(sub.Cost), sub.UsageHours, f(sub.CostPerHour))
		}
	}
	if len(report.Focus) > 0 {
		heading("Focus Activities")
		for _, a := range report.Focus {
			body("%s  %s  %.1fh  %d points", calendar.Format(a.Date), a.Type, a.Hours, a.Points)
		}
		if report.MoreFocus > 0 {
			body("... and %d more activities", report.MoreFocus)
		}
	}
	if len(report.Recommendations) > 0 {
		heading("Recommendations")
		for _, rec := range report.Recommendations {
			body("- %s (save %s): %s", rec.Title, f(rec.PotentialSaving), rec.Description)
		}
	}
	heading("Key Insights")
	body("%s", strings.Join(report.Insights, " "))
	heading("Tips")
	for _, tip := range report.Tips {
		body("- %s", tip)
	}
	return out
}

// winAnsi re-encodes text as Windows-1252 for the core fonts. The rupee sign has no code point
// there and is spelled out; other unmapped runes print as '?'.
func winAnsi(text string) string {
	var b strings.Builder
	for _, r := range text {
		if r == '₹' {
			b.WriteString("Rs.")
			continue
		}
		if c, ok := charmap.Windows1252.EncodeRune(r); ok {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('?')
	}
	return b.String()
}
