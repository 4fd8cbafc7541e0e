package api

import (
	"net/http"
	"strconv"

	"paymind/internal/modules/insights/dto"
	reportdto "paymind/internal/modules/report/dto"
)

type appUsageView struct {
	App   string  `json:"app"`
	Hours float64 `json:"hours"`
	Loss  float64 `json:"loss"`
}

type distractionStatsView struct {
	Pickups         int     `json:"pickups"`
	Notifications   int     `json:"notifications"`
	DebtMinutes     float64 `json:"debt_minutes"`
	DebtValue       float64 `json:"debt_value"`
	LowPickupStreak int     `json:"low_pickup_streak"`
	DaysLogged      int     `json:"days_logged"`
}

type dashboardView struct {
	AsOf                string               `json:"as_of"`
	TodayHours          float64              `json:"today_hours"`
	TodayLoss           float64              `json:"today_loss"`
	WeekHours           float64              `json:"week_hours"`
	WeekLoss            float64              `json:"week_loss"`
	WeekCorporateProfit float64              `json:"week_corporate_profit"`
	TopApp              string               `json:"top_app,omitempty"`
	TopAppHours         float64              `json:"top_app_hours"`
	WeeklyApps          []appUsageView       `json:"weekly_apps"`
	FocusTodayHours     float64              `json:"focus_today_hours"`
	FocusTodayPoints    int                  `json:"focus_today_points"`
	FocusWeekHours      float64              `json:"focus_week_hours"`
	FocusWeekPoints     int                  `json:"focus_week_points"`
	Distractions        distractionStatsView `json:"distractions"`
	SubscriptionCount   int                  `json:"subscription_count"`
	SubscriptionMonthly float64              `json:"subscription_monthly"`
}

type recommendationView struct {
	ID              string  `json:"id"`
	Kind            string  `json:"kind"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	App             string  `json:"app,omitempty"`
	Alternative     string  `json:"alternative,omitempty"`
	CurrentCost     float64 `json:"current_cost"`
	PotentialSaving float64 `json:"potential_saving"`
	Timeframe       string  `json:"timeframe"`
	Difficulty      string  `json:"difficulty"`
	Source          string  `json:"source"`
}

type planView struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	DailyTimeSaving float64  `json:"daily_time_saving"`
	MonthlySaving   float64  `json:"monthly_saving"`
	Steps           []string `json:"steps"`
}

type recommendationsView struct {
	AsOf                 string               `json:"as_of"`
	WeekLoss             float64              `json:"week_loss"`
	Items                []recommendationView `json:"items"`
	TotalPotentialSaving float64              `json:"total_potential_saving"`
	Plans                []planView           `json:"plans"`
	AdvisorFailures      []string             `json:"advisor_failures,omitempty"`
}

func (h *handler) dashboard(w http.ResponseWriter, r *http.Request) {
	asOf, err := dateParam(r.URL.Query().Get("as_of"))
	if err != nil {
		WriteDomainError(w, h.log, err)
		return
	}
	out, err := h.Insights.Dashboard(r.Context(), dto.AsOfInput{UserID: userID(r), AsOf: asOf})
	if err != nil {
		WriteDomainError(w, h.log, err)
		return
	}
	apps := make([]appUsageView, 0, len(out.WeeklyApps))
	for _, a := range out.WeeklyApps {
		apps = append(apps, appUsageView{App: a.App, Hours: a.Hours, Loss: a.Loss})
	}
	d := out.Distractions
	WriteJSON(w, http.StatusOK, dashboardView{
		AsOf:                dayString(out.AsOf),
		TodayHours:          out.TodayHours,
		TodayLoss:           out.TodayLoss,
		WeekHours:           out.WeekHours,
		WeekLoss:            out.WeekLoss,
		WeekCorporateProfit: out.WeekCorporateProfit,
		TopApp:              out.TopApp,
		TopAppHours:         out.TopAppHours,
		WeeklyApps:          apps,
		FocusTodayHours:     out.FocusTodayHours,
		FocusTodayPoints:    out.FocusTodayPoints,
		FocusWeekHours:      out.FocusWeekHours,
		FocusWeekPoints:     out.FocusWeekPoints,
		Distractions: distractionStatsView{
			Pickups:         d.Pickups,
			Notifications:   d.Notifications,
			DebtMinutes:     d.DebtMinutes,
			DebtValue:       d.DebtValue,
			LowPickupStreak: d.LowPickupStreak,
			DaysLogged:      d.DaysLogged,
		},
		SubscriptionCount:   out.SubscriptionCount,
		SubscriptionMonthly: out.SubscriptionMonthly,
	})
}

func (h *handler) recommendations(w http.ResponseWriter, r *http.Request) {
	asOf, err := dateParam(r.URL.Query().Get("as_of"))
	if err != nil {
		WriteDomainError(w, h.log, err)
		return
	}
	out, err := h.Insights.Recommendations(r.Context(), dto.AsOfInput{UserID: userID(r), AsOf: asOf})
	if err != nil {
		WriteDomainError(w, h.log, err)
		return
	}
	view := recommendationsView{
		AsOf:                 dayString(out.AsOf),
		WeekLoss:             out.WeekLoss,
		Items:                make([]recommendationView, 0, len(out.Items)),
		TotalPotentialSaving: out.TotalPotentialSaving,
		Plans:                make([]planView, 0, len(out.Plans)),
		AdvisorFailures:      out.AdvisorFailures,
	}
	for _, it := range out.Items {
		view.Items = append(view.Items, recommendationView{
			ID:              it.ID,
			Kind:            it.Kind,
			Title:           it.Title,
			Description:     it.Description,
			App:             it.App,
			Alternative:     it.Alternative,
			CurrentCost:     it.CurrentCost,
			PotentialSaving: it.PotentialSaving,
			Timeframe:       it.Timeframe,
			Difficulty:      it.Difficulty,
			Source:          it.Source,
		})
	}
	for _, p := range out.Plans {
		view.Plans = append(view.Plans, planView{
			ID:              p.ID,
			Title:           p.Title,
			Description:     p.Description,
			DailyTimeSaving: p.DailyTimeSaving,
			MonthlySaving:   p.MonthlySaving,
			Steps:           p.Steps,
		})
	}
	WriteJSON(w, http.StatusOK, view)
}

// report streams the rendered report. ?download=1 adds an attachment disposition.
func (h *handler) report(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	asOf, err := dateParam(q.Get("as_of"))
	if err != nil {
		WriteDomainError(w, h.log, err)
		return
	}
	out, err := h.Report.Render(r.Context(), reportdto.RenderInput{UserID: userID(r), AsOf: asOf, Format: q.Get("format")})
	if err != nil {
		WriteDomainError(w, h.log, err)
		return
	}
	w.Header().Set("Content-Type", out.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(out.Data)))
	if download, _ := strconv.ParseBool(q.Get("download")); download {
		w.Header().Set("Content-Disposition", `attachment; filename="`+out.FileName+`"`)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out.Data)
}
