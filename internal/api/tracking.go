package api

import (
	"net/http"
	"sort"
	"time"

	"github.com/gorilla/mux"

	"paymind/internal/modules/tracking/dto"
	"paymind/internal/platform/calendar"
)

type usageBody struct {
	Apps map[string]float64 `json:"apps"`
}

type usageView struct {
	ID           string  `json:"id"`
	App          string  `json:"app"`
	Hours        float64 `json:"hours"`
	Date         string  `json:"date"`
	EstValueLost float64 `json:"est_value_lost"`
}

type usageDayView struct {
	Date      string      `json:"date"`
	Entries   []usageView `json:"entries"`
	TotalLoss float64     `json:"total_loss"`
	Dropped   int         `json:"dropped"`
}

type usageListView struct {
	Entries    []usageView `json:"entries"`
	TotalHours float64     `json:"total_hours"`
	TotalLoss  float64     `json:"total_loss"`
}

type distractionBody struct {
	Pickups       int `json:"pickups"`
	Notifications int `json:"notifications"`
}

type distractionView struct {
	ID            string `json:"id"`
	Date          string `json:"date"`
	Pickups       int    `json:"pickups"`
	Notifications int    `json:"notifications"`
}

type focusBody struct {
	Date  string  `json:"date"`
	Type  string  `json:"type"`
	Hours float64 `json:"hours"`
}

type focusView struct {
	ID     string  `json:"id"`
	Type   string  `json:"type"`
	Hours  float64 `json:"hours"`
	Points int     `json:"points"`
	Date   string  `json:"date"`
}

type focusLogView struct {
	Activity      focusView `json:"activity"`
	AccruedHours  float64   `json:"accrued_hours"`
	AccruedPoints int       `json:"accrued_points"`
	AccruedMoney  float64   `json:"accrued_money"`
	WalletBalance float64   `json:"wallet_balance"`
	WalletStreak  int       `json:"wallet_streak"`
}

type focusListView struct {
	Activities  []focusView `json:"activities"`
	TotalHours  float64     `json:"total_hours"`
	TotalPoints int         `json:"total_points"`
}

type subscriptionBody struct {
	Name       string  `json:"name"`
	Cost       float64 `json:"cost"`
	UsageHours float64 `json:"usage_hours"`
}

type subscriptionView struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Cost         float64 `json:"cost"`
	UsageHours   float64 `json:"usage_hours"`
	CostPerHour  float64 `json:"cost_per_hour"`
	IsWorthwhile bool    `json:"is_worthwhile"`
	Advice       string  `json:"advice"`
}

type subscriptionListView struct {
	Subscriptions []subscriptionView `json:"subscriptions"`
	TotalMonthly  float64            `json:"total_monthly"`
}

// saveUsage replaces the screen time recorded for one day.
func (h *handler) saveUsage(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(mux.Vars(r)["date"])
	if err != nil {
		WriteDomainError(w, h.log, err)
		return
	}
	var body usageBody
	if err := decodeJSON(r, &body); err != nil {
		WriteDomainError(w, h.log, err)
		return
	}
	apps := make([]dto.AppHours, 0, len(body.Apps))
	for app, hours := range body.Apps {
		apps = append(apps, dto.AppHours{App: app, Hours: hours})
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].App < apps[j].App })

	out, err := h.Tracking.SaveScreenTime(r.Context(), dto.SaveScreenTimeInput{UserID: userID(r), Date: date, Apps: apps})
	if err != nil {
		WriteDomainError(w, h.log, err)
		return
	}
	WriteJSON(w, http.StatusOK, usageDayView{
		Date:      calendar.Format(out.Date),
		Entries:   usageViews(out.Entries),
		TotalLoss: out.TotalLoss,
		Dropped:   out.Dropped,
	})
}

func (h *handler) listUsage(w http.ResponseWriter, r *http.Request) {
	in, ok := h.rangeInput(w, r)
	if !ok {
		return
	}
	out, err := h.Tracking.ListUsage(r.Context(), in)
	if err != nil {
		WriteDomainError(w, h.log, err)
		return
	}
	WriteJSON(w, http.StatusOK, usageListView{Entries: usageViews(out.Entries), TotalHours: out.TotalHours, TotalLoss: out.TotalLoss})
}

func (h *handler) logDistractions(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(mux.Vars(r)["date"])
	if err != nil {
		WriteDomainError(w, h.log, err)
		return
	}
	var body distractionBody
	if err := decodeJSON(r, &body); err != nil {
		WriteDomainError(w, h.log, err)
		return
	}
	item, err := h.Tracking.LogDistractions(r.Context(), dto.LogDistractionsInput{
		UserID:            userID(r),
		Date:              date,
		PickupCount:       body.Pickups,
		NotificationCount: body.Notifications,
	})
	if err != nil {
		WriteDomainError(w, h.log, err)
		return
	}
	WriteJSON(w, http.StatusOK, distractionViewOf(item))
}

func (h *handler) listDistractions(w http.ResponseWriter, r *http.Request) {
	in, ok := h.rangeInput(w, r)
	if !ok {
		return
	}
	out, err := h.Tracking.ListDistractions(r.Context(), in)
	if err != nil {
		WriteDomainError(w, h.log, err)
		return
	}
	logs := make([]distractionView, 0, len(out.Logs))
	for _, l := range out.Logs {
		logs = append(logs, distractionViewOf(l))
	}
	WriteJSON(w, http.StatusOK, map[string]any{"logs": logs})
}

func (h *handler) logFocus(w http.ResponseWriter, r *http.Request) {
	var body focusBody
	if err := decodeJSON(r, &body); err != nil {
		WriteDomainError(w, h.log, err)
		return
	}
	date, err := dateParam(body.Date)
	if err != nil {
		WriteDomainError(w, h.log, err)
		return
	}
	out, err := h.Tracking.LogFocus(r.Context(), dto.LogFocusInput{UserID: userID(r), Date: date, Type: body.Type, Hours: body.Hours})
	if err != nil {
		WriteDomainError(w, h.log, err)
		return
	}
	WriteJSON(w, http.StatusCreated, focusLogView{
		Activity:      focusViewOf(out.Activity),
		AccruedHours:  out.AccruedHours,
		AccruedPoints: out.AccruedPoints,
		AccruedMoney:  out.AccruedMoney,
		WalletBalance: out.WalletBalance,
		WalletStreak:  out.WalletStreak,
	})
}

func (h *handler) listFocus(w http.ResponseWriter, r *http.Request) {
	in, ok := h.rangeInput(w, r)
	if !ok {
		return
	}
	out, err := h.Tracking.ListFocus(r.Context(), in)
	if err != nil {
		WriteDomainError(w, h.log, err)
		return
	}
	items := make([]focusView, 0, len(out.Activities))
	for _, a := range out.Activities {
		items = append(items, focusViewOf(a))
	}
	WriteJSON(w, http.StatusOK, focusListView{Activities: items, TotalHours: out.TotalHours, TotalPoints: out.TotalPoints})
}

func (h *handler) addSubscription(w http.ResponseWriter, r *http.Request) {
	var body subscriptionBody
	if err := decodeJSON(r, &body); err != nil {
		WriteDomainError(w, h.log, err)
		return
	}
	item, err := h.Tracking.AddSubscription(r.Context(), dto.AddSubscriptionInput{
		UserID:     userID(r),
		Name:       body.Name,
		Cost:       body.Cost,
		UsageHours: body.UsageHours,
	})
	if err != nil {
		WriteDomainError(w, h.log, err)
		return
	}
	WriteJSON(w, http.StatusCreated, subscriptionViewOf(item))
}

func (h *handler) listSubscriptions(w http.ResponseWriter, r *http.Request) {
	out, err := h.Tracking.ListSubscriptions(r.Context(), userID(r))
	if err != nil {
		WriteDomainError(w, h.log, err)
		return
	}
	items := make([]subscriptionView, 0, len(out.Subscriptions))
	for _, s := range out.Subscriptions {
		items = append(items, subscriptionViewOf(s))
	}
	WriteJSON(w, http.StatusOK, subscriptionListView{Subscriptions: items, TotalMonthly: out.TotalMonthly})
}

func (h *handler) deleteSubscription(w http.ResponseWriter, r *http.Request) {
	err := h.Tracking.DeleteSubscription(r.Context(), dto.DeleteInput{UserID: userID(r), ID: mux.Vars(r)["id"]})
	if err != nil {
		WriteDomainError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) rangeInput(w http.ResponseWriter, r *http.Request) (dto.RangeInput, bool) {
	from, to, err := rangeParams(r)
	if err != nil {
		WriteDomainError(w, h.log, err)
		return dto.RangeInput{}, false
	}
	return dto.RangeInput{UserID: userID(r), From: from, To: to}, true
}

func usageViews(items []dto.UsageItem) []usageView {
	out := make([]usageView, 0, len(items))
	for _, e := range items {
		out = append(out, usageView{ID: e.ID, App: e.App, Hours: e.Hours, Date: dayString(e.Date), EstValueLost: e.EstValueLost})
	}
	return out
}

func distractionViewOf(d dto.DistractionItem) distractionView {
	return distractionView{ID: d.ID, Date: dayString(d.Date), Pickups: d.PickupCount, Notifications: d.NotificationCount}
}

func focusViewOf(a dto.FocusItem) focusView {
	return focusView{ID: a.ID, Type: a.Type, Hours: a.Hours, Points: a.Points, Date: dayString(a.Date)}
}

func subscriptionViewOf(s dto.SubscriptionItem) subscriptionView {
	return subscriptionView{
		ID:           s.ID,
		Name:         s.Name,
		Cost:         s.Cost,
		UsageHours:   s.UsageHours,
		CostPerHour:  s.CostPerHour,
		IsWorthwhile: s.IsWorthwhile,
		Advice:       s.Advice,
	}
}

func dayString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return calendar.Format(t)
}
