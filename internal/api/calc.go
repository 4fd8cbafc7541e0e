package api

import (
	"fmt"
	"net/http"
	"strconv"

	advisordto "paymind/internal/modules/advisor/dto"
	"paymind/internal/modules/valuation/dto"
	apperrors "paymind/internal/platform/errors"
)

type rateView struct {
	Key  string  `json:"key"`
	Rate float64 `json:"rate"`
}

type ratesView struct {
	BaseHourlyValue     float64    `json:"base_hourly_value"`
	NeutralHourlyValue  float64    `json:"neutral_hourly_value"`
	ReferenceHourlyRate float64    `json:"reference_hourly_rate"`
	ProfitWeights       []rateView `json:"profit_weights"`
	CorporateRates      []rateView `json:"corporate_rates"`
	FocusRates          []rateView `json:"focus_rates"`
}

type lossView struct {
	App             string  `json:"app"`
	Hours           float64 `json:"hours"`
	KnownApp        bool    `json:"known_app"`
	ProfitWeight    float64 `json:"profit_weight"`
	HourlyValue     float64 `json:"hourly_value"`
	Loss            float64 `json:"loss"`
	CorporateProfit float64 `json:"corporate_profit"`
	LossText        string  `json:"loss_text"`
}

type roiView struct {
	Cost         float64 `json:"cost"`
	UsageHours   float64 `json:"usage_hours"`
	CostPerHour  float64 `json:"cost_per_hour"`
	IsWorthwhile bool    `json:"is_worthwhile"`
	Verdict      string  `json:"verdict"`
	Advice       string  `json:"advice"`
}

type pointsView struct {
	Activity string  `json:"activity"`
	Known    bool    `json:"known"`
	Rate     float64 `json:"rate"`
	Points   float64 `json:"points"`
}

type debtView struct {
	Pickups       int     `json:"pickups"`
	Notifications int     `json:"notifications"`
	Minutes       float64 `json:"minutes"`
	Value         float64 `json:"value"`
	Rate          float64 `json:"rate"`
}

type pluginView struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Enabled bool   `json:"enabled"`
	Binary  string `json:"binary"`
}

func (h *handler) rates(w http.ResponseWriter, r *http.Request) {
	out, err := h.Valuation.Rates(r.Context())
	if err != nil {
		WriteDomainError(w, h.log, err)
		return
	}
	WriteJSON(w, http.StatusOK, ratesView{
		BaseHourlyValue:     out.BaseHourlyValue,
		NeutralHourlyValue:  out.NeutralHourlyValue,
		ReferenceHourlyRate: out.ReferenceHourlyRate,
		ProfitWeights:       rateViews(out.ProfitWeights),
		CorporateRates:      rateViews(out.CorporateRates),
		FocusRates:          rateViews(out.FocusRates),
	})
}

func (h *handler) calcLoss(w http.ResponseWriter, r *http.Request) {
	hours, err := floatParam(r, "hours")
	if err != nil {
		WriteDomainError(w, h.log, err)
		return
	}
	out, err := h.Valuation.QuoteLoss(r.Context(), dto.LossInput{App: r.URL.Query().Get("app"), Hours: hours})
	if err != nil {
		WriteDomainError(w, h.log, err)
		return
	}
	WriteJSON(w, http.StatusOK, lossView(out))
}

func (h *handler) calcROI(w http.ResponseWriter, r *http.Request) {
	cost, err := floatParam(r, "cost")
	if err != nil {
		WriteDomainError(w, h.log, err)
		return
	}
	usage, err := floatParam(r, "usage_hours")
	if err != nil {
		WriteDomainError(w, h.log, err)
		return
	}
	out, err := h.Valuation.QuoteROI(r.Context(), dto.ROIInput{Cost: cost, UsageHours: usage})
	if err != nil {
		WriteDomainError(w, h.log, err)
		return
	}
	WriteJSON(w, http.StatusOK, roiView(out))
}

func (h *handler) calcPoints(w http.ResponseWriter, r *http.Request) {
	hours, err := floatParam(r, "hours")
	if err != nil {
		WriteDomainError(w, h.log, err)
		return
	}
	out, err := h.Valuation.QuotePoints(r.Context(), dto.PointsInput{Activity: r.URL.Query().Get("activity"), Hours: hours})
	if err != nil {
		WriteDomainError(w, h.log, err)
		return
	}
	WriteJSON(w, http.StatusOK, pointsView(out))
}

func (h *handler) calcDebt(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pickups, err := strconv.Atoi(q.Get("pickups"))
	if err != nil {
		WriteDomainError(w, h.log, fmt.Errorf("%w: query parameter \"pickups\": %v", apperrors.ErrInvalidInput, err))
		return
	}
	notifications, err := strconv.Atoi(q.Get("notifications"))
	if err != nil {
		WriteDomainError(w, h.log, fmt.Errorf("%w: query parameter \"notifications\": %v", apperrors.ErrInvalidInput, err))
		return
	}
	out, err := h.Valuation.QuoteDebt(r.Context(), dto.DebtInput{Pickups: pickups, Notifications: notifications})
	if err != nil {
		WriteDomainError(w, h.log, err)
		return
	}
	WriteJSON(w, http.StatusOK, debtView(out))
}

func (h *handler) listPlugins(w http.ResponseWriter, r *http.Request) {
	var plugins []advisordto.PluginInfo
	if h.Advisor != nil {
		var err error
		plugins, err = h.Advisor.List(r.Context())
		if err != nil {
			WriteDomainError(w, h.log, err)
			return
		}
	}
	views := make([]pluginView, 0, len(plugins))
	for _, p := range plugins {
		views = append(views, pluginView(p))
	}
	WriteJSON(w, http.StatusOK, map[string]any{"plugins": views})
}

func rateViews(rows []dto.RateRow) []rateView {
	out := make([]rateView, 0, len(rows))
	for _, row := range rows {
		out = append(out, rateView(row))
	}
	return out
}
