package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"paymind/internal/modules/wallet/dto"
)

type achievementView struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Unlocked    bool   `json:"unlocked"`
}

type walletView struct {
	UserID         string            `json:"user_id"`
	TotalSavedTime float64           `json:"total_saved_time"`
	TotalPoints    int               `json:"total_points"`
	MoneySaved     float64           `json:"money_saved"`
	StreakDays     int               `json:"streak_days"`
	UpdatedAt      *time.Time        `json:"updated_at,omitempty"`
	Achievements   []achievementView `json:"achievements"`
}

type goalBody struct {
	Title        string  `json:"title"`
	TargetAmount float64 `json:"target_amount"`
}

type allocateBody struct {
	Amount float64 `json:"amount"`
}

type goalView struct {
	ID                   string    `json:"id"`
	Title                string    `json:"title"`
	TargetAmount         float64   `json:"target_amount"`
	CurrentSaved         float64   `json:"current_saved"`
	Remaining            float64   `json:"remaining"`
	Progress             float64   `json:"progress"`
	EstimatedDaysDelayed int       `json:"estimated_days_delayed"`
	Completed            bool      `json:"completed"`
	CreatedAt            time.Time `json:"created_at"`
}

type goalListView struct {
	Goals       []goalView `json:"goals"`
	TotalTarget float64    `json:"total_target"`
	TotalSaved  float64    `json:"total_saved"`
}

type allocateView struct {
	Goal     goalView   `json:"goal"`
	Wallet   walletView `json:"wallet"`
	Attempts int        `json:"attempts"`
}

func (h *handler) getWallet(w http.ResponseWriter, r *http.Request) {
	out, err := h.Wallet.GetWallet(r.Context(), userID(r))
	if err != nil {
		WriteDomainError(w, h.log, err)
		return
	}
	WriteJSON(w, http.StatusOK, walletViewOf(out))
}

func (h *handler) addGoal(w http.ResponseWriter, r *http.Request) {
	var body goalBody
	if err := decodeJSON(r, &body); err != nil {
		WriteDomainError(w, h.log, err)
		return
	}
	goal, err := h.Wallet.AddGoal(r.Context(), dto.AddGoalInput{UserID: userID(r), Title: body.Title, TargetAmount: body.TargetAmount})
	if err != nil {
		WriteDomainError(w, h.log, err)
		return
	}
	WriteJSON(w, http.StatusCreated, goalViewOf(goal))
}

func (h *handler) listGoals(w http.ResponseWriter, r *http.Request) {
	out, err := h.Wallet.ListGoals(r.Context(), userID(r))
	if err != nil {
		WriteDomainError(w, h.log, err)
		return
	}
	goals := make([]goalView, 0, len(out.Goals))
	for _, g := range out.Goals {
		goals = append(goals, goalViewOf(g))
	}
	WriteJSON(w, http.StatusOK, goalListView{Goals: goals, TotalTarget: out.TotalTarget, TotalSaved: out.TotalSaved})
}

func (h *handler) deleteGoal(w http.ResponseWriter, r *http.Request) {
	err := h.Wallet.DeleteGoal(r.Context(), dto.DeleteGoalInput{UserID: userID(r), GoalID: mux.Vars(r)["goalId"]})
	if err != nil {
		WriteDomainError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// allocate moves wallet money into a goal. Overdrawing answers 422.
func (h *handler) allocate(w http.ResponseWriter, r *http.Request) {
	var body allocateBody
	if err := decodeJSON(r, &body); err != nil {
		WriteDomainError(w, h.log, err)
		return
	}
	out, err := h.Wallet.AllocateToGoal(r.Context(), dto.AllocateInput{UserID: userID(r), GoalID: mux.Vars(r)["goalId"], Amount: body.Amount})
	if err != nil {
		WriteDomainError(w, h.log, err)
		return
	}
	WriteJSON(w, http.StatusOK, allocateView{Goal: goalViewOf(out.Goal), Wallet: walletViewOf(out.Wallet), Attempts: out.Attempts})
}

func walletViewOf(out dto.WalletOutput) walletView {
	view := walletView{
		UserID:         out.UserID,
		TotalSavedTime: out.TotalSavedTime,
		TotalPoints:    out.TotalPoints,
		MoneySaved:     out.MoneySaved,
		StreakDays:     out.StreakDays,
		Achievements:   make([]achievementView, 0, len(out.Achievements)),
	}
	if !out.UpdatedAt.IsZero() {
		updated := out.UpdatedAt
		view.UpdatedAt = &updated
	}
	for _, a := range out.Achievements {
		view.Achievements = append(view.Achievements, achievementView{Key: a.Key, Title: a.Title, Description: a.Description, Unlocked: a.Unlocked})
	}
	return view
}

func goalViewOf(g dto.GoalItem) goalView {
	return goalView{
		ID:                   g.ID,
		Title:                g.Title,
		TargetAmount:         g.TargetAmount,
		CurrentSaved:         g.CurrentSaved,
		Remaining:            g.Remaining,
		Progress:             g.Progress,
		EstimatedDaysDelayed: g.EstimatedDaysDelayed,
		Completed:            g.Completed,
		CreatedAt:            g.CreatedAt,
	}
}
