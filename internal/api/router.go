package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	advisorin "paymind/internal/modules/advisor/port/in"
	insightsin "paymind/internal/modules/insights/port/in"
	reportin "paymind/internal/modules/report/port/in"
	trackingin "paymind/internal/modules/tracking/port/in"
	valuationin "paymind/internal/modules/valuation/port/in"
	walletin "paymind/internal/modules/wallet/port/in"
	"paymind/internal/platform/calendar"
	apperrors "paymind/internal/platform/errors"
)

// Deps are the usecases served over HTTP. Advisor is optional.
type Deps struct {
	Tracking  trackingin.Usecase
	Wallet    walletin.Usecase
	Insights  insightsin.Usecase
	Report    reportin.Usecase
	Valuation valuationin.Usecase
	Advisor   advisorin.Usecase
	Log       zerolog.Logger
}

type handler struct {
	Deps
	log zerolog.Logger
}

func NewRouter(deps Deps) *mux.Router {
	h := &handler{Deps: deps, log: deps.Log.With().Str("component", "http").Logger()}

	root := mux.NewRouter()
	root.Use(Recover(h.log), RequestLog(h.log))
	root.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		WriteError(w, http.StatusNotFound, "route not found")
	})
	root.HandleFunc("/healthz", h.health).Methods(http.MethodGet)

	apiRouter := root.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/rates", h.rates).Methods(http.MethodGet)
	apiRouter.HandleFunc("/calc/loss", h.calcLoss).Methods(http.MethodGet)
	apiRouter.HandleFunc("/calc/roi", h.calcROI).Methods(http.MethodGet)
	apiRouter.HandleFunc("/calc/points", h.calcPoints).Methods(http.MethodGet)
	apiRouter.HandleFunc("/calc/debt", h.calcDebt).Methods(http.MethodGet)
	apiRouter.HandleFunc("/plugins", h.listPlugins).Methods(http.MethodGet)

	user := apiRouter.PathPrefix("/users/{userId}").Subrouter()
	user.HandleFunc("/usage", h.listUsage).Methods(http.MethodGet)
	user.HandleFunc("/usage/{date}", h.saveUsage).Methods(http.MethodPut)
	user.HandleFunc("/distractions", h.listDistractions).Methods(http.MethodGet)
	user.HandleFunc("/distractions/{date}", h.logDistractions).Methods(http.MethodPut)
	user.HandleFunc("/focus", h.listFocus).Methods(http.MethodGet)
	user.HandleFunc("/focus", h.logFocus).Methods(http.MethodPost)
	user.HandleFunc("/subscriptions", h.listSubscriptions).Methods(http.MethodGet)
	user.HandleFunc("/subscriptions", h.addSubscription).Methods(http.MethodPost)
	user.HandleFunc("/subscriptions/{id}", h.deleteSubscription).Methods(http.MethodDelete)
	user.HandleFunc("/wallet", h.getWallet).Methods(http.MethodGet)
	user.HandleFunc("/goals", h.listGoals).Methods(http.MethodGet)
	user.HandleFunc("/goals", h.addGoal).Methods(http.MethodPost)
	user.HandleFunc("/goals/{goalId}", h.deleteGoal).Methods(http.MethodDelete)
	user.HandleFunc("/goals/{goalId}/allocate", h.allocate).Methods(http.MethodPost)
	user.HandleFunc("/dashboard", h.dashboard).Methods(http.MethodGet)
	user.HandleFunc("/recommendations", h.recommendations).Methods(http.MethodGet)
	user.HandleFunc("/report", h.report).Methods(http.MethodGet)
	return root
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// dateParam parses an optional YYYY-MM-DD value. Empty yields the zero time, which
// the usecases read as today.
func dateParam(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	t, err := calendar.Parse(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return t, nil
}

func rangeParams(r *http.Request) (time.Time, time.Time, error) {
	q := r.URL.Query()
	from, err := dateParam(q.Get("from"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := dateParam(q.Get("to"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

func floatParam(r *http.Request, name string) (float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, fmt.Errorf("%w: query parameter %q is required", apperrors.ErrInvalidInput, name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: query parameter %q: %v", apperrors.ErrInvalidInput, name, err)
	}
	return v, nil
}
