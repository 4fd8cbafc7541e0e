package domain

import (
	"fmt"
	"math"

	apperrors "paymind/internal/platform/errors"
	"paymind/internal/platform/money"
)

const (
	DefaultMonthlySalary           = 30000
	DefaultProductiveHoursPerMonth = 160
	DefaultPersonalFocusRatio      = 0.6

	// DefaultReferenceHourlyRate is the flat hourly value used for distraction debt, wallet
	// accrual and goal estimates. It is deliberately separate from the weighted attention value.
	DefaultReferenceHourlyRate = 187.5
	DefaultWorthwhileThreshold = 50
)

// Config is the immutable input of an Engine.
type Config struct {
	MonthlySalary           float64
	ProductiveHoursPerMonth float64
	PersonalFocusRatio      float64
	ReferenceHourlyRate     float64
	WorthwhileThreshold     float64
	ProfitWeights           RateTable[App]
	CorporateProfitRates    RateTable[App]
	FocusPointRates         RateTable[ActivityType]
	Currency                money.Formatter
}

func DefaultConfig() Config {
	return Config{
		MonthlySalary:           DefaultMonthlySalary,
		ProductiveHoursPerMonth: DefaultProductiveHoursPerMonth,
		PersonalFocusRatio:      DefaultPersonalFocusRatio,
		ReferenceHourlyRate:     DefaultReferenceHourlyRate,
		WorthwhileThreshold:     DefaultWorthwhileThreshold,
		ProfitWeights:           DefaultProfitWeights(),
		CorporateProfitRates:    DefaultCorporateProfitRates(),
		FocusPointRates:         DefaultFocusPointRates(),
		Currency:                money.Default(),
	}
}

func (c Config) Validate() error {
	if !(c.ProductiveHoursPerMonth > 0) || math.IsInf(c.ProductiveHoursPerMonth, 0) {
		return fmt.Errorf("%w: productive hours per month must be positive", apperrors.ErrValidation)
	}
	if err := RequireNonNegative("monthly salary", c.MonthlySalary); err != nil {
		return err
	}
	if err := RequireNonNegative("personal focus ratio", c.PersonalFocusRatio); err != nil {
		return err
	}
	if err := RequireNonNegative("reference hourly rate", c.ReferenceHourlyRate); err != nil {
		return err
	}
	return nil
}

// Engine converts usage quantities into currency or points. It holds no mutable state.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) (Engine, error) {
	if err := cfg.Validate(); err != nil {
		return Engine{}, err
	}
	return Engine{cfg: cfg}, nil
}

func DefaultEngine() Engine {
	return Engine{cfg: DefaultConfig()}
}

func (e Engine) Config() Config { return e.cfg }

func (e Engine) ReferenceHourlyRate() float64 { return e.cfg.ReferenceHourlyRate }

func (e Engine) BaseHourlyValue() float64 {
	return e.cfg.MonthlySalary / e.cfg.ProductiveHoursPerMonth
}

func (e Engine) AttentionValue(profitWeight float64) float64 {
	return e.BaseHourlyValue() * e.cfg.PersonalFocusRatio * profitWeight
}

func (e Engine) ProfitWeight(app string) float64 {
	return e.cfg.ProfitWeights.Rate(App(app))
}

func (e Engine) TimeLoss(app string, hours float64) (float64, error) {
	if err := RequireNonNegative("hours", hours); err != nil {
		return 0, err
	}
	return e.AttentionValue(e.ProfitWeight(app)) * hours, nil
}

func (e Engine) CorporateProfit(app string, hours float64) (float64, error) {
	if err := RequireNonNegative("hours", hours); err != nil {
		return 0, err
	}
	return e.cfg.CorporateProfitRates.Rate(App(app)) * hours, nil
}

// FocusPoints keeps the fractional result; rounding is the caller's choice.
func (e Engine) FocusPoints(activity string, hours float64) (float64, error) {
	if err := RequireNonNegative("hours", hours); err != nil {
		return 0, err
	}
	return e.cfg.FocusPointRates.Rate(ActivityType(activity)) * hours, nil
}

type Verdict string

const (
	VerdictWorthwhile Verdict = "worthwhile"
	VerdictExpensive  Verdict = "expensive"
)

type ROI struct {
	CostPerHour  float64
	IsWorthwhile bool
	Verdict      Verdict
	Advice       string
}

// SubscriptionROI attributes the whole cost to a single hour when no usage was recorded.
func (e Engine) SubscriptionROI(cost, usageHours float64) (ROI, error) {
	if err := RequireNonNegative("cost", cost); err != nil {
		return ROI{}, err
	}
	if err := RequireNonNegative("usage hours", usageHours); err != nil {
		return ROI{}, err
	}
	costPerHour := cost
	if usageHours > 0 {
		costPerHour = cost / usageHours
	}
	roi := ROI{CostPerHour: costPerHour, IsWorthwhile: costPerHour < e.cfg.WorthwhileThreshold}
	rate := e.FormatCurrency(costPerHour)
	if roi.IsWorthwhile {
		roi.Verdict = VerdictWorthwhile
		roi.Advice = fmt.Sprintf("Good value at %s/hour of entertainment.", rate)
	} else {
		roi.Verdict = VerdictExpensive
		roi.Advice = fmt.Sprintf("At %s/hour, consider reducing usage or finding alternatives.", rate)
	}
	return roi, nil
}

func (e Engine) FormatCurrency(amount float64) string {
	return e.cfg.Currency.Format(amount)
}

// RequireNonNegative rejects negative, NaN and infinite quantities.
func RequireNonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%w: %s must be a non-negative number, got %v", apperrors.ErrValidation, name, v)
	}
	return nil
}
