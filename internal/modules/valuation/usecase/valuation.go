package usecase

import (
	"context"
	"fmt"
	"strings"

	insights "paymind/internal/modules/insights/domain"
	"paymind/internal/modules/valuation/domain"
	"paymind/internal/modules/valuation/dto"
	valuationin "paymind/internal/modules/valuation/port/in"
	apperrors "paymind/internal/platform/errors"
)

type Interactor struct {
	engine domain.Engine
}

func NewInteractor(engine domain.Engine) valuationin.Usecase {
	return &Interactor{engine: engine}
}

func (i *Interactor) QuoteLoss(_ context.Context, input dto.LossInput) (dto.LossOutput, error) {
	app := strings.TrimSpace(input.App)
	if app == "" {
		return dto.LossOutput{}, fmt.Errorf("%w: app name is required", apperrors.ErrInvalidInput)
	}
	loss, err := i.engine.TimeLoss(app, input.Hours)
	if err != nil {
		return dto.LossOutput{}, err
	}
	profit, err := i.engine.CorporateProfit(app, input.Hours)
	if err != nil {
		return dto.LossOutput{}, err
	}
	_, known := i.engine.Config().ProfitWeights.Lookup(domain.App(app))
	weight := i.engine.ProfitWeight(app)
	return dto.LossOutput{
		App:             app,
		Hours:           input.Hours,
		KnownApp:        known,
		ProfitWeight:    weight,
		HourlyValue:     i.engine.AttentionValue(weight),
		Loss:            loss,
		CorporateProfit: profit,
		LossText:        i.engine.FormatCurrency(loss),
	}, nil
}

func (i *Interactor) QuoteROI(_ context.Context, input dto.ROIInput) (dto.ROIOutput, error) {
	roi, err := i.engine.SubscriptionROI(input.Cost, input.UsageHours)
	if err != nil {
		return dto.ROIOutput{}, err
	}
	return dto.ROIOutput{
		Cost:         input.Cost,
		UsageHours:   input.UsageHours,
		CostPerHour:  roi.CostPerHour,
		IsWorthwhile: roi.IsWorthwhile,
		Verdict:      string(roi.Verdict),
		Advice:       roi.Advice,
	}, nil
}

func (i *Interactor) QuotePoints(_ context.Context, input dto.PointsInput) (dto.PointsOutput, error) {
	points, err := i.engine.FocusPoints(input.Activity, input.Hours)
	if err != nil {
		return dto.PointsOutput{}, err
	}
	rates := i.engine.Config().FocusPointRates
	rate, known := rates.Lookup(domain.ActivityType(input.Activity))
	if !known {
		rate = rates.Fallback()
	}
	return dto.PointsOutput{Activity: input.Activity, Known: known, Rate: rate, Points: points}, nil
}

// QuoteDebt values interruptions at the flat reference rate, not the weighted attention value.
func (i *Interactor) QuoteDebt(_ context.Context, input dto.DebtInput) (dto.DebtOutput, error) {
	rate := i.engine.ReferenceHourlyRate()
	debt, err := insights.DistractionDebt(input.Pickups, input.Notifications, rate)
	if err != nil {
		return dto.DebtOutput{}, err
	}
	return dto.DebtOutput{
		Pickups:       input.Pickups,
		Notifications: input.Notifications,
		Minutes:       debt.Minutes,
		Value:         debt.Value,
		Rate:          rate,
	}, nil
}

func (i *Interactor) Rates(_ context.Context) (dto.RatesOutput, error) {
	cfg := i.engine.Config()
	out := dto.RatesOutput{
		BaseHourlyValue:     i.engine.BaseHourlyValue(),
		NeutralHourlyValue:  i.engine.AttentionValue(1.0),
		ReferenceHourlyRate: i.engine.ReferenceHourlyRate(),
	}
	for _, app := range cfg.ProfitWeights.Keys() {
		out.ProfitWeights = append(out.ProfitWeights, dto.RateRow{Key: string(app), Rate: cfg.ProfitWeights.Rate(app)})
	}
	for _, app := range cfg.CorporateProfitRates.Keys() {
		out.CorporateRates = append(out.CorporateRates, dto.RateRow{Key: string(app), Rate: cfg.CorporateProfitRates.Rate(app)})
	}
	for _, activity := range cfg.FocusPointRates.Keys() {
		out.FocusRates = append(out.FocusRates, dto.RateRow{Key: string(activity), Rate: cfg.FocusPointRates.Rate(activity)})
	}
	return out, nil
}

func (i *Interactor) FormatCurrency(amount float64) string {
	return i.engine.FormatCurrency(amount)
}
