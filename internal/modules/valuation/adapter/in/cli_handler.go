package in

import (
	"context"

	"paymind/internal/modules/valuation/dto"
	valuationin "paymind/internal/modules/valuation/port/in"
)

type CLIHandler struct {
	usecase valuationin.Usecase
}

func NewCLIHandler(usecase valuationin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Loss(ctx context.Context, app string, hours float64) (dto.LossOutput, error) {
	return h.usecase.QuoteLoss(ctx, dto.LossInput{App: app, Hours: hours})
}

func (h CLIHandler) ROI(ctx context.Context, cost, usageHours float64) (dto.ROIOutput, error) {
	return h.usecase.QuoteROI(ctx, dto.ROIInput{Cost: cost, UsageHours: usageHours})
}

func (h CLIHandler) Points(ctx context.Context, activity string, hours float64) (dto.PointsOutput, error) {
	return h.usecase.QuotePoints(ctx, dto.PointsInput{Activity: activity, Hours: hours})
}

func (h CLIHandler) Debt(ctx context.Context, pickups, notifications int) (dto.DebtOutput, error) {
	return h.usecase.QuoteDebt(ctx, dto.DebtInput{Pickups: pickups, Notifications: notifications})
}

func (h CLIHandler) Rates(ctx context.Context) (dto.RatesOutput, error) {
	return h.usecase.Rates(ctx)
}

func (h CLIHandler) Money(amount float64) string {
	return h.usecase.FormatCurrency(amount)
}
