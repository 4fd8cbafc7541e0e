package in

import (
	"context"

	"paymind/internal/modules/valuation/dto"
)

type Usecase interface {
	QuoteLoss(ctx context.Context, input dto.LossInput) (dto.LossOutput, error)
	QuoteROI(ctx context.Context, input dto.ROIInput) (dto.ROIOutput, error)
	QuotePoints(ctx context.Context, input dto.PointsInput) (dto.PointsOutput, error)
	QuoteDebt(ctx context.Context, input dto.DebtInput) (dto.DebtOutput, error)
	Rates(ctx context.Context) (dto.RatesOutput, error)
	FormatCurrency(amount float64) string
}
