package in

import (
	"context"

	"paymind/internal/modules/insights/dto"
)

type Usecase interface {
	Dashboard(ctx context.Context, input dto.AsOfInput) (dto.DashboardOutput, error)
	Recommendations(ctx context.Context, input dto.AsOfInput) (dto.RecommendationsOutput, error)
}
