package in

import (
	"context"

	"paymind/internal/modules/insights/dto"
	insightsin "paymind/internal/modules/insights/port/in"
)

type CLIHandler struct {
	usecase insightsin.Usecase
}

func NewCLIHandler(usecase insightsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Dashboard(ctx context.Context, input dto.AsOfInput) (dto.DashboardOutput, error) {
	return h.usecase.Dashboard(ctx, input)
}

func (h CLIHandler) Recommendations(ctx context.Context, input dto.AsOfInput) (dto.RecommendationsOutput, error) {
	return h.usecase.Recommendations(ctx, input)
}
