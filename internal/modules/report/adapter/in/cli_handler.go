package in

import (
	"context"

	"paymind/internal/modules/report/dto"
	reportin "paymind/internal/modules/report/port/in"
)

type CLIHandler struct {
	usecase reportin.Usecase
}

func NewCLIHandler(usecase reportin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Build(ctx context.Context, input dto.BuildInput) (dto.ReportOutput, error) {
	return h.usecase.Build(ctx, input)
}

func (h CLIHandler) Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	return h.usecase.Export(ctx, input)
}

func (h CLIHandler) Render(ctx context.Context, input dto.RenderInput) (dto.RenderOutput, error) {
	return h.usecase.Render(ctx, input)
}
