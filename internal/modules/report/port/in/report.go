package in

import (
	"context"

	"paymind/internal/modules/report/dto"
)

type Usecase interface {
	Build(ctx context.Context, input dto.BuildInput) (dto.ReportOutput, error)
	Render(ctx context.Context, input dto.RenderInput) (dto.RenderOutput, error)
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
}
