package in

import (
	"context"

	"paymind/internal/modules/advisor/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.PluginInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	Advise(ctx context.Context, input dto.AdviseInput) (dto.AdviseOutput, error)
}
