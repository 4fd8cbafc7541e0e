package in

import (
	"context"

	"paymind/internal/modules/advisor/dto"
	advisorin "paymind/internal/modules/advisor/port/in"
)

type CLIHandler struct {
	usecase advisorin.Usecase
}

func NewCLIHandler(usecase advisorin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return h.usecase.Doctor(ctx)
}
