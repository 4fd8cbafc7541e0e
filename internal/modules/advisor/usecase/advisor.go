package usecase

import (
	"context"

	"paymind/internal/modules/advisor/dto"
	advisorin "paymind/internal/modules/advisor/port/in"
	"paymind/internal/modules/advisor/service"

	"github.com/rs/zerolog"
)

type Interactor struct {
	svc *service.AdvisorService
	log zerolog.Logger
}

func NewInteractor(svc *service.AdvisorService, log zerolog.Logger) advisorin.Usecase {
	return &Interactor{svc: svc, log: log.With().Str("component", "advisor").Logger()}
}

func (i *Interactor) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) Advise(ctx context.Context, input dto.AdviseInput) (dto.AdviseOutput, error) {
	out, err := i.svc.Advise(ctx, input)
	if err != nil {
		return dto.AdviseOutput{}, err
	}
	for name, reason := range out.Failures {
		i.log.Warn().Str("plugin", name).Str("reason", reason).Msg("advisor skipped")
	}
	i.log.Debug().Int("suggestions", len(out.Items)).Msg("advisors consulted")
	return out, nil
}
