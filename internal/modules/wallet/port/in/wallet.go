package in

import (
	"context"

	"paymind/internal/modules/wallet/dto"
)

type Usecase interface {
	GetWallet(ctx context.Context, userID string) (dto.WalletOutput, error)
	Accrue(ctx context.Context, input dto.AccrueInput) (dto.AccrueOutput, error)
	AddGoal(ctx context.Context, input dto.AddGoalInput) (dto.GoalItem, error)
	ListGoals(ctx context.Context, userID string) (dto.GoalListOutput, error)
	DeleteGoal(ctx context.Context, input dto.DeleteGoalInput) error
	AllocateToGoal(ctx context.Context, input dto.AllocateInput) (dto.AllocateOutput, error)
}
