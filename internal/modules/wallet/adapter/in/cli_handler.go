package in

import (
	"context"

	"paymind/internal/modules/wallet/dto"
	walletin "paymind/internal/modules/wallet/port/in"
)

type CLIHandler struct {
	usecase walletin.Usecase
}

func NewCLIHandler(usecase walletin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Wallet(ctx context.Context, userID string) (dto.WalletOutput, error) {
	return h.usecase.GetWallet(ctx, userID)
}

func (h CLIHandler) AddGoal(ctx context.Context, userID, title string, target float64) (dto.GoalItem, error) {
	return h.usecase.AddGoal(ctx, dto.AddGoalInput{UserID: userID, Title: title, TargetAmount: target})
}

func (h CLIHandler) ListGoals(ctx context.Context, userID string) (dto.GoalListOutput, error) {
	return h.usecase.ListGoals(ctx, userID)
}

func (h CLIHandler) DeleteGoal(ctx context.Context, userID, goalID string) error {
	return h.usecase.DeleteGoal(ctx, dto.DeleteGoalInput{UserID: userID, GoalID: goalID})
}

func (h CLIHandler) Allocate(ctx context.Context, userID, goalID string, amount float64) (dto.AllocateOutput, error) {
	return h.usecase.AllocateToGoal(ctx, dto.AllocateInput{UserID: userID, GoalID: goalID, Amount: amount})
}
