package service

import (
	"fmt"
	"strings"

	"paymind/internal/modules/wallet/domain"
	"paymind/internal/platform/clock"
	apperrors "paymind/internal/platform/errors"
	"paymind/internal/platform/id"
)

type WalletService struct {
	clock  clock.Clock
	idGen  id.Generator
	ledger domain.Ledger
}

func NewWalletService(clock clock.Clock, idGen id.Generator, ledger domain.Ledger) *WalletService {
	return &WalletService{clock: clock, idGen: idGen, ledger: ledger}
}

func (s *WalletService) Ledger() domain.Ledger { return s.ledger }

func (s *WalletService) Clock() clock.Clock { return s.clock }

// NewGoal validates a goal and estimates its days from the full target.
func (s *WalletService) NewGoal(userID, title string, target float64) (domain.Goal, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.Goal{}, fmt.Errorf("%w: user id is required", apperrors.ErrInvalidInput)
	}
	goal := domain.Goal{
		ID:           s.idGen.New(),
		UserID:       userID,
		Title:        strings.TrimSpace(title),
		TargetAmount: target,
		CreatedAt:    s.clock.Now(),
	}
	if err := goal.Validate(); err != nil {
		return domain.Goal{}, err
	}
	goal.EstimatedDaysDelayed = s.ledger.DaysToGoal(goal.Remaining())
	return goal, nil
}
