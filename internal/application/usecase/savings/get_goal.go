// Package savings contains the savings goal use cases.
package savings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
)

// GetGoalUseCase handles fetching one goal.
type GetGoalUseCase struct {
	goalRepo adapter.SavingsGoalRepository
}

// NewGetGoalUseCase creates a new GetGoalUseCase instance.
func NewGetGoalUseCase(goalRepo adapter.SavingsGoalRepository) *GetGoalUseCase {
	return &GetGoalUseCase{
		goalRepo: goalRepo,
	}
}

// Execute returns the owned goal.
func (uc *GetGoalUseCase) Execute(ctx context.Context, goalID, userID uuid.UUID) (*entity.SavingsGoal, error) {
	goal, err := uc.goalRepo.FindByID(ctx, goalID, userID)
	if err != nil {
		if errors.Is(err, domainerror.ErrSavingsGoalNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("failed to find savings goal: %w", err)
	}
	return goal, nil
}
