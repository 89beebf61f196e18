package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
)

// DeleteBudgetUseCase removes a budget.
type DeleteBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewDeleteBudgetUseCase creates a new DeleteBudgetUseCase instance.
func NewDeleteBudgetUseCase(budgetRepo adapter.BudgetRepository) *DeleteBudgetUseCase {
	return &DeleteBudgetUseCase{
		budgetRepo: budgetRepo,
	}
}

// Execute deletes the budget if the user owns it.
func (uc *DeleteBudgetUseCase) Execute(ctx context.Context, budgetID, userID uuid.UUID) error {
	if err := uc.budgetRepo.Delete(ctx, budgetID, userID); err != nil {
		if errors.Is(err, domainerror.ErrBudgetNotFound) {
			return notFound()
		}
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	return nil
}
