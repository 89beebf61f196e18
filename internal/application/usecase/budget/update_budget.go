package budget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
)

// UpdateBudgetInput represents a partial budget update.
type UpdateBudgetInput struct {
	BudgetID uuid.UUID
	UserID   uuid.UUID
	Amount   *decimal.Decimal
	Priority *entity.BudgetPriority
}

// UpdateBudgetUseCase changes the amount and priority of a budget.
type UpdateBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewUpdateBudgetUseCase creates a new UpdateBudgetUseCase instance.
func NewUpdateBudgetUseCase(budgetRepo adapter.BudgetRepository) *UpdateBudgetUseCase {
	return &UpdateBudgetUseCase{
		budgetRepo: budgetRepo,
	}
}

// Execute applies the update.
func (uc *UpdateBudgetUseCase) Execute(ctx context.Context, input UpdateBudgetInput) (*entity.Budget, error) {
	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
	}
	if input.Priority != nil && !input.Priority.IsValid() {
		_, err := priorityOrDefault(*input.Priority)
		return nil, err
	}

	budget, err := uc.budgetRepo.FindByID(ctx, input.BudgetID, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrBudgetNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("failed to find budget: %w", err)
	}

	if input.Amount != nil {
		budget.Amount = *input.Amount
	}
	if input.Priority != nil {
		budget.Priority = *input.Priority
	}
	budget.UpdatedAt = time.Now().UTC()

	if err := uc.budgetRepo.Update(ctx, budget); err != nil {
		if errors.Is(err, domainerror.ErrBudgetNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}
	return budget, nil
}
