package budget

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
)

// ListBudgetsInput selects the month to list. Zero month and year mean the
// current month.
type ListBudgetsInput struct {
	UserID uuid.UUID
	Month  int
	Year   int
}

// ListBudgetsOutput represents the budgets of one month with their status.
type ListBudgetsOutput struct {
	Month    time.Time
	Statuses []*entity.BudgetStatus
}

// ListBudgetsUseCase lists budgets with spending evaluated.
type ListBudgetsUseCase struct {
	evaluator *Evaluator
	now       func() time.Time
}

// NewListBudgetsUseCase creates a new ListBudgetsUseCase instance.
func NewListBudgetsUseCase(evaluator *Evaluator) *ListBudgetsUseCase {
	return &ListBudgetsUseCase{
		evaluator: evaluator,
		now:       time.Now,
	}
}

// Execute evaluates the user's budgets for the requested month.
func (uc *ListBudgetsUseCase) Execute(ctx context.Context, input ListBudgetsInput) (*ListBudgetsOutput, error) {
	month, err := MonthOf(input.Month, input.Year, uc.now())
	if err != nil {
		return nil, err
	}

	statuses, err := uc.evaluator.Evaluate(ctx, input.UserID, month)
	if err != nil {
		return nil, err
	}

	return &ListBudgetsOutput{
		Month:    month,
		Statuses: statuses,
	}, nil
}
