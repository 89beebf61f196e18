// Package budget contains the budget use cases and the budget evaluator.
package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	"github.com/finance-tracker/savings-ledger/internal/domain/valueobject"
)

// Evaluator compares each budget of a month with the expenses recorded in
// its category during that month. It never writes.
type Evaluator struct {
	budgetRepo      adapter.BudgetRepository
	transactionRepo adapter.TransactionRepository
}

// NewEvaluator creates a new Evaluator instance.
func NewEvaluator(budgetRepo adapter.BudgetRepository, transactionRepo adapter.TransactionRepository) *Evaluator {
	return &Evaluator{
		budgetRepo:      budgetRepo,
		transactionRepo: transactionRepo,
	}
}

// Evaluate returns the status of every budget the user has for month's month.
func (e *Evaluator) Evaluate(ctx context.Context, userID uuid.UUID, month time.Time) ([]*entity.BudgetStatus, error) {
	first := valueobject.FirstOfMonth(month.UTC())

	budgets, err := e.budgetRepo.FindByMonth(ctx, userID, first)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	if len(budgets) == 0 {
		return []*entity.BudgetStatus{}, nil
	}

	spent, err := e.transactionRepo.SumExpensesByCategory(ctx, userID, first, valueobject.EndOfMonth(first))
	if err != nil {
		return nil, fmt.Errorf("failed to sum expenses: %w", err)
	}

	statuses := make([]*entity.BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		total, ok := spent[b.Budget.CategoryID]
		if !ok {
			total = decimal.Zero
		}
		statuses = append(statuses, entity.EvaluateBudget(b.Budget, b.Category, total))
	}
	return statuses, nil
}
