// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
)

// BudgetWithCategory pairs a budget with its category.
type BudgetWithCategory struct {
	Budget   *entity.Budget
	Category *entity.Category
}

// BudgetRepository defines the interface for budget persistence operations.
type BudgetRepository interface {
	// Create creates a new budget. A duplicate (user, category, month) returns ErrBudgetAlreadyExists.
	Create(ctx context.Context, budget *entity.Budget) error

	// FindByID retrieves a budget owned by userID.
	FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.Budget, error)

	// FindByMonth retrieves the user's budgets for the month starting at month.
	FindByMonth(ctx context.Context, userID uuid.UUID, month time.Time) ([]*BudgetWithCategory, error)

	// Exists checks for a budget with the same user, category and month.
	Exists(ctx context.Context, userID, categoryID uuid.UUID, month time.Time) (bool, error)

	// Update updates an existing budget.
	Update(ctx context.Context, budget *entity.Budget) error

	// Delete removes a budget owned by userID.
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
