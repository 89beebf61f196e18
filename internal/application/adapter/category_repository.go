// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
// Every lookup is scoped to the owning user.
type CategoryRepository interface {
	// Create creates a new category. A duplicate (user, name) returns ErrCategoryNameExists.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category owned by userID.
	FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.Category, error)

	// FindByName retrieves the user's category with exactly this name.
	FindByName(ctx context.Context, userID uuid.UUID, name string) (*entity.Category, error)

	// FindFirstByUser retrieves the user's oldest category.
	FindFirstByUser(ctx context.Context, userID uuid.UUID) (*entity.Category, error)

	// FindAllByUser retrieves all categories of a user ordered by name.
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error)

	// Update updates an existing category.
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes a category together with the budgets that reference it.
	Delete(ctx context.Context, id, userID uuid.UUID) error

	// CountTransactions returns how many ledger entries reference the category.
	CountTransactions(ctx context.Context, id uuid.UUID) (int64, error)
}
