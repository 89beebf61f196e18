// Package category contains category-related use cases.
package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	CategoryID uuid.UUID
	UserID     uuid.UUID
}

// DeleteCategoryUseCase handles category deletion logic. Deletion is refused
// while ledger entries reference the category; its budgets go with it.
type DeleteCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	transactor   adapter.Transactor
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(categoryRepo adapter.CategoryRepository, transactor adapter.Transactor) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryRepo: categoryRepo,
		transactor:   transactor,
	}
}

// Execute performs the category deletion.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) error {
	return uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := uc.categoryRepo.FindByID(ctx, input.CategoryID, input.UserID); err != nil {
			if errors.Is(err, domainerror.ErrCategoryNotFound) {
				return notFound()
			}
			return fmt.Errorf("failed to find category: %w", err)
		}

		count, err := uc.categoryRepo.CountTransactions(ctx, input.CategoryID)
		if err != nil {
			return fmt.Errorf("failed to count category transactions: %w", err)
		}
		if count > 0 {
			return domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryInUse,
				fmt.Sprintf("category is used by %d transactions", count),
				domainerror.ErrCategoryInUse,
			)
		}

		if err := uc.categoryRepo.Delete(ctx, input.CategoryID, input.UserID); err != nil {
			if errors.Is(err, domainerror.ErrCategoryNotFound) {
				return notFound()
			}
			return fmt.Errorf("failed to delete category: %w", err)
		}
		return nil
	})
}
