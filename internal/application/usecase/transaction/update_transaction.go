// Package transaction contains ledger use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/application/usecase/category"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
)

// UpdateTransactionInput represents a partial update. Nil fields are left unchanged.
type UpdateTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
	Date          *time.Time
	Description   *string
	Amount        *decimal.Decimal
	Type          *entity.TransactionType
	CategoryID    *uuid.UUID
	CategoryName  *string
}

// UpdateTransactionUseCase handles transaction updates.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	resolver        *category.Resolver
	transactor      adapter.Transactor
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	resolver *category.Resolver,
	transactor adapter.Transactor,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		resolver:        resolver,
		transactor:      transactor,
	}
}

// Execute applies the update.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*entity.TransactionWithCategory, error) {
	var output *entity.TransactionWithCategory
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		transaction, err := uc.transactionRepo.FindByID(ctx, input.TransactionID, input.UserID)
		if err != nil {
			if errors.Is(err, domainerror.ErrTransactionNotFound) {
				return notFound()
			}
			return fmt.Errorf("failed to find transaction: %w", err)
		}

		if input.Type != nil {
			if err := validateType(*input.Type); err != nil {
				return err
			}
			transaction.Type = *input.Type
		}
		if input.Amount != nil {
			if err := validateAmount(*input.Amount); err != nil {
				return err
			}
			transaction.Amount = *input.Amount
		}
		if input.Description != nil {
			description, err := normalizeDescription(*input.Description)
			if err != nil {
				return err
			}
			transaction.Description = description
		}
		if input.Date != nil {
			transaction.Date = input.Date.UTC()
		}

		categoryID := transaction.CategoryID
		categoryName := ""
		if input.CategoryID != nil || input.CategoryName != nil {
			categoryID = input.CategoryID
			if input.CategoryName != nil {
				categoryName = *input.CategoryName
			}
		}
		cat, err := categoryFor(ctx, uc.categoryRepo, uc.resolver, input.UserID, transaction.Type, categoryID, categoryName)
		if err != nil {
			return err
		}
		transaction.CategoryID = category.IDOf(cat)
		transaction.UpdatedAt = time.Now().UTC()

		if err := uc.transactionRepo.Update(ctx, transaction); err != nil {
			if errors.Is(err, domainerror.ErrTransactionNotFound) {
				return notFound()
			}
			return fmt.Errorf("failed to update transaction: %w", err)
		}

		output = &entity.TransactionWithCategory{Transaction: transaction, Category: cat}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}
