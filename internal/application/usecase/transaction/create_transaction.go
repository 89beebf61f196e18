// Package transaction contains ledger use cases.
package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/application/usecase/category"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	UserID       uuid.UUID
	Date         time.Time
	Description  string
	Amount       decimal.Decimal
	Type         entity.TransactionType
	CategoryID   *uuid.UUID
	CategoryName string
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.TransactionWithCategory
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	resolver        *category.Resolver
	transactor      adapter.Transactor
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	resolver *category.Resolver,
	transactor adapter.Transactor,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		resolver:        resolver,
		transactor:      transactor,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	if err := validateType(input.Type); err != nil {
		return nil, err
	}
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}
	description, err := normalizeDescription(input.Description)
	if err != nil {
		return nil, err
	}
	if input.Date.IsZero() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"date is required",
			domainerror.ErrInvalidTransactionDate,
		)
	}

	var output *CreateTransactionOutput
	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		cat, err := categoryFor(ctx, uc.categoryRepo, uc.resolver, input.UserID, input.Type, input.CategoryID, input.CategoryName)
		if err != nil {
			return err
		}

		transaction := entity.NewTransaction(
			input.UserID,
			input.Date.UTC(),
			description,
			input.Amount,
			input.Type,
			category.IDOf(cat),
		)
		if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}

		output = &CreateTransactionOutput{
			Transaction: &entity.TransactionWithCategory{Transaction: transaction, Category: cat},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}
