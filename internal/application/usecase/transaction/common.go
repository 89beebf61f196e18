// Package transaction contains ledger use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/application/usecase/category"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
	"github.com/finance-tracker/savings-ledger/internal/domain/valueobject"
)

// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
const MaxDescriptionLength = 255

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	if !valueobject.IsWholeCents(amount) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must have at most two decimal places",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	return nil
}

func validateType(t entity.TransactionType) error {
	if !t.IsValid() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}
	return nil
}

func normalizeDescription(description string) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTransactionFields,
			"description is required",
			domainerror.ErrMissingDescription,
		)
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return "", domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}
	return description, nil
}

func notFound() error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeTransactionNotFound,
		"transaction not found",
		domainerror.ErrTransactionNotFound,
	)
}

// categoryFor decides the category of an entry. Income is never categorised;
// an expense uses the owned category id, or the name through the resolver.
func categoryFor(
	ctx context.Context,
	categoryRepo adapter.CategoryRepository,
	resolver *category.Resolver,
	userID uuid.UUID,
	transactionType entity.TransactionType,
	categoryID *uuid.UUID,
	categoryName string,
) (*entity.Category, error) {
	if transactionType == entity.TransactionTypeIncome {
		return nil, nil
	}

	if categoryID != nil {
		found, err := categoryRepo.FindByID(ctx, *categoryID, userID)
		if err != nil {
			if errors.Is(err, domainerror.ErrCategoryNotFound) {
				return nil, domainerror.NewTransactionError(
					domainerror.ErrCodeTxnCategoryNotFound,
					"category not found",
					domainerror.ErrCategoryNotFoundForTransaction,
				)
			}
			return nil, fmt.Errorf("failed to find category: %w", err)
		}
		return found, nil
	}

	if name := strings.TrimSpace(categoryName); name != "" {
		resolved, err := resolver.FindOrCreate(ctx, userID, name)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve category: %w", err)
		}
		return resolved, nil
	}
	return nil, nil
}
