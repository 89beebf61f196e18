package budget

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
)

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetAmount,
			"budget amount must be greater than zero",
			domainerror.ErrInvalidBudgetAmount,
		)
	}
	return nil
}

func priorityOrDefault(priority entity.BudgetPriority) (entity.BudgetPriority, error) {
	if priority == "" {
		return entity.PriorityMedium, nil
	}
	if !priority.IsValid() {
		return "", domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetPriority,
			"priority must be one of: low, medium, high",
			domainerror.ErrInvalidBudgetPriority,
		)
	}
	return priority, nil
}

// MonthOf returns the first day of the given month, or of now's month when
// month and year are both zero.
func MonthOf(month, year int, now time.Time) (time.Time, error) {
	if month == 0 && year == 0 {
		y, m, _ := now.UTC().Date()
		return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC), nil
	}
	if month < 1 || month > 12 || year < 1900 || year > 9999 {
		return time.Time{}, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetMonth,
			"month must be between 1 and 12 and year must be valid",
			domainerror.ErrInvalidBudgetMonth,
		)
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), nil
}

func notFound() error {
	return domainerror.NewBudgetError(
		domainerror.ErrCodeBudgetNotFound,
		"budget not found",
		domainerror.ErrBudgetNotFound,
	)
}

func alreadyExists() error {
	return domainerror.NewBudgetError(
		domainerror.ErrCodeBudgetAlreadyExists,
		"a budget for this category and month already exists",
		domainerror.ErrBudgetAlreadyExists,
	)
}
