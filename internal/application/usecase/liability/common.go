// Package liability contains the liability (loans and debts) use cases.
package liability

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
)

// MaxTitleLength is the maximum allowed length for liability titles.
const MaxTitleLength = 200

func normalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" || utf8.RuneCountInString(title) > MaxTitleLength {
		return "", domainerror.NewLiabilityError(
			domainerror.ErrCodeInvalidLiabilityTitle,
			fmt.Sprintf("title must be between 1 and %d characters", MaxTitleLength),
			domainerror.ErrInvalidLiabilityTitle,
		)
	}
	return title, nil
}

func validateType(liabilityType entity.LiabilityType) error {
	if !liabilityType.IsValid() {
		return domainerror.NewLiabilityError(
			domainerror.ErrCodeInvalidLiabilityType,
			"type must be one of: bank_loan, friend_debt",
			domainerror.ErrInvalidLiabilityType,
		)
	}
	return nil
}

func invalidAmount(message string) error {
	return domainerror.NewLiabilityError(
		domainerror.ErrCodeInvalidLiabilityAmount,
		message,
		domainerror.ErrInvalidLiabilityAmount,
	)
}

// validateState checks the amounts and dates of a liability as a whole.
func validateState(l *entity.Liability) error {
	if l.TotalAmount.IsNegative() {
		return invalidAmount("total amount must not be negative")
	}
	if l.PaidAmount.IsNegative() || l.PaidAmount.GreaterThan(l.TotalAmount) {
		return invalidAmount("paid amount must be between 0 and the total amount")
	}
	if l.MonthlyInstallment != nil && l.MonthlyInstallment.IsNegative() {
		return invalidAmount("monthly installment must not be negative")
	}
	if l.EndDate != nil && l.EndDate.Before(l.StartDate) {
		return domainerror.NewLiabilityError(
			domainerror.ErrCodeInvalidLiabilityDates,
			"end date must not be before start date",
			domainerror.ErrInvalidLiabilityDates,
		)
	}
	return nil
}

func dateOnly(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := t.UTC().Truncate(24 * time.Hour)
	return &d
}

func notFound() error {
	return domainerror.NewLiabilityError(
		domainerror.ErrCodeLiabilityNotFound,
		"liability not found",
		domainerror.ErrLiabilityNotFound,
	)
}

func positive(d *decimal.Decimal) bool {
	return d != nil && d.IsPositive()
}
