// Package payment contains the payment event (calendar) use cases.
package payment

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
	"github.com/finance-tracker/savings-ledger/internal/domain/valueobject"
)

const (
	// MaxTitleLength is the maximum allowed length for event titles.
	MaxTitleLength = 200

	// MaxDescriptionLength is the maximum allowed length for event descriptions.
	MaxDescriptionLength = 500

	// MaxCalendarSpan bounds the range a calendar query may cover.
	MaxCalendarSpan = 2 * 366 * 24 * time.Hour

	maxWriteAttempts = 3
)

func normalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" || utf8.RuneCountInString(title) > MaxTitleLength {
		return "", domainerror.NewPaymentError(
			domainerror.ErrCodeInvalidPaymentTitle,
			fmt.Sprintf("title must be between 1 and %d characters", MaxTitleLength),
			domainerror.ErrInvalidPaymentTitle,
		)
	}
	return title, nil
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domainerror.NewPaymentError(
			domainerror.ErrCodeInvalidPaymentAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidPaymentAmount,
		)
	}
	if !valueobject.IsWholeCents(amount) {
		return domainerror.NewPaymentError(
			domainerror.ErrCodeInvalidPaymentAmount,
			"amount must have at most two decimal places",
			domainerror.ErrInvalidPaymentAmount,
		)
	}
	return nil
}

func validateFrequency(frequency entity.PaymentFrequency) error {
	if !frequency.IsValid() {
		return domainerror.NewPaymentError(
			domainerror.ErrCodeInvalidFrequency,
			"frequency must be one of: one_time, monthly, yearly",
			domainerror.ErrInvalidFrequency,
		)
	}
	return nil
}

func validateDescription(description string) (string, error) {
	description = strings.TrimSpace(description)
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return "", domainerror.NewPaymentError(
			domainerror.ErrCodeMissingPaymentFields,
			fmt.Sprintf("description must be at most %d characters", MaxDescriptionLength),
			nil,
		)
	}
	return description, nil
}

func notFound() error {
	return domainerror.NewPaymentError(
		domainerror.ErrCodePaymentEventNotFound,
		"payment event not found",
		domainerror.ErrPaymentEventNotFound,
	)
}

func mapWriteError(err error) error {
	var paymentErr *domainerror.PaymentError
	switch {
	case errors.As(err, &paymentErr):
		return err
	case errors.Is(err, domainerror.ErrPaymentEventNotFound):
		return notFound()
	case errors.Is(err, domainerror.ErrConcurrentModification):
		return domainerror.NewPaymentError(
			domainerror.ErrCodePaymentConflict,
			"the payment event was changed by another request, please retry",
			domainerror.ErrConcurrentModification,
		)
	}
	return fmt.Errorf("failed to update payment event: %w", err)
}

// formatAmount renders amount rounded to whole units with space-grouped thousands.
func formatAmount(amount decimal.Decimal) string {
	digits := amount.Abs().Round(0).String()
	var b strings.Builder
	if amount.Round(0).IsNegative() {
		b.WriteByte('-')
	}
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
