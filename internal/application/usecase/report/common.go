// Package report contains the reporting and dashboard use cases.
package report

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
)

var hundred = decimal.NewFromInt(100)

// Slice is one segment of a pie chart.
type Slice struct {
	Label  string
	Amount decimal.Decimal
}

// loadRange returns every transaction of the user dated within [from, to], newest first.
func loadRange(ctx context.Context, repo adapter.TransactionRepository, userID uuid.UUID, from, to time.Time) ([]*entity.TransactionWithCategory, error) {
	result, err := repo.FindByFilter(ctx, adapter.TransactionFilter{
		UserID:    userID,
		StartDate: &from,
		EndDate:   &to,
	}, adapter.TransactionPagination{})
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	return result.Transactions, nil
}

// totals sums income and expense of the given transactions.
func totals(transactions []*entity.TransactionWithCategory) (income, expense decimal.Decimal) {
	for _, t := range transactions {
		if t.Transaction.Type == entity.TransactionTypeIncome {
			income = income.Add(t.Transaction.Amount)
		} else {
			expense = expense.Add(t.Transaction.Amount)
		}
	}
	return income, expense
}

// changePercent is the relative change from previous to current. A zero
// previous value yields 0 when current is also zero, else 100.
func changePercent(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.IsZero() {
			return decimal.Zero
		}
		return hundred
	}
	return current.Sub(previous).Div(previous).Mul(hundred).Round(2)
}

// pie groups transactions of one type by category name, largest first.
func pie(transactions []*entity.TransactionWithCategory, transactionType entity.TransactionType) []Slice {
	sums := make(map[string]decimal.Decimal)
	for _, t := range transactions {
		if t.Transaction.Type != transactionType {
			continue
		}
		name := t.CategoryName()
		sums[name] = sums[name].Add(t.Transaction.Amount)
	}

	out := make([]Slice, 0, len(sums))
	for label, amount := range sums {
		out = append(out, Slice{Label: label, Amount: amount})
	}
	sortSlices(out)
	return out
}

func sortSlices(s []Slice) {
	slices.SortFunc(s, func(a, b Slice) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
}

func invalidPeriod(message string) error {
	return domainerror.NewReportError(
		domainerror.ErrCodeInvalidReportPeriod,
		message,
		domainerror.ErrInvalidReportPeriod,
	)
}
