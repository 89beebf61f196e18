// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions.
type TransactionFilter struct {
	UserID     uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID *uuid.UUID
	Type       *entity.TransactionType
}

// TransactionPagination defines pagination options. A zero Limit returns every match.
type TransactionPagination struct {
	Page  int
	Limit int
}

// TransactionListResult represents the result of listing transactions.
type TransactionListResult struct {
	Transactions []*entity.TransactionWithCategory
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}

// TransactionTotals represents aggregated totals for transactions.
type TransactionTotals struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
}

// Balance is income minus expense.
func (t TransactionTotals) Balance() decimal.Decimal {
	return t.IncomeTotal.Sub(t.ExpenseTotal)
}

// TransactionRepository defines the interface for ledger persistence operations.
type TransactionRepository interface {
	// Create appends a new entry to the ledger.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction owned by userID.
	FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.Transaction, error)

	// FindByIDWithCategory retrieves a transaction with its category.
	FindByIDWithCategory(ctx context.Context, id, userID uuid.UUID) (*entity.TransactionWithCategory, error)

	// FindByFilter retrieves transactions newest first, with pagination.
	FindByFilter(ctx context.Context, filter TransactionFilter, pagination TransactionPagination) (*TransactionListResult, error)

	// GetTotals sums income and expense for the filter.
	GetTotals(ctx context.Context, filter TransactionFilter) (*TransactionTotals, error)

	// SumExpensesByCategory sums expenses per category for the user in [from, to].
	SumExpensesByCategory(ctx context.Context, userID uuid.UUID, from, to time.Time) (map[uuid.UUID]decimal.Decimal, error)

	// Update updates an existing transaction.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete removes a transaction owned by userID.
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
