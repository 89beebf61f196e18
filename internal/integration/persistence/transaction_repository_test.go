package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
)

func seedTransactions(t *testing.T, repo adapter.TransactionRepository, userID uuid.UUID, categoryID *uuid.UUID) {
	t.Helper()

	entries := []struct {
		day    int
		amount int64
		typ    entity.TransactionType
		cat    *uuid.UUID
	}{
		{1, 3000, entity.TransactionTypeIncome, nil},
		{2, 120, entity.TransactionTypeExpense, categoryID},
		{3, 80, entity.TransactionTypeExpense, categoryID},
		{4, 50, entity.TransactionTypeExpense, nil},
	}
	for _, e := range entries {
		date := time.Date(2024, 3, e.day, 0, 0, 0, 0, time.UTC)
		tx := entity.NewTransaction(userID, date, "entry", decimal.NewFromInt(e.amount), e.typ, e.cat)
		if err := repo.Create(context.Background(), tx); err != nil {
			t.Fatalf("failed to seed transaction: %v", err)
		}
	}
}

func TestTransactionRepository_FindByFilter(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	user := createTestUser(t, db, "filter@example.com")
	category := createTestCategory(t, db, user.ID, "Food")
	repo := NewTransactionRepository(db)
	seedTransactions(t, repo, user.ID, &category.ID)

	t.Run("newest first with category preloaded", func(t *testing.T) {
		result, err := repo.FindByFilter(ctx, adapter.TransactionFilter{UserID: user.ID}, adapter.TransactionPagination{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Total != 4 || len(result.Transactions) != 4 {
			t.Fatalf("expected 4 transactions, got %d", len(result.Transactions))
		}
		if result.Transactions[0].Transaction.Date.Day() != 4 {
			t.Errorf("expected newest first, got day %d", result.Transactions[0].Transaction.Date.Day())
		}
		if result.Transactions[0].CategoryName() != entity.CategoryOther {
			t.Errorf("expected uncategorised entry to read as Other, got %s", result.Transactions[0].CategoryName())
		}
		if result.Transactions[1].CategoryName() != "Food" {
			t.Errorf("expected Food, got %s", result.Transactions[1].CategoryName())
		}
	})

	t.Run("paginates", func(t *testing.T) {
		result, err := repo.FindByFilter(ctx, adapter.TransactionFilter{UserID: user.ID}, adapter.TransactionPagination{Page: 2, Limit: 3})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Transactions) != 1 {
			t.Errorf("expected 1 transaction on page 2, got %d", len(result.Transactions))
		}
		if result.TotalPages != 2 {
			t.Errorf("expected 2 pages, got %d", result.TotalPages)
		}
	})

	t.Run("filters by type and category", func(t *testing.T) {
		expense := entity.TransactionTypeExpense
		result, err := repo.FindByFilter(ctx, adapter.TransactionFilter{UserID: user.ID, Type: &expense, CategoryID: &category.ID}, adapter.TransactionPagination{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Total != 2 {
			t.Errorf("expected 2 transactions, got %d", result.Total)
		}
	})

	t.Run("other users see nothing", func(t *testing.T) {
		result, err := repo.FindByFilter(ctx, adapter.TransactionFilter{UserID: uuid.New()}, adapter.TransactionPagination{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Total != 0 {
			t.Errorf("expected 0 transactions, got %d", result.Total)
		}
	})
}

func TestTransactionRepository_Aggregates(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	user := createTestUser(t, db, "totals@example.com")
	category := createTestCategory(t, db, user.ID, "Food")
	repo := NewTransactionRepository(db)
	seedTransactions(t, repo, user.ID, &category.ID)

	t.Run("totals", func(t *testing.T) {
		totals, err := repo.GetTotals(ctx, adapter.TransactionFilter{UserID: user.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !totals.IncomeTotal.Equal(decimal.NewFromInt(3000)) {
			t.Errorf("expected income 3000, got %s", totals.IncomeTotal)
		}
		if !totals.ExpenseTotal.Equal(decimal.NewFromInt(250)) {
			t.Errorf("expected expense 250, got %s", totals.ExpenseTotal)
		}
		if !totals.Balance().Equal(decimal.NewFromInt(2750)) {
			t.Errorf("expected balance 2750, got %s", totals.Balance())
		}
	})

	t.Run("expenses by category", func(t *testing.T) {
		from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)
		sums, err := repo.SumExpensesByCategory(ctx, user.ID, from, to)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sums) != 1 {
			t.Fatalf("expected 1 category, got %d", len(sums))
		}
		if !sums[category.ID].Equal(decimal.NewFromInt(200)) {
			t.Errorf("expected 200, got %s", sums[category.ID])
		}
	})
}

func TestTransactionRepository_Delete(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	user := createTestUser(t, db, "delete@example.com")
	repo := NewTransactionRepository(db)

	tx := entity.NewTransaction(user.ID, time.Now().UTC(), "Coffee", decimal.NewFromInt(5), entity.TransactionTypeExpense, nil)
	if err := repo.Create(ctx, tx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := repo.Delete(ctx, tx.ID, uuid.New()); !errors.Is(err, domainerror.ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound for another user, got %v", err)
	}
	if err := repo.Delete(ctx, tx.ID, user.ID); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := repo.FindByID(ctx, tx.ID, user.ID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound after delete, got %v", err)
	}
}
