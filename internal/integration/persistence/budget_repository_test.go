package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
)

func TestBudgetRepository(t *testing.T) {
	ctx := context.Background()
	month := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("duplicate month for a category is rejected", func(t *testing.T) {
		db := newTestDB(t)
		user := createTestUser(t, db, "budget@example.com")
		category := createTestCategory(t, db, user.ID, "Food")
		repo := NewBudgetRepository(db)

		if err := repo.Create(ctx, entity.NewBudget(user.ID, category.ID, decimal.NewFromInt(500), month, entity.PriorityHigh)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		err := repo.Create(ctx, entity.NewBudget(user.ID, category.ID, decimal.NewFromInt(300), month, entity.PriorityLow))
		if !errors.Is(err, domainerror.ErrBudgetAlreadyExists) {
			t.Errorf("expected ErrBudgetAlreadyExists, got %v", err)
		}

		exists, err := repo.Exists(ctx, user.ID, category.ID, month)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !exists {
			t.Error("expected budget to exist")
		}
	})

	t.Run("find by month loads the category", func(t *testing.T) {
		db := newTestDB(t)
		user := createTestUser(t, db, "month@example.com")
		category := createTestCategory(t, db, user.ID, "Food")
		repo := NewBudgetRepository(db)

		if err := repo.Create(ctx, entity.NewBudget(user.ID, category.ID, decimal.NewFromInt(500), month, entity.PriorityHigh)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		budgets, err := repo.FindByMonth(ctx, user.ID, month)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(budgets) != 1 {
			t.Fatalf("expected 1 budget, got %d", len(budgets))
		}
		if budgets[0].Category == nil || budgets[0].Category.Name != "Food" {
			t.Errorf("expected Food category to be loaded")
		}

		other, err := repo.FindByMonth(ctx, user.ID, month.AddDate(0, 1, 0))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(other) != 0 {
			t.Errorf("expected no budgets for April, got %d", len(other))
		}
	})
}
