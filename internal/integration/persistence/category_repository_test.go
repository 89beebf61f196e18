package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/savings-ledger/internal/application/usecase/category"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
)

func TestCategoryRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate name for the same user is rejected", func(t *testing.T) {
		db := newTestDB(t)
		user := createTestUser(t, db, "dup@example.com")
		repo := NewCategoryRepository(db)

		if err := repo.Create(ctx, entity.NewCategory(user.ID, "Food")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		err := repo.Create(ctx, entity.NewCategory(user.ID, "Food"))
		if !errors.Is(err, domainerror.ErrCategoryNameExists) {
			t.Errorf("expected ErrCategoryNameExists, got %v", err)
		}
	})

	t.Run("same name is allowed for different users", func(t *testing.T) {
		db := newTestDB(t)
		alice := createTestUser(t, db, "alice@example.com")
		bob := createTestUser(t, db, "bob@example.com")
		repo := NewCategoryRepository(db)

		if err := repo.Create(ctx, entity.NewCategory(alice.ID, "Food")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := repo.Create(ctx, entity.NewCategory(bob.ID, "Food")); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("find by id is scoped to the owner", func(t *testing.T) {
		db := newTestDB(t)
		alice := createTestUser(t, db, "alice@example.com")
		bob := createTestUser(t, db, "bob@example.com")
		category := createTestCategory(t, db, alice.ID, "Food")
		repo := NewCategoryRepository(db)

		if _, err := repo.FindByID(ctx, category.ID, bob.ID); !errors.Is(err, domainerror.ErrCategoryNotFound) {
			t.Errorf("expected ErrCategoryNotFound, got %v", err)
		}
	})

	t.Run("delete removes the category budgets", func(t *testing.T) {
		db := newTestDB(t)
		user := createTestUser(t, db, "cascade@example.com")
		category := createTestCategory(t, db, user.ID, "Food")
		repo := NewCategoryRepository(db)
		budgets := NewBudgetRepository(db)

		month := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		if err := budgets.Create(ctx, entity.NewBudget(user.ID, category.ID, decimal.NewFromInt(500), month, entity.PriorityMedium)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := repo.Delete(ctx, category.ID, user.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		remaining, err := budgets.FindByMonth(ctx, user.ID, month)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(remaining) != 0 {
			t.Errorf("expected budgets to be removed, got %d", len(remaining))
		}
	})

	t.Run("count transactions", func(t *testing.T) {
		db := newTestDB(t)
		user := createTestUser(t, db, "count@example.com")
		category := createTestCategory(t, db, user.ID, "Food")
		repo := NewCategoryRepository(db)
		transactions := NewTransactionRepository(db)

		tx := entity.NewTransaction(user.ID, time.Now().UTC(), "Lunch", decimal.NewFromInt(20), entity.TransactionTypeExpense, &category.ID)
		if err := transactions.Create(ctx, tx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		count, err := repo.CountTransactions(ctx, category.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1, got %d", count)
		}
	})
}

func TestCategoryResolver_WithinTransaction(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "resolver@example.com")
	txManager := NewTransactor(db)
	categories := NewCategoryRepository(db)
	resolver := category.NewResolver(categories)

	rejectInserts := false
	err := db.Callback().Create().Before("gorm:create").Register("test:reject_category_insert", func(tx *gorm.DB) {
		if rejectInserts && tx.Statement.Table == "categories" {
			_ = tx.AddError(errors.New("insert rejected"))
		}
	})
	if err != nil {
		t.Fatalf("failed to register callback: %v", err)
	}

	var fallback *entity.Category
	err = txManager.WithinTransaction(context.Background(), func(ctx context.Context) error {
		if err := categories.Create(ctx, entity.NewCategory(user.ID, "Rent")); err != nil {
			return err
		}

		rejectInserts = true
		fallback = resolver.ResolveOrFallback(ctx, user.ID, entity.CategoryBills)
		rejectInserts = false

		return categories.Create(ctx, entity.NewCategory(user.ID, "Travel"))
	})
	if err != nil {
		t.Fatalf("expected the unit of work to commit, got %v", err)
	}
	if fallback == nil || fallback.Name != "Rent" {
		t.Fatalf("expected fallback to Rent, got %+v", fallback)
	}

	all, err := categories.FindAllByUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected Rent and Travel to be committed, got %d categories", len(all))
	}
}
