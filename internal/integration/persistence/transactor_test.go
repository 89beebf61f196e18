package persistence

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	"github.com/finance-tracker/savings-ledger/internal/integration/persistence/model"
)

func TestTransactor_WithinTransaction(t *testing.T) {
	t.Run("rolls back every write when fn fails", func(t *testing.T) {
		db := newTestDB(t)
		user := createTestUser(t, db, "rollback@example.com")
		txManager := NewTransactor(db)
		categories := NewCategoryRepository(db)

		boom := errors.New("boom")
		err := txManager.WithinTransaction(context.Background(), func(ctx context.Context) error {
			if err := categories.Create(ctx, entity.NewCategory(user.ID, "Travel")); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}

		all, err := categories.FindAllByUser(context.Background(), user.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(all) != 0 {
			t.Errorf("expected no categories after rollback, got %d", len(all))
		}
	})

	t.Run("nested calls join the outer transaction", func(t *testing.T) {
		db := newTestDB(t)
		user := createTestUser(t, db, "nested@example.com")
		txManager := NewTransactor(db)
		categories := NewCategoryRepository(db)

		boom := errors.New("boom")
		err := txManager.WithinTransaction(context.Background(), func(ctx context.Context) error {
			inner := txManager.WithinTransaction(ctx, func(ctx context.Context) error {
				return categories.Create(ctx, entity.NewCategory(user.ID, "Inner"))
			})
			if inner != nil {
				return inner
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}

		if _, err := categories.FindByName(context.Background(), user.ID, "Inner"); err == nil {
			t.Error("expected inner write to be rolled back with the outer transaction")
		}
	})

	t.Run("a failed savepoint keeps the outer transaction", func(t *testing.T) {
		db := newTestDB(t)
		user := createTestUser(t, db, "savepoint@example.com")
		txManager := NewTransactor(db)
		categories := NewCategoryRepository(db)

		boom := errors.New("boom")
		err := txManager.WithinTransaction(context.Background(), func(ctx context.Context) error {
			if err := categories.Create(ctx, entity.NewCategory(user.ID, "Outer")); err != nil {
				return err
			}
			inner := savepoint(ctx, db, func(tx *gorm.DB) error {
				if err := tx.Create(model.CategoryFromEntity(entity.NewCategory(user.ID, "Inner"))).Error; err != nil {
					return err
				}
				return boom
			})
			if !errors.Is(inner, boom) {
				t.Errorf("expected boom from the savepoint, got %v", inner)
			}
			return categories.Create(ctx, entity.NewCategory(user.ID, "After"))
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for name, want := range map[string]bool{"Outer": true, "Inner": false, "After": true} {
			_, err := categories.FindByName(context.Background(), user.ID, name)
			if got := err == nil; got != want {
				t.Errorf("category %q stored = %v, want %v", name, got, want)
			}
		}
	})

	t.Run("commits on success", func(t *testing.T) {
		db := newTestDB(t)
		user := createTestUser(t, db, "commit@example.com")
		txManager := NewTransactor(db)
		categories := NewCategoryRepository(db)

		err := txManager.WithinTransaction(context.Background(), func(ctx context.Context) error {
			return categories.Create(ctx, entity.NewCategory(user.ID, "Kept"))
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := categories.FindByName(context.Background(), user.ID, "Kept"); err != nil {
			t.Errorf("expected committed category, got %v", err)
		}
	})
}
