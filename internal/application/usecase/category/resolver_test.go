package category

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/finance-tracker/savings-ledger/internal/application/usecase/usecasetest"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
)

func TestResolver_FindOrCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the category on first use", func(t *testing.T) {
		store := usecasetest.NewStore()
		resolver := NewResolver(store.Categories)
		userID := uuid.New()

		first, err := resolver.FindOrCreate(ctx, userID, entity.CategorySavings)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := resolver.FindOrCreate(ctx, userID, entity.CategorySavings)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first.ID != second.ID {
			t.Error("expected the same category to be returned twice")
		}

		all, _ := store.Categories.FindAllByUser(ctx, userID)
		if len(all) != 1 {
			t.Errorf("expected exactly one category, got %d", len(all))
		}
	})

	t.Run("converges on the row created by a concurrent writer", func(t *testing.T) {
		store := usecasetest.NewStore()
		resolver := NewResolver(store.Categories)
		userID := uuid.New()

		winner := entity.NewCategory(userID, entity.CategoryBills)
		store.AddCategory(winner)
		// Simulates losing the insert race: the lookup missed, the insert collides.
		store.Categories.CreateErr = domainerror.ErrCategoryNameExists

		got, err := resolver.FindOrCreate(ctx, userID, entity.CategoryBills)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ID != winner.ID {
			t.Errorf("expected winner %s, got %s", winner.ID, got.ID)
		}
	})

	t.Run("names are case-sensitive", func(t *testing.T) {
		store := usecasetest.NewStore()
		resolver := NewResolver(store.Categories)
		userID := uuid.New()
		store.AddCategory(entity.NewCategory(userID, "savings"))

		got, err := resolver.FindOrCreate(ctx, userID, entity.CategorySavings)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Name != entity.CategorySavings {
			t.Errorf("expected %q, got %q", entity.CategorySavings, got.Name)
		}
	})
}

func TestResolver_ResolveOrFallback(t *testing.T) {
	ctx := context.Background()

	t.Run("falls back to the oldest category", func(t *testing.T) {
		store := usecasetest.NewStore()
		resolver := NewResolver(store.Categories)
		userID := uuid.New()
		oldest := entity.NewCategory(userID, "Rent")
		store.AddCategory(oldest)
		store.AddCategory(entity.NewCategory(userID, "Fun"))
		store.Categories.CreateErr = errors.New("insert failed")

		got := resolver.ResolveOrFallback(ctx, userID, entity.CategoryBills)
		if got == nil || got.ID != oldest.ID {
			t.Fatalf("expected fallback to the oldest category")
		}
	})

	t.Run("returns nil when the user has no categories", func(t *testing.T) {
		store := usecasetest.NewStore()
		resolver := NewResolver(store.Categories)
		store.Categories.CreateErr = errors.New("insert failed")

		if got := resolver.ResolveOrFallback(ctx, uuid.New(), entity.CategoryBills); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
		if IDOf(nil) != nil {
			t.Error("expected nil id for nil category")
		}
	})
}
