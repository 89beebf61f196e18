package category

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/application/usecase/usecasetest"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
)

func TestCreateCategoryUseCase(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		input    string
		wantCode domainerror.CategoryErrorCode
	}{
		{"empty name", "   ", domainerror.ErrCodeMissingCategoryFields},
		{"too long", strings.Repeat("a", 101), domainerror.ErrCodeInvalidCategoryName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewCreateCategoryUseCase(usecasetest.NewStore().Categories)
			_, err := uc.Execute(ctx, CreateCategoryInput{UserID: uuid.New(), Name: tt.input})
			var catErr *domainerror.CategoryError
			if !errors.As(err, &catErr) || catErr.Code != tt.wantCode {
				t.Errorf("expected code %s, got %v", tt.wantCode, err)
			}
		})
	}

	t.Run("duplicate name", func(t *testing.T) {
		store := usecasetest.NewStore()
		uc := NewCreateCategoryUseCase(store.Categories)
		userID := uuid.New()

		if _, err := uc.Execute(ctx, CreateCategoryInput{UserID: userID, Name: "Food"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err := uc.Execute(ctx, CreateCategoryInput{UserID: userID, Name: " Food "})
		if !errors.Is(err, domainerror.ErrCategoryNameExists) {
			t.Errorf("expected ErrCategoryNameExists, got %v", err)
		}
	})
}

func TestUpdateCategoryUseCase(t *testing.T) {
	ctx := context.Background()
	store := usecasetest.NewStore()
	userID := uuid.New()
	category := entity.NewCategory(userID, "Food")
	store.AddCategory(category)
	uc := NewUpdateCategoryUseCase(store.Categories)

	t.Run("renames", func(t *testing.T) {
		out, err := uc.Execute(ctx, UpdateCategoryInput{CategoryID: category.ID, UserID: userID, Name: "Groceries"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Category.Name != "Groceries" {
			t.Errorf("expected Groceries, got %s", out.Category.Name)
		}
	})

	t.Run("another user's category is not found", func(t *testing.T) {
		_, err := uc.Execute(ctx, UpdateCategoryInput{CategoryID: category.ID, UserID: uuid.New(), Name: "Mine"})
		if !errors.Is(err, domainerror.ErrCategoryNotFound) {
			t.Errorf("expected ErrCategoryNotFound, got %v", err)
		}
	})
}

func TestDeleteCategoryUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("refuses while transactions reference it", func(t *testing.T) {
		store := usecasetest.NewStore()
		userID := uuid.New()
		category := entity.NewCategory(userID, "Food")
		store.AddCategory(category)
		tx := entity.NewTransaction(userID, category.CreatedAt, "Lunch", decimal.NewFromInt(10), entity.TransactionTypeExpense, &category.ID)
		if err := store.Transactions.Create(ctx, tx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		uc := NewDeleteCategoryUseCase(store.Categories, store.Transactor)
		err := uc.Execute(ctx, DeleteCategoryInput{CategoryID: category.ID, UserID: userID})
		var catErr *domainerror.CategoryError
		if !errors.As(err, &catErr) || catErr.Code != domainerror.ErrCodeCategoryInUse {
			t.Fatalf("expected CAT-020001, got %v", err)
		}
		if _, err := store.Categories.FindByID(ctx, category.ID, userID); err != nil {
			t.Error("expected category to survive")
		}
	})

	t.Run("removes budgets with the category", func(t *testing.T) {
		store := usecasetest.NewStore()
		userID := uuid.New()
		category := entity.NewCategory(userID, "Food")
		store.AddCategory(category)
		budget := entity.NewBudget(userID, category.ID, decimal.NewFromInt(500), category.CreatedAt, entity.PriorityMedium)
		if err := store.Budgets.Create(ctx, budget); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		uc := NewDeleteCategoryUseCase(store.Categories, store.Transactor)
		if err := uc.Execute(ctx, DeleteCategoryInput{CategoryID: category.ID, UserID: userID}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := store.Budgets.FindByID(ctx, budget.ID, userID); !errors.Is(err, domainerror.ErrBudgetNotFound) {
			t.Errorf("expected budget to be removed, got %v", err)
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		store := usecasetest.NewStore()
		uc := NewDeleteCategoryUseCase(store.Categories, store.Transactor)
		err := uc.Execute(ctx, DeleteCategoryInput{CategoryID: uuid.New(), UserID: uuid.New()})
		if !errors.Is(err, domainerror.ErrCategoryNotFound) {
			t.Errorf("expected ErrCategoryNotFound, got %v", err)
		}
	})
}
