package budget

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/application/usecase/category"
	"github.com/finance-tracker/savings-ledger/internal/application/usecase/usecasetest"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
)

var fixedNow = time.Date(2024, 3, 18, 10, 0, 0, 0, time.UTC)

type fixture struct {
	store  *usecasetest.Store
	user   *entity.User
	create *CreateBudgetUseCase
	list   *ListBudgetsUseCase
	update *UpdateBudgetUseCase
	remove *DeleteBudgetUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := usecasetest.NewStore()
	user := entity.NewUser("budget@example.com", "Budget", "hash")
	store.AddUser(user)

	f := &fixture{
		store:  store,
		user:   user,
		create: NewCreateBudgetUseCase(store.Budgets, store.Categories, category.NewResolver(store.Categories), store.Transactor),
		list:   NewListBudgetsUseCase(NewEvaluator(store.Budgets, store.Transactions)),
		update: NewUpdateBudgetUseCase(store.Budgets),
		remove: NewDeleteBudgetUseCase(store.Budgets),
	}
	f.create.now = func() time.Time { return fixedNow }
	f.list.now = func() time.Time { return fixedNow }
	return f
}

func (f *fixture) expense(t *testing.T, categoryID uuid.UUID, on time.Time, amount string) {
	t.Helper()

	tx := entity.NewTransaction(f.user.ID, on, "spend", decimal.RequireFromString(amount), entity.TransactionTypeExpense, &categoryID)
	if err := f.store.Transactions.Create(context.Background(), tx); err != nil {
		t.Fatalf("failed to seed transaction: %v", err)
	}
}

func TestCreateBudgetUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to Food, medium priority and the current month", func(t *testing.T) {
		f := newFixture(t)
		out, err := f.create.Execute(ctx, CreateBudgetInput{UserID: f.user.ID, Amount: decimal.NewFromInt(500)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Category.Name != entity.CategoryFood {
			t.Errorf("expected Food category, got %q", out.Category.Name)
		}
		if out.Budget.Priority != entity.PriorityMedium {
			t.Errorf("expected medium priority, got %q", out.Budget.Priority)
		}
		if want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC); !out.Budget.Month.Equal(want) {
			t.Errorf("expected month %s, got %s", want, out.Budget.Month)
		}
	})

	t.Run("month is normalized to the first", func(t *testing.T) {
		f := newFixture(t)
		out, err := f.create.Execute(ctx, CreateBudgetInput{
			UserID:       f.user.ID,
			CategoryName: "Transport",
			Amount:       decimal.NewFromInt(100),
			Month:        time.Date(2024, 5, 23, 15, 0, 0, 0, time.UTC),
			Priority:     entity.PriorityHigh,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC); !out.Budget.Month.Equal(want) {
			t.Errorf("expected month %s, got %s", want, out.Budget.Month)
		}
	})

	t.Run("duplicate category and month conflicts", func(t *testing.T) {
		f := newFixture(t)
		input := CreateBudgetInput{UserID: f.user.ID, CategoryName: "Food", Amount: decimal.NewFromInt(500)}
		if _, err := f.create.Execute(ctx, input); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err := f.create.Execute(ctx, input)
		var budgetErr *domainerror.BudgetError
		if !errors.As(err, &budgetErr) || budgetErr.Code != domainerror.ErrCodeBudgetAlreadyExists {
			t.Fatalf("expected BUD-020001, got %v", err)
		}
	})

	t.Run("category id must be owned", func(t *testing.T) {
		f := newFixture(t)
		foreign := entity.NewCategory(uuid.New(), "Food")
		f.store.AddCategory(foreign)

		_, err := f.create.Execute(ctx, CreateBudgetInput{UserID: f.user.ID, CategoryID: &foreign.ID, Amount: decimal.NewFromInt(1)})
		if !errors.Is(err, domainerror.ErrBudgetCategoryNotFound) {
			t.Errorf("expected ErrBudgetCategoryNotFound, got %v", err)
		}
	})

	t.Run("validation", func(t *testing.T) {
		f := newFixture(t)
		if _, err := f.create.Execute(ctx, CreateBudgetInput{UserID: f.user.ID, Amount: decimal.Zero}); !errors.Is(err, domainerror.ErrInvalidBudgetAmount) {
			t.Errorf("expected ErrInvalidBudgetAmount, got %v", err)
		}
		if _, err := f.create.Execute(ctx, CreateBudgetInput{UserID: f.user.ID, Amount: decimal.NewFromInt(1), Priority: "urgent"}); !errors.Is(err, domainerror.ErrInvalidBudgetPriority) {
			t.Errorf("expected ErrInvalidBudgetPriority, got %v", err)
		}
	})
}

func TestListBudgetsUseCase_EvaluatesOnlyTheBudgetMonth(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	out, err := f.create.Execute(ctx, CreateBudgetInput{UserID: f.user.ID, CategoryName: "Food", Amount: decimal.NewFromInt(500)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	food := out.Category.ID

	f.expense(t, food, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "400")
	f.expense(t, food, time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC), "220")
	f.expense(t, food, time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC), "999")
	f.expense(t, food, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), "999")

	listed, err := f.list.Execute(ctx, ListBudgetsInput{UserID: f.user.ID, Month: 3, Year: 2024})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listed.Statuses) != 1 {
		t.Fatalf("expected 1 budget, got %d", len(listed.Statuses))
	}
	status := listed.Statuses[0]
	if !status.Spent.Equal(decimal.NewFromInt(620)) {
		t.Errorf("expected spent 620, got %s", status.Spent)
	}
	if !status.Remaining.Equal(decimal.NewFromInt(-120)) {
		t.Errorf("expected remaining -120, got %s", status.Remaining)
	}
	if !status.IsOverBudget {
		t.Error("expected over budget")
	}
	if !status.Percentage.Equal(decimal.NewFromInt(124)) {
		t.Errorf("expected 124%%, got %s", status.Percentage)
	}

	empty, err := f.list.Execute(ctx, ListBudgetsInput{UserID: f.user.ID, Month: 2, Year: 2024})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(empty.Statuses) != 0 {
		t.Errorf("expected no budgets in February, got %d", len(empty.Statuses))
	}
}

func TestListBudgetsUseCase_InvalidMonth(t *testing.T) {
	f := newFixture(t)
	_, err := f.list.Execute(context.Background(), ListBudgetsInput{UserID: f.user.ID, Month: 13, Year: 2024})
	if !errors.Is(err, domainerror.ErrInvalidBudgetMonth) {
		t.Errorf("expected ErrInvalidBudgetMonth, got %v", err)
	}
}

func TestUpdateAndDeleteBudget(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	out, err := f.create.Execute(ctx, CreateBudgetInput{UserID: f.user.ID, Amount: decimal.NewFromInt(500)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	amount := decimal.NewFromInt(750)
	priority := entity.PriorityLow
	updated, err := f.update.Execute(ctx, UpdateBudgetInput{BudgetID: out.Budget.ID, UserID: f.user.ID, Amount: &amount, Priority: &priority})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.Amount.Equal(amount) || updated.Priority != entity.PriorityLow {
		t.Errorf("unexpected budget: %+v", updated)
	}

	if _, err := f.update.Execute(ctx, UpdateBudgetInput{BudgetID: out.Budget.ID, UserID: uuid.New(), Amount: &amount}); !errors.Is(err, domainerror.ErrBudgetNotFound) {
		t.Errorf("expected ErrBudgetNotFound for another user, got %v", err)
	}

	if err := f.remove.Execute(ctx, out.Budget.ID, uuid.New()); !errors.Is(err, domainerror.ErrBudgetNotFound) {
		t.Errorf("expected ErrBudgetNotFound for another user, got %v", err)
	}
	if err := f.remove.Execute(ctx, out.Budget.ID, f.user.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
