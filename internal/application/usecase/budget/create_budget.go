package budget

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/application/usecase/category"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
	"github.com/finance-tracker/savings-ledger/internal/domain/valueobject"
)

// CreateBudgetInput represents the input for budget creation. The category is
// taken from CategoryID when set, else resolved by CategoryName.
type CreateBudgetInput struct {
	UserID       uuid.UUID
	CategoryID   *uuid.UUID
	CategoryName string
	Amount       decimal.Decimal
	Month        time.Time // Optional, defaults to the current month
	Priority     entity.BudgetPriority
}

// CreateBudgetOutput represents the output of budget creation.
type CreateBudgetOutput struct {
	Budget   *entity.Budget
	Category *entity.Category
}

// CreateBudgetUseCase handles budget creation logic.
type CreateBudgetUseCase struct {
	budgetRepo   adapter.BudgetRepository
	categoryRepo adapter.CategoryRepository
	resolver     *category.Resolver
	transactor   adapter.Transactor
	now          func() time.Time
}

// NewCreateBudgetUseCase creates a new CreateBudgetUseCase instance.
func NewCreateBudgetUseCase(
	budgetRepo adapter.BudgetRepository,
	categoryRepo adapter.CategoryRepository,
	resolver *category.Resolver,
	transactor adapter.Transactor,
) *CreateBudgetUseCase {
	return &CreateBudgetUseCase{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		resolver:     resolver,
		transactor:   transactor,
		now:          time.Now,
	}
}

// Execute creates the budget. At most one budget may exist per category and
// month; the existence check is backed by a unique index.
func (uc *CreateBudgetUseCase) Execute(ctx context.Context, input CreateBudgetInput) (*CreateBudgetOutput, error) {
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}
	priority, err := priorityOrDefault(input.Priority)
	if err != nil {
		return nil, err
	}
	month := input.Month
	if month.IsZero() {
		month = uc.now()
	}
	month = valueobject.FirstOfMonth(month.UTC())

	var output *CreateBudgetOutput
	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		budgetCategory, err := uc.categoryFor(ctx, input)
		if err != nil {
			return err
		}

		exists, err := uc.budgetRepo.Exists(ctx, input.UserID, budgetCategory.ID, month)
		if err != nil {
			return fmt.Errorf("failed to check budget existence: %w", err)
		}
		if exists {
			return alreadyExists()
		}

		budget := entity.NewBudget(input.UserID, budgetCategory.ID, input.Amount, month, priority)
		if err := uc.budgetRepo.Create(ctx, budget); err != nil {
			if errors.Is(err, domainerror.ErrBudgetAlreadyExists) {
				return alreadyExists()
			}
			return fmt.Errorf("failed to create budget: %w", err)
		}

		output = &CreateBudgetOutput{Budget: budget, Category: budgetCategory}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}

func (uc *CreateBudgetUseCase) categoryFor(ctx context.Context, input CreateBudgetInput) (*entity.Category, error) {
	if input.CategoryID != nil {
		found, err := uc.categoryRepo.FindByID(ctx, *input.CategoryID, input.UserID)
		if err != nil {
			if errors.Is(err, domainerror.ErrCategoryNotFound) {
				return nil, domainerror.NewBudgetError(
					domainerror.ErrCodeBudgetCategoryNotFound,
					"category not found",
					domainerror.ErrBudgetCategoryNotFound,
				)
			}
			return nil, fmt.Errorf("failed to find category: %w", err)
		}
		return found, nil
	}

	name := strings.TrimSpace(input.CategoryName)
	if name == "" {
		name = entity.CategoryFood
	}
	if utf8.RuneCountInString(name) > category.MaxCategoryNameLength {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeMissingBudgetFields,
			fmt.Sprintf("category name must be at most %d characters", category.MaxCategoryNameLength),
			nil,
		)
	}
	return uc.resolver.FindOrCreate(ctx, input.UserID, name)
}
