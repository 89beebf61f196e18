// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
	"github.com/finance-tracker/savings-ledger/internal/integration/persistence/model"
)

// budgetRepository implements the adapter.BudgetRepository interface.
type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository instance.
func NewBudgetRepository(db *gorm.DB) adapter.BudgetRepository {
	return &budgetRepository{
		db: db,
	}
}

// Create creates a new budget.
func (r *budgetRepository) Create(ctx context.Context, budget *entity.Budget) error {
	result := conn(ctx, r.db).Omit("Category").Create(model.BudgetFromEntity(budget))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domainerror.ErrBudgetAlreadyExists
		}
		return result.Error
	}
	return nil
}

// FindByID retrieves a budget owned by userID.
func (r *budgetRepository) FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.Budget, error) {
	var budgetModel model.BudgetModel
	result := conn(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).First(&budgetModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBudgetNotFound
		}
		return nil, result.Error
	}
	return budgetModel.ToEntity(), nil
}

// FindByMonth retrieves the user's budgets for the month starting at month.
func (r *budgetRepository) FindByMonth(ctx context.Context, userID uuid.UUID, month time.Time) ([]*adapter.BudgetWithCategory, error) {
	var budgetModels []model.BudgetModel
	result := conn(ctx, r.db).
		Preload("Category").
		Where("user_id = ? AND month = ?", userID, month.UTC()).
		Order("created_at ASC").
		Find(&budgetModels)
	if result.Error != nil {
		return nil, result.Error
	}

	budgets := make([]*adapter.BudgetWithCategory, len(budgetModels))
	for i := range budgetModels {
		item := &adapter.BudgetWithCategory{Budget: budgetModels[i].ToEntity()}
		if budgetModels[i].Category != nil {
			item.Category = budgetModels[i].Category.ToEntity()
		}
		budgets[i] = item
	}
	return budgets, nil
}

// Exists checks for a budget with the same user, category and month.
func (r *budgetRepository) Exists(ctx context.Context, userID, categoryID uuid.UUID, month time.Time) (bool, error) {
	var count int64
	result := conn(ctx, r.db).
		Model(&model.BudgetModel{}).
		Where("user_id = ? AND category_id = ? AND month = ?", userID, categoryID, month.UTC()).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// Update updates an existing budget.
func (r *budgetRepository) Update(ctx context.Context, budget *entity.Budget) error {
	result := conn(ctx, r.db).
		Model(&model.BudgetModel{}).
		Where("id = ? AND user_id = ?", budget.ID, budget.UserID).
		Updates(map[string]any{
			"amount":     budget.Amount,
			"priority":   string(budget.Priority),
			"updated_at": budget.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrBudgetNotFound
	}
	return nil
}

// Delete removes a budget owned by userID.
func (r *budgetRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result := conn(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).Delete(&model.BudgetModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrBudgetNotFound
	}
	return nil
}
