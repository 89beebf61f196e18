// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
	"github.com/finance-tracker/savings-ledger/internal/integration/persistence/model"
)

// categoryRepository implements the adapter.CategoryRepository interface.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance.
func NewCategoryRepository(db *gorm.DB) adapter.CategoryRepository {
	return &categoryRepository{
		db: db,
	}
}

// Create creates a new category in the database. Inside a unit of work the
// insert runs in a savepoint so a duplicate name only rolls back to it and the
// caller can re-read the existing row.
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	err := savepoint(ctx, r.db, func(tx *gorm.DB) error {
		return tx.Create(model.CategoryFromEntity(category)).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerror.ErrCategoryNameExists
		}
		return err
	}
	return nil
}

// FindByID retrieves a category owned by userID.
func (r *categoryRepository) FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.Category, error) {
	return r.first(ctx, "id = ? AND user_id = ?", id, userID)
}

// FindByName retrieves the user's category with exactly this name.
func (r *categoryRepository) FindByName(ctx context.Context, userID uuid.UUID, name string) (*entity.Category, error) {
	return r.first(ctx, "user_id = ? AND name = ?", userID, name)
}

// FindFirstByUser retrieves the user's oldest category.
func (r *categoryRepository) FindFirstByUser(ctx context.Context, userID uuid.UUID) (*entity.Category, error) {
	return r.first(ctx, "user_id = ?", userID)
}

// first runs in a savepoint so a failed lookup does not abort the caller's
// unit of work; the resolver keeps using it for its fallback.
func (r *categoryRepository) first(ctx context.Context, query string, args ...any) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	err := savepoint(ctx, r.db, func(tx *gorm.DB) error {
		return tx.Where(query, args...).Order("created_at ASC").First(&categoryModel).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryNotFound
		}
		return nil, err
	}
	return categoryModel.ToEntity(), nil
}

// FindAllByUser retrieves all categories of a user ordered by name.
func (r *categoryRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	var categoryModels []model.CategoryModel
	result := conn(ctx, r.db).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&categoryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	categories := make([]*entity.Category, len(categoryModels))
	for i := range categoryModels {
		categories[i] = categoryModels[i].ToEntity()
	}
	return categories, nil
}

// Update updates an existing category in the database.
func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	result := conn(ctx, r.db).
		Model(&model.CategoryModel{}).
		Where("id = ? AND user_id = ?", category.ID, category.UserID).
		Updates(map[string]any{"name": category.Name, "updated_at": category.UpdatedAt})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domainerror.ErrCategoryNameExists
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrCategoryNotFound
	}
	return nil
}

// Delete removes a category and its budgets in one transaction.
func (r *categoryRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ? AND user_id = ?", id, userID).Delete(&model.BudgetModel{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&model.CategoryModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrCategoryNotFound
		}
		return nil
	})
}

// CountTransactions returns how many ledger entries reference the category.
func (r *categoryRepository) CountTransactions(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	result := conn(ctx, r.db).Model(&model.TransactionModel{}).Where("category_id = ?", id).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}
