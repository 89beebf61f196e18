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

// savingsGoalRepository implements the adapter.SavingsGoalRepository interface.
type savingsGoalRepository struct {
	db *gorm.DB
}

// NewSavingsGoalRepository creates a new savings goal repository instance.
func NewSavingsGoalRepository(db *gorm.DB) adapter.SavingsGoalRepository {
	return &savingsGoalRepository{
		db: db,
	}
}

func (r *savingsGoalRepository) Create(ctx context.Context, goal *entity.SavingsGoal) error {
	return conn(ctx, r.db).Create(model.SavingsGoalFromEntity(goal)).Error
}

func (r *savingsGoalRepository) FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.SavingsGoal, error) {
	var goalModel model.SavingsGoalModel
	result := conn(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).First(&goalModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrSavingsGoalNotFound
		}
		return nil, result.Error
	}
	return goalModel.ToEntity(), nil
}

func (r *savingsGoalRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*entity.SavingsGoal, error) {
	var goalModels []model.SavingsGoalModel
	if err := conn(ctx, r.db).Where("user_id = ?", userID).Order("created_at ASC").Find(&goalModels).Error; err != nil {
		return nil, err
	}
	return toSavingsGoals(goalModels), nil
}

func (r *savingsGoalRepository) FindDueForAutoSave(ctx context.Context, now time.Time, after *adapter.DueCursor, limit int) ([]*entity.SavingsGoal, error) {
	var goalModels []model.SavingsGoalModel
	query := conn(ctx, r.db).
		Where("is_auto_save_enabled = ? AND next_auto_save_date IS NOT NULL AND next_auto_save_date <= ?", true, now.UTC())
	if after != nil {
		query = query.Where("(next_auto_save_date > ? OR (next_auto_save_date = ? AND id > ?))",
			after.NextAutoSaveDate.UTC(), after.NextAutoSaveDate.UTC(), after.ID)
	}
	query = query.Order("next_auto_save_date ASC").Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&goalModels).Error; err != nil {
		return nil, err
	}
	return toSavingsGoals(goalModels), nil
}

func (r *savingsGoalRepository) Update(ctx context.Context, goal *entity.SavingsGoal) error {
	goalModel := model.SavingsGoalFromEntity(goal)
	result := conn(ctx, r.db).
		Model(&model.SavingsGoalModel{}).
		Where("id = ? AND user_id = ? AND version = ?", goal.ID, goal.UserID, goal.Version).
		Updates(map[string]any{
			"name":                 goalModel.Name,
			"target_amount":        goalModel.TargetAmount,
			"current_amount":       goalModel.CurrentAmount,
			"is_auto_save_enabled": goalModel.IsAutoSaveEnabled,
			"auto_save_amount":     goalModel.AutoSaveAmount,
			"auto_save_day":        goalModel.AutoSaveDay,
			"next_auto_save_date":  goalModel.NextAutoSaveDate,
			"version":              goal.Version + 1,
			"updated_at":           goalModel.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, goal.ID, goal.UserID)
	}
	goal.Version++
	return nil
}

func (r *savingsGoalRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result := conn(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).Delete(&model.SavingsGoalModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrSavingsGoalNotFound
	}
	return nil
}

// missingOrStale tells a deleted goal apart from a lost version race.
func (r *savingsGoalRepository) missingOrStale(ctx context.Context, id, userID uuid.UUID) error {
	var count int64
	if err := conn(ctx, r.db).Model(&model.SavingsGoalModel{}).Where("id = ? AND user_id = ?", id, userID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domainerror.ErrSavingsGoalNotFound
	}
	return domainerror.ErrConcurrentModification
}

func toSavingsGoals(goalModels []model.SavingsGoalModel) []*entity.SavingsGoal {
	goals := make([]*entity.SavingsGoal, len(goalModels))
	for i := range goalModels {
		goals[i] = goalModels[i].ToEntity()
	}
	return goals
}
