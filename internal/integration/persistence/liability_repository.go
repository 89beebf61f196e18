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

// liabilityRepository implements the adapter.LiabilityRepository interface.
type liabilityRepository struct {
	db *gorm.DB
}

// NewLiabilityRepository creates a new liability repository instance.
func NewLiabilityRepository(db *gorm.DB) adapter.LiabilityRepository {
	return &liabilityRepository{
		db: db,
	}
}

func (r *liabilityRepository) Create(ctx context.Context, liability *entity.Liability) error {
	return conn(ctx, r.db).Create(model.LiabilityFromEntity(liability)).Error
}

func (r *liabilityRepository) FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.Liability, error) {
	var liabilityModel model.LiabilityModel
	result := conn(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).First(&liabilityModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrLiabilityNotFound
		}
		return nil, result.Error
	}
	return liabilityModel.ToEntity(), nil
}

func (r *liabilityRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Liability, error) {
	var liabilityModels []model.LiabilityModel
	if err := conn(ctx, r.db).Where("user_id = ?", userID).Order("start_date ASC, created_at ASC").Find(&liabilityModels).Error; err != nil {
		return nil, err
	}

	liabilities := make([]*entity.Liability, len(liabilityModels))
	for i := range liabilityModels {
		liabilities[i] = liabilityModels[i].ToEntity()
	}
	return liabilities, nil
}

func (r *liabilityRepository) Update(ctx context.Context, liability *entity.Liability) error {
	liabilityModel := model.LiabilityFromEntity(liability)
	result := conn(ctx, r.db).
		Model(&model.LiabilityModel{}).
		Where("id = ? AND user_id = ?", liability.ID, liability.UserID).
		Updates(map[string]any{
			"title":               liabilityModel.Title,
			"type":                liabilityModel.Type,
			"total_amount":        liabilityModel.TotalAmount,
			"paid_amount":         liabilityModel.PaidAmount,
			"start_date":          liabilityModel.StartDate,
			"end_date":            liabilityModel.EndDate,
			"monthly_installment": liabilityModel.MonthlyInstallment,
			"reminder_enabled":    liabilityModel.ReminderEnabled,
			"description":         liabilityModel.Description,
			"updated_at":          liabilityModel.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrLiabilityNotFound
	}
	return nil
}

func (r *liabilityRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result := conn(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).Delete(&model.LiabilityModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrLiabilityNotFound
	}
	return nil
}
