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

// paymentEventRepository implements the adapter.PaymentEventRepository interface.
type paymentEventRepository struct {
	db *gorm.DB
}

// NewPaymentEventRepository creates a new payment event repository instance.
func NewPaymentEventRepository(db *gorm.DB) adapter.PaymentEventRepository {
	return &paymentEventRepository{
		db: db,
	}
}

// Create creates a new payment event.
func (r *paymentEventRepository) Create(ctx context.Context, event *entity.PaymentEvent) error {
	return conn(ctx, r.db).Create(model.PaymentEventFromEntity(event)).Error
}

// FindByID retrieves an event owned by userID.
func (r *paymentEventRepository) FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.PaymentEvent, error) {
	var eventModel model.PaymentEventModel
	result := conn(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).First(&eventModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrPaymentEventNotFound
		}
		return nil, result.Error
	}
	return eventModel.ToEntity(), nil
}

// FindAllByUser retrieves all events of a user ordered by date.
func (r *paymentEventRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*entity.PaymentEvent, error) {
	var eventModels []model.PaymentEventModel
	if err := conn(ctx, r.db).Where("user_id = ?", userID).Order("date ASC, created_at ASC").Find(&eventModels).Error; err != nil {
		return nil, err
	}

	events := make([]*entity.PaymentEvent, len(eventModels))
	for i := range eventModels {
		events[i] = eventModels[i].ToEntity()
	}
	return events, nil
}

// Update writes the event guarded by its version.
func (r *paymentEventRepository) Update(ctx context.Context, event *entity.PaymentEvent) error {
	eventModel := model.PaymentEventFromEntity(event)
	result := conn(ctx, r.db).
		Model(&model.PaymentEventModel{}).
		Where("id = ? AND user_id = ? AND version = ?", event.ID, event.UserID, event.Version).
		Updates(map[string]any{
			"title":       eventModel.Title,
			"amount":      eventModel.Amount,
			"date":        eventModel.Date,
			"frequency":   eventModel.Frequency,
			"description": eventModel.Description,
			"is_paid":     eventModel.IsPaid,
			"version":     event.Version + 1,
			"updated_at":  eventModel.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := conn(ctx, r.db).Model(&model.PaymentEventModel{}).Where("id = ? AND user_id = ?", event.ID, event.UserID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerror.ErrPaymentEventNotFound
		}
		return domainerror.ErrConcurrentModification
	}
	event.Version++
	return nil
}

// Delete removes an event owned by userID.
func (r *paymentEventRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result := conn(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).Delete(&model.PaymentEventModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrPaymentEventNotFound
	}
	return nil
}
