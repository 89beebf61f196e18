// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	"github.com/finance-tracker/savings-ledger/internal/integration/persistence/model"
)

// notificationRepository implements the adapter.NotificationRepository interface.
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification outbox repository.
func NewNotificationRepository(db *gorm.DB) adapter.NotificationRepository {
	return &notificationRepository{
		db: db,
	}
}

// Create adds a notification to the outbox.
func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	return conn(ctx, r.db).Create(model.NotificationFromEntity(notification)).Error
}

// ClaimPending marks up to limit due notifications as processing and returns them.
func (r *notificationRepository) ClaimPending(ctx context.Context, limit int) ([]*entity.Notification, error) {
	var claimed []*entity.Notification

	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		var notificationModels []model.NotificationModel
		result := tx.
			Where("status = ? AND scheduled_at <= ?", string(entity.NotificationPending), time.Now().UTC()).
			Order("scheduled_at ASC").
			Limit(limit).
			Find(&notificationModels)
		if result.Error != nil {
			return result.Error
		}

		for i := range notificationModels {
			// Another worker may have claimed the row in between.
			update := tx.Model(&model.NotificationModel{}).
				Where("id = ? AND status = ?", notificationModels[i].ID, string(entity.NotificationPending)).
				Update("status", string(entity.NotificationProcessing))
			if update.Error != nil {
				return update.Error
			}
			if update.RowsAffected == 0 {
				continue
			}
			notification := notificationModels[i].ToEntity()
			notification.MarkProcessing()
			claimed = append(claimed, notification)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

// Update saves the delivery state of a notification.
func (r *notificationRepository) Update(ctx context.Context, notification *entity.Notification) error {
	return conn(ctx, r.db).Save(model.NotificationFromEntity(notification)).Error
}
