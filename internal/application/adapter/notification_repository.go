// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
)

// NotificationRepository defines the interface for the email outbox.
type NotificationRepository interface {
	// Create adds a notification to the outbox.
	Create(ctx context.Context, notification *entity.Notification) error

	// ClaimPending marks up to limit due notifications as processing and returns them.
	ClaimPending(ctx context.Context, limit int) ([]*entity.Notification, error)

	// Update saves the delivery state of a notification.
	Update(ctx context.Context, notification *entity.Notification) error
}
