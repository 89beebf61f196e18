// Package notification queues outgoing emails in the notification outbox.
package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
)

// Enqueuer adds notifications to the outbox for users who opted in.
type Enqueuer struct {
	userRepo         adapter.UserRepository
	notificationRepo adapter.NotificationRepository
}

// NewEnqueuer creates a new Enqueuer instance.
func NewEnqueuer(userRepo adapter.UserRepository, notificationRepo adapter.NotificationRepository) *Enqueuer {
	return &Enqueuer{
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

// Enqueue queues one email for the user. It is a no-op when the user has
// email notifications disabled. Call it with the unit-of-work context so the
// job commits together with the change it reports.
func (e *Enqueuer) Enqueue(ctx context.Context, userID uuid.UUID, kind entity.NotificationKind, subject string, data map[string]any) error {
	user, err := e.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to find notification recipient: %w", err)
	}
	if !user.EmailNotifications {
		return nil
	}

	if err := e.notificationRepo.Create(ctx, entity.NewNotification(user, kind, subject, data)); err != nil {
		return fmt.Errorf("failed to enqueue notification: %w", err)
	}
	return nil
}
