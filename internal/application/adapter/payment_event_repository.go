// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
)

// PaymentEventRepository defines the interface for payment event persistence operations.
type PaymentEventRepository interface {
	// Create creates a new payment event.
	Create(ctx context.Context, event *entity.PaymentEvent) error

	// FindByID retrieves an event owned by userID.
	FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.PaymentEvent, error)

	// FindAllByUser retrieves all events of a user ordered by date.
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*entity.PaymentEvent, error)

	// Update persists the event if its stored version still equals event.Version,
	// then increments event.Version. A stale version returns ErrConcurrentModification.
	Update(ctx context.Context, event *entity.PaymentEvent) error

	// Delete removes an event owned by userID.
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
