// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
)

// LiabilityRepository defines the interface for liability persistence operations.
type LiabilityRepository interface {
	// Create creates a new liability.
	Create(ctx context.Context, liability *entity.Liability) error

	// FindByID retrieves a liability owned by userID.
	FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.Liability, error)

	// FindAllByUser retrieves all liabilities of a user.
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Liability, error)

	// Update updates an existing liability.
	Update(ctx context.Context, liability *entity.Liability) error

	// Delete removes a liability owned by userID.
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
