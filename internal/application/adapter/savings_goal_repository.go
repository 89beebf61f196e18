// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
)

// DueCursor is the position of the last goal read by FindDueForAutoSave.
type DueCursor struct {
	NextAutoSaveDate time.Time
	ID               uuid.UUID
}

// SavingsGoalRepository defines the interface for savings goal persistence operations.
type SavingsGoalRepository interface {
	// Create creates a new goal.
	Create(ctx context.Context, goal *entity.SavingsGoal) error

	// FindByID retrieves a goal owned by userID.
	FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.SavingsGoal, error)

	// FindAllByUser retrieves all goals of a user, oldest first.
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*entity.SavingsGoal, error)

	// FindDueForAutoSave retrieves up to limit goals with auto-save enabled and a
	// next run date at or before now, across all users, ordered by
	// (next run date, id). A non-nil after starts the page past that position.
	FindDueForAutoSave(ctx context.Context, now time.Time, after *DueCursor, limit int) ([]*entity.SavingsGoal, error)

	// Update persists the goal if its stored version still equals goal.Version,
	// then increments goal.Version. A stale version returns ErrConcurrentModification.
	Update(ctx context.Context, goal *entity.SavingsGoal) error

	// Delete removes a goal owned by userID.
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
