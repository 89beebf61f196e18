// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// System category names used to tag ledger entries created by the engines.
const (
	CategorySavings = "Savings"
	CategoryBills   = "Bills"
	CategoryFood    = "Food"
	// CategoryOther labels uncategorised entries in reports. It is never persisted.
	CategoryOther = "Other"
)

// Category represents a named bucket for transactions and budgets. Names are
// unique per user and compared case-sensitively.
type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCategory creates a new Category entity.
func NewCategory(userID uuid.UUID, name string) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
