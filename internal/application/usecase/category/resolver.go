// Package category contains category-related use cases.
package category

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
)

// Resolver finds a user's category by name, creating it on first use.
type Resolver struct {
	categoryRepo adapter.CategoryRepository
}

// NewResolver creates a new Resolver instance.
func NewResolver(categoryRepo adapter.CategoryRepository) *Resolver {
	return &Resolver{
		categoryRepo: categoryRepo,
	}
}

// FindOrCreate returns the user's category called name. Concurrent creators
// converge on a single row: losing the insert race re-reads the winner.
func (r *Resolver) FindOrCreate(ctx context.Context, userID uuid.UUID, name string) (*entity.Category, error) {
	category, err := r.categoryRepo.FindByName(ctx, userID, name)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, domainerror.ErrCategoryNotFound) {
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	category = entity.NewCategory(userID, name)
	if err := r.categoryRepo.Create(ctx, category); err != nil {
		if !errors.Is(err, domainerror.ErrCategoryNameExists) {
			return nil, fmt.Errorf("failed to create category: %w", err)
		}
		existing, findErr := r.categoryRepo.FindByName(ctx, userID, name)
		if findErr != nil {
			return nil, fmt.Errorf("failed to re-read category: %w", findErr)
		}
		return existing, nil
	}
	return category, nil
}

// ResolveOrFallback behaves like FindOrCreate but never fails: when the named
// category cannot be resolved it falls back to the user's oldest category, and
// to nil when the user has none.
func (r *Resolver) ResolveOrFallback(ctx context.Context, userID uuid.UUID, name string) *entity.Category {
	category, err := r.FindOrCreate(ctx, userID, name)
	if err == nil {
		return category
	}
	slog.Warn("Failed to resolve category, falling back", "user_id", userID, "name", name, "error", err)

	first, err := r.categoryRepo.FindFirstByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, domainerror.ErrCategoryNotFound) {
			slog.Warn("Failed to load fallback category", "user_id", userID, "error", err)
		}
		return nil
	}
	return first
}

// IDOf returns the id of category, or nil.
func IDOf(category *entity.Category) *uuid.UUID {
	if category == nil {
		return nil
	}
	id := category.ID
	return &id
}
