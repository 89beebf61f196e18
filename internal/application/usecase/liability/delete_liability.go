package liability

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
)

// DeleteLiabilityUseCase removes a liability.
type DeleteLiabilityUseCase struct {
	liabilityRepo adapter.LiabilityRepository
}

// NewDeleteLiabilityUseCase creates a new DeleteLiabilityUseCase instance.
func NewDeleteLiabilityUseCase(liabilityRepo adapter.LiabilityRepository) *DeleteLiabilityUseCase {
	return &DeleteLiabilityUseCase{
		liabilityRepo: liabilityRepo,
	}
}

// Execute deletes the liability if the user owns it.
func (uc *DeleteLiabilityUseCase) Execute(ctx context.Context, liabilityID, userID uuid.UUID) error {
	if err := uc.liabilityRepo.Delete(ctx, liabilityID, userID); err != nil {
		if errors.Is(err, domainerror.ErrLiabilityNotFound) {
			return notFound()
		}
		return fmt.Errorf("failed to delete liability: %w", err)
	}
	return nil
}
