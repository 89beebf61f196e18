package liability

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
)

// GetLiabilityUseCase loads one liability.
type GetLiabilityUseCase struct {
	liabilityRepo adapter.LiabilityRepository
}

// NewGetLiabilityUseCase creates a new GetLiabilityUseCase instance.
func NewGetLiabilityUseCase(liabilityRepo adapter.LiabilityRepository) *GetLiabilityUseCase {
	return &GetLiabilityUseCase{
		liabilityRepo: liabilityRepo,
	}
}

// Execute returns the liability if the user owns it.
func (uc *GetLiabilityUseCase) Execute(ctx context.Context, liabilityID, userID uuid.UUID) (*entity.Liability, error) {
	liability, err := uc.liabilityRepo.FindByID(ctx, liabilityID, userID)
	if err != nil {
		if errors.Is(err, domainerror.ErrLiabilityNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("failed to find liability: %w", err)
	}
	return liability, nil
}

// ListLiabilitiesUseCase lists a user's liabilities.
type ListLiabilitiesUseCase struct {
	liabilityRepo adapter.LiabilityRepository
}

// NewListLiabilitiesUseCase creates a new ListLiabilitiesUseCase instance.
func NewListLiabilitiesUseCase(liabilityRepo adapter.LiabilityRepository) *ListLiabilitiesUseCase {
	return &ListLiabilitiesUseCase{
		liabilityRepo: liabilityRepo,
	}
}

// Execute returns every liability of the user.
func (uc *ListLiabilitiesUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]*entity.Liability, error) {
	liabilities, err := uc.liabilityRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list liabilities: %w", err)
	}
	return liabilities, nil
}
