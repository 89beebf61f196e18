package liability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
)

// UpdateLiabilityInput represents a partial liability update. ClearEndDate
// and ClearInstallment remove the optional fields.
type UpdateLiabilityInput struct {
	LiabilityID        uuid.UUID
	UserID             uuid.UUID
	Title              *string
	Type               *entity.LiabilityType
	TotalAmount        *decimal.Decimal
	PaidAmount         *decimal.Decimal
	StartDate          *time.Time
	EndDate            *time.Time
	ClearEndDate       bool
	MonthlyInstallment *decimal.Decimal
	ClearInstallment   bool
	ReminderEnabled    *bool
	Description        *string
}

// UpdateLiabilityUseCase handles liability updates.
type UpdateLiabilityUseCase struct {
	liabilityRepo adapter.LiabilityRepository
}

// NewUpdateLiabilityUseCase creates a new UpdateLiabilityUseCase instance.
func NewUpdateLiabilityUseCase(liabilityRepo adapter.LiabilityRepository) *UpdateLiabilityUseCase {
	return &UpdateLiabilityUseCase{
		liabilityRepo: liabilityRepo,
	}
}

// Execute applies the update and revalidates the whole liability.
func (uc *UpdateLiabilityUseCase) Execute(ctx context.Context, input UpdateLiabilityInput) (*entity.Liability, error) {
	liability, err := uc.liabilityRepo.FindByID(ctx, input.LiabilityID, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrLiabilityNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("failed to find liability: %w", err)
	}

	if input.Title != nil {
		title, err := normalizeTitle(*input.Title)
		if err != nil {
			return nil, err
		}
		liability.Title = title
	}
	if input.Type != nil {
		if err := validateType(*input.Type); err != nil {
			return nil, err
		}
		liability.Type = *input.Type
	}
	if input.TotalAmount != nil {
		liability.TotalAmount = *input.TotalAmount
	}
	if input.PaidAmount != nil {
		liability.PaidAmount = *input.PaidAmount
	}
	if input.StartDate != nil {
		liability.StartDate = *dateOnly(input.StartDate)
	}
	switch {
	case input.ClearEndDate:
		liability.EndDate = nil
	case input.EndDate != nil:
		liability.EndDate = dateOnly(input.EndDate)
	}
	switch {
	case input.ClearInstallment:
		liability.MonthlyInstallment = nil
	case input.MonthlyInstallment != nil:
		liability.MonthlyInstallment = input.MonthlyInstallment
	}
	if input.ReminderEnabled != nil {
		liability.ReminderEnabled = *input.ReminderEnabled
	}
	if input.Description != nil {
		liability.Description = *input.Description
	}
	if err := validateState(liability); err != nil {
		return nil, err
	}

	liability.UpdatedAt = time.Now().UTC()
	if err := uc.liabilityRepo.Update(ctx, liability); err != nil {
		return nil, fmt.Errorf("failed to update liability: %w", err)
	}
	return liability, nil
}
