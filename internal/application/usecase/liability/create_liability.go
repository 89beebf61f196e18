package liability

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
)

// CreateLiabilityInput represents the input for liability creation.
type CreateLiabilityInput struct {
	UserID             uuid.UUID
	Title              string
	Type               entity.LiabilityType
	TotalAmount        decimal.Decimal
	PaidAmount         decimal.Decimal
	StartDate          time.Time
	EndDate            *time.Time
	MonthlyInstallment *decimal.Decimal
	ReminderEnabled    bool
	Description        string
}

// CreateLiabilityUseCase handles liability creation.
type CreateLiabilityUseCase struct {
	liabilityRepo adapter.LiabilityRepository
}

// NewCreateLiabilityUseCase creates a new CreateLiabilityUseCase instance.
func NewCreateLiabilityUseCase(liabilityRepo adapter.LiabilityRepository) *CreateLiabilityUseCase {
	return &CreateLiabilityUseCase{
		liabilityRepo: liabilityRepo,
	}
}

// Execute validates and stores the liability.
func (uc *CreateLiabilityUseCase) Execute(ctx context.Context, input CreateLiabilityInput) (*entity.Liability, error) {
	title, err := normalizeTitle(input.Title)
	if err != nil {
		return nil, err
	}
	if err := validateType(input.Type); err != nil {
		return nil, err
	}
	if input.StartDate.IsZero() {
		return nil, domainerror.NewLiabilityError(
			domainerror.ErrCodeMissingLiabilityFields,
			"start date is required",
			nil,
		)
	}

	liability := entity.NewLiability(input.UserID, title, input.Type, input.TotalAmount, *dateOnly(&input.StartDate))
	liability.PaidAmount = input.PaidAmount
	liability.EndDate = dateOnly(input.EndDate)
	liability.MonthlyInstallment = input.MonthlyInstallment
	liability.ReminderEnabled = input.ReminderEnabled
	liability.Description = input.Description
	if err := validateState(liability); err != nil {
		return nil, err
	}

	if err := uc.liabilityRepo.Create(ctx, liability); err != nil {
		return nil, fmt.Errorf("failed to create liability: %w", err)
	}
	return liability, nil
}
