package liability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
)

// PayInstallmentInput represents one repayment. A nil Amount pays the
// configured monthly installment.
type PayInstallmentInput struct {
	LiabilityID uuid.UUID
	UserID      uuid.UUID
	Amount      *decimal.Decimal
}

// PayInstallmentUseCase records a repayment against a liability.
type PayInstallmentUseCase struct {
	liabilityRepo adapter.LiabilityRepository
}

// NewPayInstallmentUseCase creates a new PayInstallmentUseCase instance.
func NewPayInstallmentUseCase(liabilityRepo adapter.LiabilityRepository) *PayInstallmentUseCase {
	return &PayInstallmentUseCase{
		liabilityRepo: liabilityRepo,
	}
}

// Execute adds the installment to the paid amount, capped at the total.
func (uc *PayInstallmentUseCase) Execute(ctx context.Context, input PayInstallmentInput) (*entity.Liability, error) {
	liability, err := uc.liabilityRepo.FindByID(ctx, input.LiabilityID, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrLiabilityNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("failed to find liability: %w", err)
	}

	amount := input.Amount
	if amount == nil {
		amount = liability.MonthlyInstallment
	}
	if !positive(amount) {
		return nil, domainerror.NewLiabilityError(
			domainerror.ErrCodeInvalidInstallment,
			"installment must be greater than zero",
			domainerror.ErrInvalidInstallment,
		)
	}

	liability.Pay(*amount)
	liability.UpdatedAt = time.Now().UTC()
	if err := uc.liabilityRepo.Update(ctx, liability); err != nil {
		return nil, fmt.Errorf("failed to update liability: %w", err)
	}

	slog.Info("Liability installment paid",
		"liability_id", liability.ID,
		"amount", amount.String(),
		"paid_off", liability.IsPaidOff())
	return liability, nil
}
