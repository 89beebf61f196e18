package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
)

// DeleteEventUseCase removes a payment event.
type DeleteEventUseCase struct {
	eventRepo adapter.PaymentEventRepository
}

// NewDeleteEventUseCase creates a new DeleteEventUseCase instance.
func NewDeleteEventUseCase(eventRepo adapter.PaymentEventRepository) *DeleteEventUseCase {
	return &DeleteEventUseCase{
		eventRepo: eventRepo,
	}
}

// Execute deletes the event if the user owns it.
func (uc *DeleteEventUseCase) Execute(ctx context.Context, eventID, userID uuid.UUID) error {
	if err := uc.eventRepo.Delete(ctx, eventID, userID); err != nil {
		if errors.Is(err, domainerror.ErrPaymentEventNotFound) {
			return notFound()
		}
		return fmt.Errorf("failed to delete payment event: %w", err)
	}
	return nil
}
