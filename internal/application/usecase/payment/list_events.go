package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
)

// ListEventsUseCase lists a user's payment events.
type ListEventsUseCase struct {
	eventRepo adapter.PaymentEventRepository
}

// NewListEventsUseCase creates a new ListEventsUseCase instance.
func NewListEventsUseCase(eventRepo adapter.PaymentEventRepository) *ListEventsUseCase {
	return &ListEventsUseCase{
		eventRepo: eventRepo,
	}
}

// Execute returns the events ordered by their anchor date.
func (uc *ListEventsUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]*entity.PaymentEvent, error) {
	events, err := uc.eventRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment events: %w", err)
	}
	return events, nil
}
