package payment

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
	"github.com/finance-tracker/savings-ledger/internal/domain/valueobject"
)

// SaveEventInput represents an upsert of a payment event. A nil ID creates.
type SaveEventInput struct {
	ID          *uuid.UUID
	UserID      uuid.UUID
	Title       string
	Amount      decimal.Decimal
	Date        time.Time
	Frequency   entity.PaymentFrequency
	Description string
	IsPaid      bool
}

// SaveEventOutput represents the output of an upsert.
type SaveEventOutput struct {
	Event   *entity.PaymentEvent
	Created bool
}

// SaveEventUseCase creates or fully overwrites a payment event.
type SaveEventUseCase struct {
	eventRepo  adapter.PaymentEventRepository
	transactor adapter.Transactor
}

// NewSaveEventUseCase creates a new SaveEventUseCase instance.
func NewSaveEventUseCase(eventRepo adapter.PaymentEventRepository, transactor adapter.Transactor) *SaveEventUseCase {
	return &SaveEventUseCase{
		eventRepo:  eventRepo,
		transactor: transactor,
	}
}

// Execute validates the input and creates or updates the event.
func (uc *SaveEventUseCase) Execute(ctx context.Context, input SaveEventInput) (*SaveEventOutput, error) {
	title, err := normalizeTitle(input.Title)
	if err != nil {
		return nil, err
	}
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := validateFrequency(input.Frequency); err != nil {
		return nil, err
	}
	description, err := validateDescription(input.Description)
	if err != nil {
		return nil, err
	}
	if input.Date.IsZero() {
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodeMissingPaymentFields,
			"date is required",
			nil,
		)
	}
	date := valueobject.DateOf(input.Date)

	if input.ID == nil {
		event := entity.NewPaymentEvent(input.UserID, title, input.Amount, date, input.Frequency, description, input.IsPaid)
		if err := uc.eventRepo.Create(ctx, event); err != nil {
			return nil, fmt.Errorf("failed to create payment event: %w", err)
		}
		return &SaveEventOutput{Event: event, Created: true}, nil
	}

	var event *entity.PaymentEvent
	for attempt := 1; ; attempt++ {
		err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
			found, err := uc.eventRepo.FindByID(ctx, *input.ID, input.UserID)
			if err != nil {
				return err
			}
			found.Title = title
			found.Amount = input.Amount
			found.Date = date
			found.Frequency = input.Frequency
			found.Description = description
			found.IsPaid = input.IsPaid
			found.UpdatedAt = time.Now().UTC()
			if err := uc.eventRepo.Update(ctx, found); err != nil {
				return err
			}
			event = found
			return nil
		})
		if err == nil {
			return &SaveEventOutput{Event: event}, nil
		}
		if !errors.Is(err, domainerror.ErrConcurrentModification) || attempt == maxWriteAttempts {
			return nil, mapWriteError(err)
		}
		slog.Debug("Payment event changed concurrently, retrying", "event_id", *input.ID, "attempt", attempt)
	}
}
