package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/application/usecase/category"
	"github.com/finance-tracker/savings-ledger/internal/application/usecase/notification"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
)

// ConfirmPaymentUseCase records that a payment event was paid.
type ConfirmPaymentUseCase struct {
	eventRepo       adapter.PaymentEventRepository
	transactionRepo adapter.TransactionRepository
	resolver        *category.Resolver
	enqueuer        *notification.Enqueuer
	transactor      adapter.Transactor
	now             func() time.Time
}

// NewConfirmPaymentUseCase creates a new ConfirmPaymentUseCase instance.
func NewConfirmPaymentUseCase(
	eventRepo adapter.PaymentEventRepository,
	transactionRepo adapter.TransactionRepository,
	resolver *category.Resolver,
	enqueuer *notification.Enqueuer,
	transactor adapter.Transactor,
) *ConfirmPaymentUseCase {
	return &ConfirmPaymentUseCase{
		eventRepo:       eventRepo,
		transactionRepo: transactionRepo,
		resolver:        resolver,
		enqueuer:        enqueuer,
		transactor:      transactor,
		now:             time.Now,
	}
}

// Execute posts the expense under the Bills category, then marks a one-time
// event paid or rolls a recurring one forward to its next future occurrence.
// Everything commits in one unit of work.
func (uc *ConfirmPaymentUseCase) Execute(ctx context.Context, eventID, userID uuid.UUID) (*entity.PaymentEvent, error) {
	now := uc.now().UTC()

	var event *entity.PaymentEvent
	for attempt := 1; ; attempt++ {
		err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
			found, err := uc.eventRepo.FindByID(ctx, eventID, userID)
			if err != nil {
				return err
			}

			bills := uc.resolver.ResolveOrFallback(ctx, userID, entity.CategoryBills)
			transaction := entity.NewTransaction(userID, now, found.PaidDescription(), found.Amount, entity.TransactionTypeExpense, category.IDOf(bills))
			if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
				return fmt.Errorf("failed to post payment: %w", err)
			}

			found.Confirm(now)
			found.UpdatedAt = now
			if err := uc.eventRepo.Update(ctx, found); err != nil {
				return err
			}

			if err := uc.enqueuer.Enqueue(ctx, userID, entity.NotificationPaymentConfirmed, "Payment confirmed: "+found.Title, map[string]any{
				"title":     found.Title,
				"amount":    found.Amount.StringFixed(2),
				"paid_at":   now.Format(time.DateOnly),
				"recurring": found.IsRecurring(),
				"next_date": found.Date.Format(time.DateOnly),
			}); err != nil {
				return err
			}

			event = found
			return nil
		})
		if err == nil {
			slog.Info("Payment confirmed", "event_id", eventID, "user_id", userID)
			return event, nil
		}
		if !errors.Is(err, domainerror.ErrConcurrentModification) || attempt == maxWriteAttempts {
			return nil, mapWriteError(err)
		}
		slog.Debug("Payment event changed concurrently, retrying", "event_id", eventID, "attempt", attempt)
	}
}
