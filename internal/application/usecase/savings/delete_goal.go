// Package savings contains the savings goal use cases.
package savings

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/application/usecase/category"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
)

// DeleteGoalUseCase removes a goal and returns its balance to the ledger.
type DeleteGoalUseCase struct {
	writer   goalWriter
	goalRepo adapter.SavingsGoalRepository
	ledger   ledger
	now      func() time.Time
}

// NewDeleteGoalUseCase creates a new DeleteGoalUseCase instance.
func NewDeleteGoalUseCase(
	goalRepo adapter.SavingsGoalRepository,
	transactionRepo adapter.TransactionRepository,
	resolver *category.Resolver,
	transactor adapter.Transactor,
) *DeleteGoalUseCase {
	return &DeleteGoalUseCase{
		writer:   goalWriter{goalRepo: goalRepo, transactor: transactor},
		goalRepo: goalRepo,
		ledger:   ledger{transactionRepo: transactionRepo, resolver: resolver},
		now:      time.Now,
	}
}

// Execute posts a refund of the remaining balance, then deletes the goal. The
// versioned write before the delete makes sure the refunded balance is the
// latest one.
func (uc *DeleteGoalUseCase) Execute(ctx context.Context, goalID, userID uuid.UUID) error {
	now := uc.now().UTC()
	_, err := uc.writer.modify(ctx, goalID, userID, func(ctx context.Context, goal *entity.SavingsGoal) error {
		if goal.CurrentAmount.IsPositive() {
			if err := uc.ledger.post(ctx, goal.UserID, entity.TransactionTypeIncome, goal.CurrentAmount, goal.RefundDescription(), now); err != nil {
				return err
			}
		}
		goal.UpdatedAt = now
		return nil
	}, func(ctx context.Context, goal *entity.SavingsGoal) error {
		if err := uc.goalRepo.Delete(ctx, goal.ID, goal.UserID); err != nil {
			return fmt.Errorf("failed to delete savings goal: %w", err)
		}
		return nil
	})
	return err
}
