// Package savings contains the savings goal use cases.
package savings

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/application/usecase/category"
	"github.com/finance-tracker/savings-ledger/internal/application/usecase/notification"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
)

// errNotDue aborts an auto-save whose goal was already advanced or disabled.
var errNotDue = errors.New("auto-save not due")

// RunAutoSaveInput identifies the goal the scheduler picked up.
type RunAutoSaveInput struct {
	GoalID uuid.UUID
	UserID uuid.UUID
	Now    time.Time
}

// RunAutoSaveOutput reports what one auto-save did.
type RunAutoSaveOutput struct {
	Executed bool
	Goal     *entity.SavingsGoal
}

// RunAutoSaveUseCase performs one scheduled deposit. It is only called by the
// scheduler and shares the deposit path with DepositUseCase.
type RunAutoSaveUseCase struct {
	writer   goalWriter
	ledger   ledger
	enqueuer *notification.Enqueuer
}

// NewRunAutoSaveUseCase creates a new RunAutoSaveUseCase instance.
func NewRunAutoSaveUseCase(
	goalRepo adapter.SavingsGoalRepository,
	transactionRepo adapter.TransactionRepository,
	resolver *category.Resolver,
	enqueuer *notification.Enqueuer,
	transactor adapter.Transactor,
) *RunAutoSaveUseCase {
	return &RunAutoSaveUseCase{
		writer:   goalWriter{goalRepo: goalRepo, transactor: transactor},
		ledger:   ledger{transactionRepo: transactionRepo, resolver: resolver},
		enqueuer: enqueuer,
	}
}

// Execute deposits autoSaveAmount and moves the next run exactly one month
// forward. The goal is re-read first, so a goal that is no longer due is left
// alone and a repeated call for the same period posts nothing.
func (uc *RunAutoSaveUseCase) Execute(ctx context.Context, input RunAutoSaveInput) (*RunAutoSaveOutput, error) {
	now := input.Now.UTC()
	var deposited bool

	goal, err := uc.writer.modify(ctx, input.GoalID, input.UserID, func(ctx context.Context, goal *entity.SavingsGoal) error {
		deposited = false
		if !goal.IsAutoSaveDue(now) {
			return errNotDue
		}
		if goal.AutoSaveAmount.IsPositive() {
			if err := uc.ledger.depositInto(ctx, goal, goal.AutoSaveAmount, goal.AutoDepositDescription(), now); err != nil {
				return err
			}
			deposited = true
		}
		goal.AdvanceAutoSave()
		goal.UpdatedAt = now
		return nil
	}, func(ctx context.Context, goal *entity.SavingsGoal) error {
		if !deposited {
			return nil
		}
		return uc.enqueuer.Enqueue(ctx, goal.UserID, entity.NotificationAutoSaveExecuted, "Auto-save: "+goal.Name, map[string]any{
			"goal_name":      goal.Name,
			"amount":         goal.AutoSaveAmount.StringFixed(2),
			"current_amount": goal.CurrentAmount.StringFixed(2),
			"target_amount":  goal.TargetAmount.StringFixed(2),
			"next_date":      goal.NextAutoSaveDate.Format(time.DateOnly),
		})
	})
	if errors.Is(err, errNotDue) {
		return &RunAutoSaveOutput{Executed: false}, nil
	}
	if err != nil {
		return nil, err
	}

	return &RunAutoSaveOutput{
		Executed: true,
		Goal:     goal,
	}, nil
}
