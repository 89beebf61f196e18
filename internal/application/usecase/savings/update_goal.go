// Package savings contains the savings goal use cases.
package savings

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
)

// UpdateGoalInput represents a partial goal update. Nil fields are left unchanged.
type UpdateGoalInput struct {
	GoalID            uuid.UUID
	UserID            uuid.UUID
	Name              *string
	TargetAmount      *decimal.Decimal
	IsAutoSaveEnabled *bool
	AutoSaveAmount    *decimal.Decimal
	AutoSaveDay       *int
}

// UpdateGoalUseCase handles goal updates.
type UpdateGoalUseCase struct {
	writer goalWriter
	now    func() time.Time
}

// NewUpdateGoalUseCase creates a new UpdateGoalUseCase instance.
func NewUpdateGoalUseCase(goalRepo adapter.SavingsGoalRepository, transactor adapter.Transactor) *UpdateGoalUseCase {
	return &UpdateGoalUseCase{
		writer: goalWriter{goalRepo: goalRepo, transactor: transactor},
		now:    time.Now,
	}
}

// Execute applies the update. Enabling auto-save without a scheduled date
// computes one; disabling clears it. A new day keeps the scheduled date.
func (uc *UpdateGoalUseCase) Execute(ctx context.Context, input UpdateGoalInput) (*entity.SavingsGoal, error) {
	var name string
	if input.Name != nil {
		normalized, err := normalizeGoalName(*input.Name)
		if err != nil {
			return nil, err
		}
		name = normalized
	}
	if input.TargetAmount != nil {
		if err := validateTarget(*input.TargetAmount); err != nil {
			return nil, err
		}
	}

	now := uc.now().UTC()
	return uc.writer.modify(ctx, input.GoalID, input.UserID, func(_ context.Context, goal *entity.SavingsGoal) error {
		if input.Name != nil {
			goal.Name = name
		}
		if input.TargetAmount != nil {
			goal.TargetAmount = *input.TargetAmount
		}
		if input.AutoSaveAmount != nil {
			goal.AutoSaveAmount = *input.AutoSaveAmount
		}
		if input.AutoSaveDay != nil {
			goal.AutoSaveDay = *input.AutoSaveDay
		}
		if err := validateAutoSave(goal.AutoSaveAmount, goal.AutoSaveDay); err != nil {
			return err
		}
		if input.IsAutoSaveEnabled != nil {
			goal.SetAutoSave(*input.IsAutoSaveEnabled, now)
		}
		goal.UpdatedAt = now
		return nil
	})
}
