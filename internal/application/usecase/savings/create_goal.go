// Package savings contains the savings goal use cases.
package savings

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
)

// CreateGoalInput represents the input for goal creation.
type CreateGoalInput struct {
	UserID            uuid.UUID
	Name              string
	TargetAmount      decimal.Decimal
	IsAutoSaveEnabled bool
	AutoSaveAmount    decimal.Decimal
	AutoSaveDay       int // Optional, defaults to 1
}

// CreateGoalOutput represents the output of goal creation.
type CreateGoalOutput struct {
	Goal *entity.SavingsGoal
}

// CreateGoalUseCase handles goal creation logic.
type CreateGoalUseCase struct {
	goalRepo adapter.SavingsGoalRepository
	now      func() time.Time
}

// NewCreateGoalUseCase creates a new CreateGoalUseCase instance.
func NewCreateGoalUseCase(goalRepo adapter.SavingsGoalRepository) *CreateGoalUseCase {
	return &CreateGoalUseCase{
		goalRepo: goalRepo,
		now:      time.Now,
	}
}

// Execute creates the goal with a zero balance.
func (uc *CreateGoalUseCase) Execute(ctx context.Context, input CreateGoalInput) (*CreateGoalOutput, error) {
	name, err := normalizeGoalName(input.Name)
	if err != nil {
		return nil, err
	}
	if err := validateTarget(input.TargetAmount); err != nil {
		return nil, err
	}
	day := input.AutoSaveDay
	if day == 0 {
		day = entity.MinAutoSaveDay
	}
	if err := validateAutoSave(input.AutoSaveAmount, day); err != nil {
		return nil, err
	}

	goal := entity.NewSavingsGoal(
		input.UserID,
		name,
		input.TargetAmount,
		input.IsAutoSaveEnabled,
		input.AutoSaveAmount,
		day,
		uc.now().UTC(),
	)
	if err := uc.goalRepo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create savings goal: %w", err)
	}

	return &CreateGoalOutput{
		Goal: goal,
	}, nil
}
