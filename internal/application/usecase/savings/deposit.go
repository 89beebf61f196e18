// Package savings contains the savings goal use cases.
package savings

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/application/usecase/category"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
)

// MoveMoneyInput represents a deposit into or withdrawal from a goal.
type MoveMoneyInput struct {
	GoalID uuid.UUID
	UserID uuid.UUID
	Amount decimal.Decimal
}

// DepositUseCase moves money from the liquid balance into a goal.
type DepositUseCase struct {
	writer goalWriter
	ledger ledger
	reader *GetGoalUseCase
	now    func() time.Time
}

// NewDepositUseCase creates a new DepositUseCase instance.
func NewDepositUseCase(
	goalRepo adapter.SavingsGoalRepository,
	transactionRepo adapter.TransactionRepository,
	resolver *category.Resolver,
	transactor adapter.Transactor,
) *DepositUseCase {
	return &DepositUseCase{
		writer: goalWriter{goalRepo: goalRepo, transactor: transactor},
		ledger: ledger{transactionRepo: transactionRepo, resolver: resolver},
		reader: NewGetGoalUseCase(goalRepo),
		now:    time.Now,
	}
}

// Execute credits the goal and posts an expense under Savings. A non-positive
// amount changes nothing and returns the goal as stored. Fractions of a cent
// fail with ErrInvalidSavingsAmount.
func (uc *DepositUseCase) Execute(ctx context.Context, input MoveMoneyInput) (*entity.SavingsGoal, error) {
	if err := validateMoveAmount(input.Amount); err != nil {
		return nil, err
	}
	if !input.Amount.IsPositive() {
		return uc.reader.Execute(ctx, input.GoalID, input.UserID)
	}

	now := uc.now().UTC()
	return uc.writer.modify(ctx, input.GoalID, input.UserID, func(ctx context.Context, goal *entity.SavingsGoal) error {
		return uc.ledger.depositInto(ctx, goal, input.Amount, goal.DepositDescription(), now)
	})
}
