// Package savings contains the savings goal use cases.
package savings

import (
	"context"
	"time"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/application/usecase/category"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
)

// WithdrawUseCase moves money from a goal back to the liquid balance.
type WithdrawUseCase struct {
	writer goalWriter
	ledger ledger
	reader *GetGoalUseCase
	now    func() time.Time
}

// NewWithdrawUseCase creates a new WithdrawUseCase instance.
func NewWithdrawUseCase(
	goalRepo adapter.SavingsGoalRepository,
	transactionRepo adapter.TransactionRepository,
	resolver *category.Resolver,
	transactor adapter.Transactor,
) *WithdrawUseCase {
	return &WithdrawUseCase{
		writer: goalWriter{goalRepo: goalRepo, transactor: transactor},
		ledger: ledger{transactionRepo: transactionRepo, resolver: resolver},
		reader: NewGetGoalUseCase(goalRepo),
		now:    time.Now,
	}
}

// Execute debits the goal and posts an income under Savings. A non-positive
// amount changes nothing; an amount above the balance fails with
// ErrInsufficientFunds and leaves the goal untouched. Fractions of a cent fail
// with ErrInvalidSavingsAmount.
func (uc *WithdrawUseCase) Execute(ctx context.Context, input MoveMoneyInput) (*entity.SavingsGoal, error) {
	if err := validateMoveAmount(input.Amount); err != nil {
		return nil, err
	}
	if !input.Amount.IsPositive() {
		return uc.reader.Execute(ctx, input.GoalID, input.UserID)
	}

	now := uc.now().UTC()
	return uc.writer.modify(ctx, input.GoalID, input.UserID, func(ctx context.Context, goal *entity.SavingsGoal) error {
		if !goal.CanWithdraw(input.Amount) {
			return domainerror.NewSavingsError(
				domainerror.ErrCodeInsufficientFunds,
				"you do not have that much saved in this goal",
				domainerror.ErrInsufficientFunds,
			)
		}
		goal.Withdraw(input.Amount)
		goal.UpdatedAt = now
		return uc.ledger.post(ctx, goal.UserID, entity.TransactionTypeIncome, input.Amount, goal.WithdrawalDescription(), now)
	})
}
