// Package savings contains the savings goal use cases.
package savings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/application/usecase/category"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
	"github.com/finance-tracker/savings-ledger/internal/domain/valueobject"
)

const (
	// MaxGoalNameLength is the maximum allowed length for goal names.
	MaxGoalNameLength = 100

	// maxWriteAttempts bounds the retries after losing a version race.
	maxWriteAttempts = 3
)

// goalWriter runs versioned read-modify-write cycles on one goal. Each attempt
// is a unit of work: the goal and its ledger entries commit together or not at
// all. Steps in after run once the versioned write succeeded.
type goalWriter struct {
	goalRepo   adapter.SavingsGoalRepository
	transactor adapter.Transactor
}

func (w goalWriter) modify(
	ctx context.Context,
	goalID, userID uuid.UUID,
	fn func(ctx context.Context, goal *entity.SavingsGoal) error,
	after ...func(ctx context.Context, goal *entity.SavingsGoal) error,
) (*entity.SavingsGoal, error) {
	var goal *entity.SavingsGoal
	for attempt := 1; ; attempt++ {
		err := w.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
			found, err := w.goalRepo.FindByID(ctx, goalID, userID)
			if err != nil {
				return err
			}
			if err := fn(ctx, found); err != nil {
				return err
			}
			if err := w.goalRepo.Update(ctx, found); err != nil {
				return err
			}
			for _, step := range after {
				if err := step(ctx, found); err != nil {
					return err
				}
			}
			goal = found
			return nil
		})
		if err == nil {
			return goal, nil
		}
		if !errors.Is(err, domainerror.ErrConcurrentModification) || attempt == maxWriteAttempts {
			return nil, mapWriteError(err)
		}
		slog.Debug("Savings goal changed concurrently, retrying", "goal_id", goalID, "attempt", attempt)
	}
}

// ledger posts the money movements of goals into the user's transactions,
// always under the Savings category.
type ledger struct {
	transactionRepo adapter.TransactionRepository
	resolver        *category.Resolver
}

func (l ledger) post(
	ctx context.Context,
	userID uuid.UUID,
	transactionType entity.TransactionType,
	amount decimal.Decimal,
	description string,
	now time.Time,
) error {
	savingsCategory, err := l.resolver.FindOrCreate(ctx, userID, entity.CategorySavings)
	if err != nil {
		return fmt.Errorf("failed to resolve savings category: %w", err)
	}

	transaction := entity.NewTransaction(userID, now.UTC(), description, amount, transactionType, &savingsCategory.ID)
	if err := l.transactionRepo.Create(ctx, transaction); err != nil {
		return fmt.Errorf("failed to post ledger entry: %w", err)
	}
	return nil
}

// depositInto credits the goal and records the matching expense. Manual and
// scheduled deposits both go through here.
func (l ledger) depositInto(ctx context.Context, goal *entity.SavingsGoal, amount decimal.Decimal, description string, now time.Time) error {
	goal.Deposit(amount)
	goal.UpdatedAt = now.UTC()
	return l.post(ctx, goal.UserID, entity.TransactionTypeExpense, amount, description, now)
}

func notFound() error {
	return domainerror.NewSavingsError(
		domainerror.ErrCodeSavingsGoalNotFound,
		"savings goal not found",
		domainerror.ErrSavingsGoalNotFound,
	)
}

func mapWriteError(err error) error {
	var savingsErr *domainerror.SavingsError
	switch {
	case errors.As(err, &savingsErr):
		return err
	case errors.Is(err, domainerror.ErrSavingsGoalNotFound):
		return notFound()
	case errors.Is(err, domainerror.ErrConcurrentModification):
		return domainerror.NewSavingsError(
			domainerror.ErrCodeSavingsConflict,
			"the goal was changed by another request, please retry",
			domainerror.ErrConcurrentModification,
		)
	}
	return fmt.Errorf("failed to update savings goal: %w", err)
}

func normalizeGoalName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxGoalNameLength {
		return "", domainerror.NewSavingsError(
			domainerror.ErrCodeInvalidGoalName,
			fmt.Sprintf("goal name must be between 1 and %d characters", MaxGoalNameLength),
			domainerror.ErrInvalidGoalName,
		)
	}
	return name, nil
}

func validateMoveAmount(amount decimal.Decimal) error {
	if !valueobject.IsWholeCents(amount) {
		return domainerror.NewSavingsError(
			domainerror.ErrCodeInvalidSavingsAmount,
			"amount must have at most two decimal places",
			domainerror.ErrInvalidSavingsAmount,
		)
	}
	return nil
}

func validateTarget(target decimal.Decimal) error {
	if !target.IsPositive() || !valueobject.IsWholeCents(target) {
		return domainerror.NewSavingsError(
			domainerror.ErrCodeInvalidTargetAmount,
			"target amount must be greater than zero with at most two decimal places",
			domainerror.ErrInvalidTargetAmount,
		)
	}
	return nil
}

func validateAutoSave(amount decimal.Decimal, day int) error {
	if amount.IsNegative() || !valueobject.IsWholeCents(amount) {
		return domainerror.NewSavingsError(
			domainerror.ErrCodeInvalidAutoSaveAmount,
			"auto-save amount must not be negative or have more than two decimal places",
			domainerror.ErrInvalidAutoSaveAmount,
		)
	}
	if day < entity.MinAutoSaveDay || day > entity.MaxAutoSaveDay {
		return domainerror.NewSavingsError(
			domainerror.ErrCodeInvalidAutoSaveDay,
			"auto-save day must be between 1 and 28",
			domainerror.ErrInvalidAutoSaveDay,
		)
	}
	return nil
}
