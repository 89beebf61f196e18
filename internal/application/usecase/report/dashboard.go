package report

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/application/usecase/budget"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
)

// RecentTransactionsLimit is the number of transactions on the dashboard.
const RecentTransactionsLimit = 5

// Dashboard is the landing summary of a user's finances.
type Dashboard struct {
	Balance            decimal.Decimal
	RecentTransactions []*entity.TransactionWithCategory
	Budgets            []*entity.BudgetStatus
}

// DashboardUseCase builds the dashboard.
type DashboardUseCase struct {
	transactionRepo adapter.TransactionRepository
	evaluator       *budget.Evaluator
	now             func() time.Time
}

// NewDashboardUseCase creates a new DashboardUseCase instance.
func NewDashboardUseCase(transactionRepo adapter.TransactionRepository, evaluator *budget.Evaluator) *DashboardUseCase {
	return &DashboardUseCase{
		transactionRepo: transactionRepo,
		evaluator:       evaluator,
		now:             time.Now,
	}
}

// Execute returns the balance of transactions dated up to now, the latest
// transactions including scheduled ones, and the current month's budgets
// ordered by priority then amount.
func (uc *DashboardUseCase) Execute(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	now := uc.now().UTC()
	dashboard := &Dashboard{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := uc.transactionRepo.GetTotals(gctx, adapter.TransactionFilter{UserID: userID, EndDate: &now})
		if err != nil {
			return fmt.Errorf("failed to get totals: %w", err)
		}
		dashboard.Balance = t.Balance()
		return nil
	})
	g.Go(func() error {
		result, err := uc.transactionRepo.FindByFilter(gctx, adapter.TransactionFilter{UserID: userID}, adapter.TransactionPagination{Page: 1, Limit: RecentTransactionsLimit})
		if err != nil {
			return fmt.Errorf("failed to load recent transactions: %w", err)
		}
		dashboard.RecentTransactions = result.Transactions
		return nil
	})
	g.Go(func() error {
		statuses, err := uc.evaluator.Evaluate(gctx, userID, now)
		if err != nil {
			return err
		}
		slices.SortStableFunc(statuses, func(a, b *entity.BudgetStatus) int {
			if c := b.Budget.Priority.Rank() - a.Budget.Priority.Rank(); c != 0 {
				return c
			}
			return b.Budget.Amount.Cmp(a.Budget.Amount)
		})
		dashboard.Budgets = statuses
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dashboard, nil
}
