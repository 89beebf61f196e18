package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	"github.com/finance-tracker/savings-ledger/internal/domain/valueobject"
)

// DefaultCustomRangeDays is the span used when no start date is given.
const DefaultCustomRangeDays = 30

// CustomReportInput selects an inclusive date range. Nil dates default to
// the last DefaultCustomRangeDays days.
type CustomReportInput struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

// CustomReport lists the transactions of a range with their totals.
type CustomReport struct {
	StartDate    time.Time
	EndDate      time.Time
	Transactions []*entity.TransactionWithCategory
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
}

// CustomReportUseCase builds a report over an arbitrary range.
type CustomReportUseCase struct {
	transactionRepo adapter.TransactionRepository
	now             func() time.Time
}

// NewCustomReportUseCase creates a new CustomReportUseCase instance.
func NewCustomReportUseCase(transactionRepo adapter.TransactionRepository) *CustomReportUseCase {
	return &CustomReportUseCase{
		transactionRepo: transactionRepo,
		now:             time.Now,
	}
}

// Execute returns the range's transactions newest first. The end date
// covers its whole day.
func (uc *CustomReportUseCase) Execute(ctx context.Context, input CustomReportInput) (*CustomReport, error) {
	today := valueobject.DateOf(uc.now().UTC())
	start := today.AddDate(0, 0, -DefaultCustomRangeDays)
	if input.StartDate != nil {
		start = valueobject.DateOf(input.StartDate.UTC())
	}
	end := today
	if input.EndDate != nil {
		end = valueobject.DateOf(input.EndDate.UTC())
	}
	if start.After(end) {
		return nil, invalidPeriod("start date must not be after end date")
	}

	transactions, err := loadRange(ctx, uc.transactionRepo, input.UserID, start, end.AddDate(0, 0, 1).Add(-time.Nanosecond))
	if err != nil {
		return nil, err
	}

	report := &CustomReport{
		StartDate:    start,
		EndDate:      end,
		Transactions: transactions,
	}
	report.TotalIncome, report.TotalExpense = totals(transactions)
	return report, nil
}
