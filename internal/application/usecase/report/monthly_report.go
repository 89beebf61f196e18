package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	"github.com/finance-tracker/savings-ledger/internal/domain/valueobject"
)

// MonthlyReportInput selects the report month. Zero month and year mean the
// current month.
type MonthlyReportInput struct {
	UserID uuid.UUID
	Month  int
	Year   int
}

// MonthlyReport compares a month with the one before it.
type MonthlyReport struct {
	Month                time.Time
	TotalIncome          decimal.Decimal
	TotalExpense         decimal.Decimal
	PrevTotalIncome      decimal.Decimal
	PrevTotalExpense     decimal.Decimal
	IncomeChangePercent  decimal.Decimal
	ExpenseChangePercent decimal.Decimal
	ExpenseByCategory    []Slice
	IncomeByCategory     []Slice
	DayLabels            []int

	// Cumulative daily series, one value per entry of DayLabels.
	CumulativeExpenseCurrent []decimal.Decimal
	CumulativeIncomeCurrent  []decimal.Decimal
	CumulativeExpensePrev    []decimal.Decimal
	CumulativeIncomePrev     []decimal.Decimal
}

// MonthlyReportUseCase builds the monthly report.
type MonthlyReportUseCase struct {
	transactionRepo adapter.TransactionRepository
	now             func() time.Time
}

// NewMonthlyReportUseCase creates a new MonthlyReportUseCase instance.
func NewMonthlyReportUseCase(transactionRepo adapter.TransactionRepository) *MonthlyReportUseCase {
	return &MonthlyReportUseCase{
		transactionRepo: transactionRepo,
		now:             time.Now,
	}
}

// Execute loads the month and the previous month concurrently and aggregates them.
func (uc *MonthlyReportUseCase) Execute(ctx context.Context, input MonthlyReportInput) (*MonthlyReport, error) {
	month, err := reportMonth(input.Month, input.Year, uc.now())
	if err != nil {
		return nil, err
	}
	prevMonth := valueobject.AddMonths(month, -1)

	var current, previous []*entity.TransactionWithCategory
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = loadRange(gctx, uc.transactionRepo, input.UserID, month, valueobject.EndOfMonth(month))
		return err
	})
	g.Go(func() error {
		var err error
		previous, err = loadRange(gctx, uc.transactionRepo, input.UserID, prevMonth, valueobject.EndOfMonth(prevMonth))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &MonthlyReport{Month: month}
	report.TotalIncome, report.TotalExpense = totals(current)
	report.PrevTotalIncome, report.PrevTotalExpense = totals(previous)
	report.IncomeChangePercent = changePercent(report.TotalIncome, report.PrevTotalIncome)
	report.ExpenseChangePercent = changePercent(report.TotalExpense, report.PrevTotalExpense)
	report.ExpenseByCategory = pie(current, entity.TransactionTypeExpense)
	report.IncomeByCategory = pie(current, entity.TransactionTypeIncome)

	days := valueobject.DaysInMonth(month.Year(), month.Month())
	prevDays := valueobject.DaysInMonth(prevMonth.Year(), prevMonth.Month())
	report.DayLabels = make([]int, days)
	for i := range report.DayLabels {
		report.DayLabels[i] = i + 1
	}
	report.CumulativeExpenseCurrent = cumulative(current, entity.TransactionTypeExpense, days, days)
	report.CumulativeIncomeCurrent = cumulative(current, entity.TransactionTypeIncome, days, days)
	report.CumulativeExpensePrev = cumulative(previous, entity.TransactionTypeExpense, prevDays, days)
	report.CumulativeIncomePrev = cumulative(previous, entity.TransactionTypeIncome, prevDays, days)

	return report, nil
}

// cumulative returns length running totals by day of month. Days past
// monthDays repeat the last total.
func cumulative(transactions []*entity.TransactionWithCategory, transactionType entity.TransactionType, monthDays, length int) []decimal.Decimal {
	perDay := make([]decimal.Decimal, monthDays+1)
	for _, t := range transactions {
		if t.Transaction.Type != transactionType {
			continue
		}
		day := t.Transaction.Date.UTC().Day()
		perDay[day] = perDay[day].Add(t.Transaction.Amount)
	}

	series := make([]decimal.Decimal, length)
	running := decimal.Zero
	for i := range series {
		if day := i + 1; day <= monthDays {
			running = running.Add(perDay[day])
		}
		series[i] = running
	}
	return series
}

func reportMonth(month, year int, now time.Time) (time.Time, error) {
	y, m, _ := now.UTC().Date()
	if year == 0 {
		year = y
	}
	if month == 0 {
		month = int(m)
	}
	if month < 1 || month > 12 || year < 1900 || year > 9999 {
		return time.Time{}, invalidPeriod("month must be between 1 and 12 and year must be valid")
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), nil
}
