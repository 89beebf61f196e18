package report

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/application/usecase/budget"
	"github.com/finance-tracker/savings-ledger/internal/application/usecase/usecasetest"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
)

var fixedNow = time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type seed struct {
	store  *usecasetest.Store
	userID uuid.UUID
	food   *entity.Category
	salary *entity.Category
}

func newSeed(t *testing.T) *seed {
	t.Helper()

	store := usecasetest.NewStore()
	userID := uuid.New()
	s := &seed{
		store:  store,
		userID: userID,
		food:   entity.NewCategory(userID, "Food"),
		salary: entity.NewCategory(userID, "Salary"),
	}
	store.AddCategory(s.food)
	store.AddCategory(s.salary)
	return s
}

func (s *seed) add(t *testing.T, on time.Time, transactionType entity.TransactionType, amount string, category *entity.Category) {
	t.Helper()

	var categoryID *uuid.UUID
	if category != nil {
		categoryID = &category.ID
	}
	tx := entity.NewTransaction(s.userID, on, "entry", decimal.RequireFromString(amount), transactionType, categoryID)
	if err := s.store.Transactions.Create(context.Background(), tx); err != nil {
		t.Fatalf("failed to seed transaction: %v", err)
	}
}

func day(m time.Month, d int) time.Time {
	return time.Date(2024, m, d, 9, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestMonthlyReportUseCase(t *testing.T) {
	s := newSeed(t)
	s.add(t, day(2, 5), entity.TransactionTypeIncome, "4000", s.salary)
	s.add(t, day(2, 10), entity.TransactionTypeExpense, "200", s.food)
	s.add(t, day(3, 1), entity.TransactionTypeIncome, "5000", s.salary)
	s.add(t, day(3, 2), entity.TransactionTypeExpense, "100", s.food)
	s.add(t, day(3, 2), entity.TransactionTypeExpense, "50", nil)
	s.add(t, day(3, 15), entity.TransactionTypeExpense, "150", s.food)

	uc := NewMonthlyReportUseCase(s.store.Transactions)
	uc.now = clock

	report, err := uc.Execute(context.Background(), MonthlyReportInput{UserID: s.userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !report.TotalIncome.Equal(dec("5000")) || !report.TotalExpense.Equal(dec("300")) {
		t.Errorf("unexpected totals: income %s expense %s", report.TotalIncome, report.TotalExpense)
	}
	if !report.IncomeChangePercent.Equal(dec("25")) {
		t.Errorf("expected income change 25, got %s", report.IncomeChangePercent)
	}
	if !report.ExpenseChangePercent.Equal(dec("50")) {
		t.Errorf("expected expense change 50, got %s", report.ExpenseChangePercent)
	}

	if len(report.ExpenseByCategory) != 2 {
		t.Fatalf("expected 2 expense slices, got %d", len(report.ExpenseByCategory))
	}
	if first := report.ExpenseByCategory[0]; first.Label != "Food" || !first.Amount.Equal(dec("250")) {
		t.Errorf("unexpected first slice: %+v", first)
	}
	if second := report.ExpenseByCategory[1]; second.Label != entity.CategoryOther {
		t.Errorf("expected uncategorised slice labelled Other, got %q", second.Label)
	}

	if len(report.DayLabels) != 31 {
		t.Fatalf("expected 31 day labels, got %d", len(report.DayLabels))
	}
	for _, series := range [][]decimal.Decimal{
		report.CumulativeExpenseCurrent, report.CumulativeIncomeCurrent,
		report.CumulativeExpensePrev, report.CumulativeIncomePrev,
	} {
		if len(series) != 31 {
			t.Fatalf("expected 31 points, got %d", len(series))
		}
	}
	if !report.CumulativeExpenseCurrent[1].Equal(dec("150")) || !report.CumulativeExpenseCurrent[30].Equal(dec("300")) {
		t.Errorf("unexpected current series: %v", report.CumulativeExpenseCurrent)
	}
	if !report.CumulativeExpensePrev[28].Equal(dec("200")) || !report.CumulativeExpensePrev[30].Equal(dec("200")) {
		t.Errorf("expected previous series padded with its last value, got %v", report.CumulativeExpensePrev)
	}
}

func TestChangePercent(t *testing.T) {
	tests := []struct {
		current, previous, want string
	}{
		{"0", "0", "0"},
		{"10", "0", "100"},
		{"50", "100", "-50"},
		{"100", "75", "33.33"},
	}
	for _, tt := range tests {
		if got := changePercent(dec(tt.current), dec(tt.previous)); !got.Equal(dec(tt.want)) {
			t.Errorf("changePercent(%s, %s) = %s, want %s", tt.current, tt.previous, got, tt.want)
		}
	}
}

func TestMonthlyReportUseCase_InvalidMonth(t *testing.T) {
	uc := NewMonthlyReportUseCase(usecasetest.NewStore().Transactions)
	_, err := uc.Execute(context.Background(), MonthlyReportInput{UserID: uuid.New(), Month: 13, Year: 2024})
	if !errors.Is(err, domainerror.ErrInvalidReportPeriod) {
		t.Errorf("expected ErrInvalidReportPeriod, got %v", err)
	}
}

func TestCustomReportUseCase(t *testing.T) {
	ctx := context.Background()
	s := newSeed(t)
	s.add(t, day(2, 10), entity.TransactionTypeExpense, "10", s.food)
	s.add(t, day(2, 25), entity.TransactionTypeExpense, "20", s.food)
	s.add(t, day(3, 20), entity.TransactionTypeIncome, "300", s.salary)

	uc := NewCustomReportUseCase(s.store.Transactions)
	uc.now = clock

	t.Run("defaults to the last 30 days", func(t *testing.T) {
		report, err := uc.Execute(ctx, CustomReportInput{UserID: s.userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(report.Transactions) != 2 {
			t.Fatalf("expected 2 transactions, got %d", len(report.Transactions))
		}
		if !report.Transactions[0].Transaction.Date.After(report.Transactions[1].Transaction.Date) {
			t.Error("expected newest first")
		}
		if !report.TotalIncome.Equal(dec("300")) || !report.TotalExpense.Equal(dec("20")) {
			t.Errorf("unexpected totals %s / %s", report.TotalIncome, report.TotalExpense)
		}
	})

	t.Run("end date is inclusive of its day", func(t *testing.T) {
		start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
		report, err := uc.Execute(ctx, CustomReportInput{UserID: s.userID, StartDate: &start, EndDate: &end})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(report.Transactions) != 1 {
			t.Errorf("expected 1 transaction, got %d", len(report.Transactions))
		}
	})

	t.Run("start after end is rejected", func(t *testing.T) {
		start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
		if _, err := uc.Execute(ctx, CustomReportInput{UserID: s.userID, StartDate: &start, EndDate: &end}); !errors.Is(err, domainerror.ErrInvalidReportPeriod) {
			t.Errorf("expected ErrInvalidReportPeriod, got %v", err)
		}
	})
}

func TestExportReportUseCase(t *testing.T) {
	s := newSeed(t)
	s.add(t, day(3, 20), entity.TransactionTypeIncome, "300", s.salary)

	custom := NewCustomReportUseCase(s.store.Transactions)
	custom.now = clock
	uc := NewExportReportUseCase(custom, &usecasetest.Exporter{})

	var buf bytes.Buffer
	out, err := uc.Execute(context.Background(), CustomReportInput{UserID: s.userID}, &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ContentType != "text/plain" || out.Filename != "report_20240219_20240320.xlsx" {
		t.Errorf("unexpected output: %+v", out)
	}
	if !strings.Contains(buf.String(), "2024-03-20") {
		t.Errorf("expected exported row, got %q", buf.String())
	}
}

func TestDashboardUseCase(t *testing.T) {
	ctx := context.Background()
	s := newSeed(t)
	s.add(t, day(3, 1), entity.TransactionTypeIncome, "1000", s.salary)
	s.add(t, day(3, 2), entity.TransactionTypeExpense, "120", s.food)
	s.add(t, day(3, 28), entity.TransactionTypeExpense, "500", s.food)

	transport := entity.NewCategory(s.userID, "Transport")
	s.store.AddCategory(transport)
	month := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for _, b := range []*entity.Budget{
		entity.NewBudget(s.userID, s.food.ID, dec("300"), month, entity.PriorityMedium),
		entity.NewBudget(s.userID, transport.ID, dec("100"), month, entity.PriorityHigh),
		entity.NewBudget(s.userID, s.salary.ID, dec("900"), month, entity.PriorityMedium),
	} {
		if err := s.store.Budgets.Create(ctx, b); err != nil {
			t.Fatalf("failed to seed budget: %v", err)
		}
	}

	uc := NewDashboardUseCase(s.store.Transactions, budget.NewEvaluator(s.store.Budgets, s.store.Transactions))
	uc.now = clock

	dashboard, err := uc.Execute(ctx, s.userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !dashboard.Balance.Equal(dec("880")) {
		t.Errorf("expected balance 880 excluding future entries, got %s", dashboard.Balance)
	}
	if len(dashboard.RecentTransactions) != 3 {
		t.Errorf("expected 3 recent transactions, got %d", len(dashboard.RecentTransactions))
	}
	if len(dashboard.Budgets) != 3 {
		t.Fatalf("expected 3 budgets, got %d", len(dashboard.Budgets))
	}
	order := []uuid.UUID{transport.ID, s.salary.ID, s.food.ID}
	for i, want := range order {
		if got := dashboard.Budgets[i].Budget.CategoryID; got != want {
			t.Errorf("budget %d: expected category %s, got %s", i, want, got)
		}
	}
	if !dashboard.Budgets[2].Spent.Equal(dec("620")) {
		t.Errorf("expected food spent 620, got %s", dashboard.Budgets[2].Spent)
	}
}
