package dto

import (
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/application/usecase/report"
)

// SliceResponse is one labelled amount of a breakdown.
type SliceResponse struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

// MonthlyReportResponse represents the monthly report.
type MonthlyReportResponse struct {
	Month                    string          `json:"month"`
	TotalIncome              string          `json:"total_income"`
	TotalExpense             string          `json:"total_expense"`
	PrevTotalIncome          string          `json:"prev_total_income"`
	PrevTotalExpense         string          `json:"prev_total_expense"`
	IncomeChangePercent      string          `json:"income_change_percent"`
	ExpenseChangePercent     string          `json:"expense_change_percent"`
	ExpenseByCategory        []SliceResponse `json:"expense_by_category"`
	IncomeByCategory         []SliceResponse `json:"income_by_category"`
	DayLabels                []int           `json:"day_labels"`
	CumulativeExpenseCurrent []string        `json:"cumulative_expense_current"`
	CumulativeIncomeCurrent  []string        `json:"cumulative_income_current"`
	CumulativeExpensePrev    []string        `json:"cumulative_expense_prev"`
	CumulativeIncomePrev     []string        `json:"cumulative_income_prev"`
}

// CustomReportResponse represents a report over an arbitrary date range.
type CustomReportResponse struct {
	StartDate    string                `json:"start_date"`
	EndDate      string                `json:"end_date"`
	TotalIncome  string                `json:"total_income"`
	TotalExpense string                `json:"total_expense"`
	Net          string                `json:"net"`
	Transactions []TransactionResponse `json:"transactions"`
}

// DashboardResponse represents the dashboard summary.
type DashboardResponse struct {
	Balance            string                 `json:"balance"`
	RecentTransactions []TransactionResponse  `json:"recent_transactions"`
	Budgets            []BudgetStatusResponse `json:"budgets"`
}

// ToMonthlyReportResponse converts a MonthlyReport.
func ToMonthlyReportResponse(r *report.MonthlyReport) MonthlyReportResponse {
	return MonthlyReportResponse{
		Month:                    r.Month.Format("2006-01"),
		TotalIncome:              money(r.TotalIncome),
		TotalExpense:             money(r.TotalExpense),
		PrevTotalIncome:          money(r.PrevTotalIncome),
		PrevTotalExpense:         money(r.PrevTotalExpense),
		IncomeChangePercent:      r.IncomeChangePercent.StringFixed(1),
		ExpenseChangePercent:     r.ExpenseChangePercent.StringFixed(1),
		ExpenseByCategory:        toSlices(r.ExpenseByCategory),
		IncomeByCategory:         toSlices(r.IncomeByCategory),
		DayLabels:                r.DayLabels,
		CumulativeExpenseCurrent: amounts(r.CumulativeExpenseCurrent),
		CumulativeIncomeCurrent:  amounts(r.CumulativeIncomeCurrent),
		CumulativeExpensePrev:    amounts(r.CumulativeExpensePrev),
		CumulativeIncomePrev:     amounts(r.CumulativeIncomePrev),
	}
}

// ToCustomReportResponse converts a CustomReport.
func ToCustomReportResponse(r *report.CustomReport) CustomReportResponse {
	return CustomReportResponse{
		StartDate:    formatDate(r.StartDate),
		EndDate:      formatDate(r.EndDate),
		TotalIncome:  money(r.TotalIncome),
		TotalExpense: money(r.TotalExpense),
		Net:          money(r.TotalIncome.Sub(r.TotalExpense)),
		Transactions: ToTransactionResponses(r.Transactions),
	}
}

// ToDashboardResponse converts a Dashboard.
func ToDashboardResponse(d *report.Dashboard) DashboardResponse {
	return DashboardResponse{
		Balance:            money(d.Balance),
		RecentTransactions: ToTransactionResponses(d.RecentTransactions),
		Budgets:            ToBudgetStatusResponses(d.Budgets),
	}
}

func toSlices(slices []report.Slice) []SliceResponse {
	out := make([]SliceResponse, len(slices))
	for i, s := range slices {
		out[i] = SliceResponse{Label: s.Label, Amount: money(s.Amount)}
	}
	return out
}

func amounts(values []decimal.Decimal) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = money(v)
	}
	return out
}
