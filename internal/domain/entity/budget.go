// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/domain/valueobject"
)

// BudgetPriority orders budgets on the dashboard.
type BudgetPriority string

const (
	PriorityLow    BudgetPriority = "low"
	PriorityMedium BudgetPriority = "medium"
	PriorityHigh   BudgetPriority = "high"
)

// IsValid reports whether p is a known priority.
func (p BudgetPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Rank returns a sortable weight, higher first.
func (p BudgetPriority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// Budget is a monthly spending limit for one category. Month is always the
// first day of the month, and (UserID, CategoryID, Month) is unique.
type Budget struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	CategoryID uuid.UUID
	Amount     decimal.Decimal
	Month      time.Time
	Priority   BudgetPriority
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewBudget creates a budget with its month normalized to the 1st.
func NewBudget(userID, categoryID uuid.UUID, amount decimal.Decimal, month time.Time, priority BudgetPriority) *Budget {
	now := time.Now().UTC()
	return &Budget{
		ID:         uuid.New(),
		UserID:     userID,
		CategoryID: categoryID,
		Amount:     amount,
		Month:      valueobject.FirstOfMonth(month),
		Priority:   priority,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// BudgetStatus compares a budget with the spending recorded in its month.
type BudgetStatus struct {
	Budget       *Budget
	Category     *Category
	Spent        decimal.Decimal
	Remaining    decimal.Decimal
	Percentage   decimal.Decimal
	IsOverBudget bool
}

// EvaluateBudget builds the status of budget given the expense total for its category and month.
func EvaluateBudget(budget *Budget, category *Category, spent decimal.Decimal) *BudgetStatus {
	percentage := decimal.Zero
	if budget.Amount.IsPositive() {
		percentage = spent.Div(budget.Amount).Mul(hundred).Round(2)
	}
	return &BudgetStatus{
		Budget:       budget,
		Category:     category,
		Spent:        spent,
		Remaining:    budget.Amount.Sub(spent),
		Percentage:   percentage,
		IsOverBudget: spent.GreaterThan(budget.Amount),
	}
}
