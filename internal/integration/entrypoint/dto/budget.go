package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
)

// CreateBudgetRequest represents the request body for budget creation.
// Month is YYYY-MM and defaults to the current month.
type CreateBudgetRequest struct {
	CategoryID   *string          `json:"category_id,omitempty"`
	CategoryName string           `json:"category_name,omitempty" binding:"omitempty,max=100"`
	Amount       *decimal.Decimal `json:"amount" binding:"required"`
	Month        string           `json:"month,omitempty"`
	Priority     string           `json:"priority,omitempty" binding:"omitempty,oneof=low medium high"`
}

// UpdateBudgetRequest represents the request body for budget update.
type UpdateBudgetRequest struct {
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	Priority *string          `json:"priority,omitempty" binding:"omitempty,oneof=low medium high"`
}

// BudgetResponse represents a budget in API responses.
type BudgetResponse struct {
	ID           string    `json:"id"`
	CategoryID   string    `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"`
	Amount       string    `json:"amount"`
	Month        string    `json:"month"`
	Priority     string    `json:"priority"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BudgetStatusResponse is a budget with its spending for the month.
type BudgetStatusResponse struct {
	BudgetResponse
	Spent        string `json:"spent"`
	Remaining    string `json:"remaining"`
	Percentage   string `json:"percentage"`
	IsOverBudget bool   `json:"is_over_budget"`
}

// BudgetListResponse represents the response for listing budgets.
type BudgetListResponse struct {
	Month   string                 `json:"month"`
	Budgets []BudgetStatusResponse `json:"budgets"`
}

// ToBudgetResponse converts a Budget to a BudgetResponse DTO.
func ToBudgetResponse(budget *entity.Budget, category *entity.Category) BudgetResponse {
	response := BudgetResponse{
		ID:         budget.ID.String(),
		CategoryID: budget.CategoryID.String(),
		Amount:     money(budget.Amount),
		Month:      budget.Month.Format("2006-01"),
		Priority:   string(budget.Priority),
		CreatedAt:  budget.CreatedAt,
		UpdatedAt:  budget.UpdatedAt,
	}
	if category != nil {
		response.CategoryName = category.Name
	}
	return response
}

// ToBudgetStatusResponses converts evaluated budgets.
func ToBudgetStatusResponses(statuses []*entity.BudgetStatus) []BudgetStatusResponse {
	out := make([]BudgetStatusResponse, len(statuses))
	for i, s := range statuses {
		out[i] = BudgetStatusResponse{
			BudgetResponse: ToBudgetResponse(s.Budget, s.Category),
			Spent:          money(s.Spent),
			Remaining:      money(s.Remaining),
			Percentage:     s.Percentage.StringFixed(1),
			IsOverBudget:   s.IsOverBudget,
		}
	}
	return out
}

// ParseMonth parses a YYYY-MM month.
func ParseMonth(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01", s, time.UTC)
}
