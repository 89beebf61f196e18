package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction creation.
// CategoryName is used when CategoryID is absent.
type CreateTransactionRequest struct {
	Date         string           `json:"date" binding:"required"`
	Description  string           `json:"description" binding:"required,min=1,max=255"`
	Amount       *decimal.Decimal `json:"amount" binding:"required"`
	Type         string           `json:"type" binding:"required,oneof=expense income"`
	CategoryID   *string          `json:"category_id,omitempty"`
	CategoryName string           `json:"category_name,omitempty" binding:"omitempty,max=100"`
}

// UpdateTransactionRequest represents the request body for transaction update.
type UpdateTransactionRequest struct {
	Date         *string          `json:"date,omitempty"`
	Description  *string          `json:"description,omitempty" binding:"omitempty,min=1,max=255"`
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	Type         *string          `json:"type,omitempty" binding:"omitempty,oneof=expense income"`
	CategoryID   *string          `json:"category_id,omitempty"`
	CategoryName *string          `json:"category_name,omitempty" binding:"omitempty,max=100"`
}

// TransactionCategoryResponse represents category information in transaction response.
type TransactionCategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          string                       `json:"id"`
	Date        string                       `json:"date"`
	Description string                       `json:"description"`
	Amount      string                       `json:"amount"`
	Type        string                       `json:"type"`
	CategoryID  *string                      `json:"category_id,omitempty"`
	Category    *TransactionCategoryResponse `json:"category,omitempty"`
	CreatedAt   time.Time                    `json:"created_at"`
	UpdatedAt   time.Time                    `json:"updated_at"`
}

// TransactionPaginationResponse represents pagination information in API responses.
type TransactionPaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// TransactionTotalsResponse represents aggregated totals in API responses.
type TransactionTotalsResponse struct {
	IncomeTotal  string `json:"income_total"`
	ExpenseTotal string `json:"expense_total"`
	NetTotal     string `json:"net_total"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse         `json:"transactions"`
	Pagination   TransactionPaginationResponse `json:"pagination"`
	Totals       TransactionTotalsResponse     `json:"totals"`
}

// ToTransactionResponse converts a transaction with its category to a DTO.
func ToTransactionResponse(txn *entity.TransactionWithCategory) TransactionResponse {
	t := txn.Transaction
	response := TransactionResponse{
		ID:          t.ID.String(),
		Date:        formatDate(t.Date),
		Description: t.Description,
		Amount:      money(t.Amount),
		Type:        string(t.Type),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.CategoryID != nil {
		id := t.CategoryID.String()
		response.CategoryID = &id
	}
	if txn.Category != nil {
		response.Category = &TransactionCategoryResponse{
			ID:   txn.Category.ID.String(),
			Name: txn.Category.Name,
		}
	}
	return response
}

// ToTransactionResponses converts a slice of transactions.
func ToTransactionResponses(txns []*entity.TransactionWithCategory) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		out[i] = ToTransactionResponse(txn)
	}
	return out
}

// ToTransactionListResponse converts a list result and its totals.
func ToTransactionListResponse(result *adapter.TransactionListResult, totals *adapter.TransactionTotals) TransactionListResponse {
	return TransactionListResponse{
		Transactions: ToTransactionResponses(result.Transactions),
		Pagination: TransactionPaginationResponse{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
		Totals: TransactionTotalsResponse{
			IncomeTotal:  money(totals.IncomeTotal),
			ExpenseTotal: money(totals.ExpenseTotal),
			NetTotal:     money(totals.Balance()),
		},
	}
}
