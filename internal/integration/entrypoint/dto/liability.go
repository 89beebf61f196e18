package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
)

// CreateLiabilityRequest represents the request body for liability creation.
type CreateLiabilityRequest struct {
	Title              string           `json:"title" binding:"required,min=1,max=200"`
	Type               string           `json:"type" binding:"required,oneof=bank_loan friend_debt"`
	TotalAmount        *decimal.Decimal `json:"total_amount" binding:"required"`
	PaidAmount         *decimal.Decimal `json:"paid_amount,omitempty"`
	StartDate          string           `json:"start_date" binding:"required"`
	EndDate            string           `json:"end_date,omitempty"`
	MonthlyInstallment *decimal.Decimal `json:"monthly_installment,omitempty"`
	ReminderEnabled    bool             `json:"reminder_enabled"`
	Description        string           `json:"description,omitempty" binding:"max=1000"`
}

// UpdateLiabilityRequest represents the request body for liability update.
// An empty end_date clears it.
type UpdateLiabilityRequest struct {
	Title              *string          `json:"title,omitempty" binding:"omitempty,min=1,max=200"`
	Type               *string          `json:"type,omitempty" binding:"omitempty,oneof=bank_loan friend_debt"`
	TotalAmount        *decimal.Decimal `json:"total_amount,omitempty"`
	PaidAmount         *decimal.Decimal `json:"paid_amount,omitempty"`
	StartDate          *string          `json:"start_date,omitempty"`
	EndDate            *string          `json:"end_date,omitempty"`
	MonthlyInstallment *decimal.Decimal `json:"monthly_installment,omitempty"`
	ClearInstallment   bool             `json:"clear_installment,omitempty"`
	ReminderEnabled    *bool            `json:"reminder_enabled,omitempty"`
	Description        *string          `json:"description,omitempty" binding:"omitempty,max=1000"`
}

// PayInstallmentRequest represents the request body for paying a liability.
// Without an amount the monthly installment is paid.
type PayInstallmentRequest struct {
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

// LiabilityResponse represents a liability in API responses.
type LiabilityResponse struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Type               string    `json:"type"`
	TotalAmount        string    `json:"total_amount"`
	PaidAmount         string    `json:"paid_amount"`
	RemainingAmount    string    `json:"remaining_amount"`
	ProgressPercentage int       `json:"progress_percentage"`
	IsPaidOff          bool      `json:"is_paid_off"`
	StartDate          string    `json:"start_date"`
	EndDate            *string   `json:"end_date"`
	MonthlyInstallment *string   `json:"monthly_installment"`
	ReminderEnabled    bool      `json:"reminder_enabled"`
	Description        string    `json:"description"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// LiabilityListResponse represents the response for listing liabilities.
type LiabilityListResponse struct {
	Liabilities []LiabilityResponse `json:"liabilities"`
}

// ToLiabilityResponse converts a Liability to a LiabilityResponse DTO.
func ToLiabilityResponse(l *entity.Liability) LiabilityResponse {
	response := LiabilityResponse{
		ID:                 l.ID.String(),
		Title:              l.Title,
		Type:               string(l.Type),
		TotalAmount:        money(l.TotalAmount),
		PaidAmount:         money(l.PaidAmount),
		RemainingAmount:    money(l.RemainingAmount()),
		ProgressPercentage: l.ProgressPercentage(),
		IsPaidOff:          l.IsPaidOff(),
		StartDate:          formatDate(l.StartDate),
		EndDate:            formatOptionalDate(l.EndDate),
		ReminderEnabled:    l.ReminderEnabled,
		Description:        l.Description,
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
	}
	if l.MonthlyInstallment != nil {
		s := money(*l.MonthlyInstallment)
		response.MonthlyInstallment = &s
	}
	return response
}

// ToLiabilityListResponse converts liabilities to a LiabilityListResponse.
func ToLiabilityListResponse(liabilities []*entity.Liability) LiabilityListResponse {
	out := make([]LiabilityResponse, len(liabilities))
	for i, l := range liabilities {
		out[i] = ToLiabilityResponse(l)
	}
	return LiabilityListResponse{Liabilities: out}
}
