// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LiabilityType distinguishes installment loans from informal debts.
type LiabilityType string

const (
	LiabilityBankLoan   LiabilityType = "bank_loan"
	LiabilityFriendDebt LiabilityType = "friend_debt"
)

// IsValid reports whether t is a known liability type.
func (t LiabilityType) IsValid() bool {
	return t == LiabilityBankLoan || t == LiabilityFriendDebt
}

// Liability is a loan or debt being repaid. PaidAmount never exceeds TotalAmount.
type Liability struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	Title              string
	Type               LiabilityType
	TotalAmount        decimal.Decimal
	PaidAmount         decimal.Decimal
	StartDate          time.Time
	EndDate            *time.Time
	MonthlyInstallment *decimal.Decimal
	ReminderEnabled    bool
	Description        string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewLiability creates a new Liability entity.
func NewLiability(userID uuid.UUID, title string, liabilityType LiabilityType, total decimal.Decimal, startDate time.Time) *Liability {
	now := time.Now().UTC()
	return &Liability{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Type:        liabilityType,
		TotalAmount: total,
		PaidAmount:  decimal.Zero,
		StartDate:   startDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Pay adds amount to the paid total, capped at the total amount.
func (l *Liability) Pay(amount decimal.Decimal) {
	l.PaidAmount = decimal.Min(l.PaidAmount.Add(amount), l.TotalAmount)
}

// RemainingAmount is what is still owed.
func (l *Liability) RemainingAmount() decimal.Decimal {
	return l.TotalAmount.Sub(l.PaidAmount)
}

// IsPaidOff reports whether nothing is owed.
func (l *Liability) IsPaidOff() bool {
	return !l.RemainingAmount().IsPositive()
}

// ProgressPercentage is the truncated paid percentage; 100 when nothing was borrowed.
func (l *Liability) ProgressPercentage() int {
	if l.TotalAmount.IsZero() {
		return 100
	}
	return int(l.PaidAmount.Div(l.TotalAmount).Mul(hundred).IntPart())
}
