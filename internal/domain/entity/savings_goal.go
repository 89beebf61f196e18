// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/domain/valueobject"
)

// Auto-save day bounds. Day 28 is the last day present in every month.
const (
	MinAutoSaveDay = 1
	MaxAutoSaveDay = 28
)

var hundred = decimal.NewFromInt(100)

// SavingsGoal is a named savings target holding an accumulated balance.
// NextAutoSaveDate is set exactly when IsAutoSaveEnabled is true.
type SavingsGoal struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	Name              string
	TargetAmount      decimal.Decimal
	CurrentAmount     decimal.Decimal
	IsAutoSaveEnabled bool
	AutoSaveAmount    decimal.Decimal
	AutoSaveDay       int
	NextAutoSaveDate  *time.Time
	Version           int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewSavingsGoal creates a goal with a zero balance. When auto-save is enabled
// the first run date is derived from now.
func NewSavingsGoal(
	userID uuid.UUID,
	name string,
	targetAmount decimal.Decimal,
	autoSaveEnabled bool,
	autoSaveAmount decimal.Decimal,
	autoSaveDay int,
	now time.Time,
) *SavingsGoal {
	goal := &SavingsGoal{
		ID:             uuid.New(),
		UserID:         userID,
		Name:           name,
		TargetAmount:   targetAmount,
		CurrentAmount:  decimal.Zero,
		AutoSaveAmount: autoSaveAmount,
		AutoSaveDay:    autoSaveDay,
		Version:        1,
		CreatedAt:      now.UTC(),
		UpdatedAt:      now.UTC(),
	}
	goal.SetAutoSave(autoSaveEnabled, now)
	return goal
}

// FirstAutoSaveDate returns the occurrence of day in now's month, falling back
// to the 1st when the day does not exist, rolled one month forward when that
// date is already in the past.
func FirstAutoSaveDate(now time.Time, day int) time.Time {
	first, ok := valueobject.DayInMonth(now, day)
	if !ok {
		first = valueobject.FirstOfMonth(now)
	}
	if first.Before(valueobject.DateOf(now)) {
		first = valueobject.AddMonths(first, 1)
	}
	return first
}

// SetAutoSave toggles auto-save. Enabling computes a first run date only when
// none is scheduled; disabling clears the schedule.
func (g *SavingsGoal) SetAutoSave(enabled bool, now time.Time) {
	g.IsAutoSaveEnabled = enabled
	if !enabled {
		g.NextAutoSaveDate = nil
		return
	}
	if g.NextAutoSaveDate == nil {
		next := FirstAutoSaveDate(now, g.AutoSaveDay)
		g.NextAutoSaveDate = &next
	}
}

// IsAutoSaveDue reports whether the scheduler should run auto-save at now.
func (g *SavingsGoal) IsAutoSaveDue(now time.Time) bool {
	return g.IsAutoSaveEnabled && g.NextAutoSaveDate != nil && !g.NextAutoSaveDate.After(now)
}

// AdvanceAutoSave moves the schedule exactly one month forward.
func (g *SavingsGoal) AdvanceAutoSave() {
	if g.NextAutoSaveDate == nil {
		return
	}
	next := valueobject.AddMonths(*g.NextAutoSaveDate, 1)
	g.NextAutoSaveDate = &next
}

// Deposit adds amount to the balance.
func (g *SavingsGoal) Deposit(amount decimal.Decimal) {
	g.CurrentAmount = g.CurrentAmount.Add(amount)
}

// CanWithdraw reports whether amount is covered by the balance.
func (g *SavingsGoal) CanWithdraw(amount decimal.Decimal) bool {
	return amount.LessThanOrEqual(g.CurrentAmount)
}

// Withdraw subtracts amount from the balance. Callers check CanWithdraw first.
func (g *SavingsGoal) Withdraw(amount decimal.Decimal) {
	g.CurrentAmount = g.CurrentAmount.Sub(amount)
}

// ProgressPercentage is the balance as a percentage of the target, capped at 100.
func (g *SavingsGoal) ProgressPercentage() decimal.Decimal {
	if !g.TargetAmount.IsPositive() {
		return decimal.Zero
	}
	pct := g.CurrentAmount.Div(g.TargetAmount).Mul(hundred).Round(2)
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct
}

// DepositDescription is the ledger description for a manual deposit.
func (g *SavingsGoal) DepositDescription() string {
	return "Deposit to goal: " + g.Name
}

// WithdrawalDescription is the ledger description for a withdrawal.
func (g *SavingsGoal) WithdrawalDescription() string {
	return "Withdrawal from goal: " + g.Name
}

// RefundDescription is the ledger description for the refund posted on deletion.
func (g *SavingsGoal) RefundDescription() string {
	return "Refund from deleted goal: " + g.Name
}

// AutoDepositDescription is the ledger description for a scheduled deposit.
func (g *SavingsGoal) AutoDepositDescription() string {
	return "Auto-deposit: " + g.Name
}
