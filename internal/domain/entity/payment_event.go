// Package entity defines the core business entities for the domain layer.
package entity

import (
	"iter"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/domain/valueobject"
)

// PaymentFrequency is how often a payment event recurs.
type PaymentFrequency string

const (
	FrequencyOneTime PaymentFrequency = "one_time"
	FrequencyMonthly PaymentFrequency = "monthly"
	FrequencyYearly  PaymentFrequency = "yearly"
)

// IsValid reports whether f is a known frequency.
func (f PaymentFrequency) IsValid() bool {
	switch f {
	case FrequencyOneTime, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// Calendar colors for occurrences.
const (
	ColorPaid     = "#1cc88a"
	ColorUpcoming = "#f6c23e"
	ColorOverdue  = "#e74a3b"
)

// PaymentEvent is a one-time or recurring bill. Date is the anchor of the next
// unpaid occurrence for recurring events.
type PaymentEvent struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Amount      decimal.Decimal
	Date        time.Time
	Frequency   PaymentFrequency
	Description string
	IsPaid      bool
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewPaymentEvent creates a new PaymentEvent entity.
func NewPaymentEvent(
	userID uuid.UUID,
	title string,
	amount decimal.Decimal,
	date time.Time,
	frequency PaymentFrequency,
	description string,
	isPaid bool,
) *PaymentEvent {
	now := time.Now().UTC()
	return &PaymentEvent{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Amount:      amount,
		Date:        date,
		Frequency:   frequency,
		Description: description,
		IsPaid:      isPaid,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsRecurring reports whether the event repeats.
func (e *PaymentEvent) IsRecurring() bool {
	return e.Frequency == FrequencyMonthly || e.Frequency == FrequencyYearly
}

// next returns the occurrence one period after t.
func (e *PaymentEvent) next(t time.Time) time.Time {
	if e.Frequency == FrequencyYearly {
		return valueobject.AddYears(t, 1)
	}
	return valueobject.AddMonths(t, 1)
}

// Confirm applies a payment at now. One-time events become paid for good;
// recurring events advance past now and stay unpaid.
func (e *PaymentEvent) Confirm(now time.Time) {
	if !e.IsRecurring() {
		e.IsPaid = true
		return
	}

	e.Date = e.next(e.Date)
	for e.Date.Before(now) {
		e.Date = e.next(e.Date)
	}
	e.IsPaid = false
}

// Occurrences yields the dates of this event within [start, end]. Recurring
// events are rolled forward from the anchor; nothing is mutated.
func (e *PaymentEvent) Occurrences(start, end time.Time) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		if !e.IsRecurring() {
			if !e.Date.Before(start) && !e.Date.After(end) {
				yield(e.Date)
			}
			return
		}

		current := e.Date
		for current.Before(start) {
			current = e.next(current)
		}
		for !current.After(end) {
			if !yield(current) {
				return
			}
			current = e.next(current)
		}
	}
}

// ColorAt returns the calendar color of an occurrence on the given date.
func (e *PaymentEvent) ColorAt(occurrence, now time.Time) string {
	switch {
	case e.IsPaid:
		return ColorPaid
	case occurrence.Before(now):
		return ColorOverdue
	default:
		return ColorUpcoming
	}
}

// PaidDescription is the ledger description posted on confirmation.
func (e *PaymentEvent) PaidDescription() string {
	return "Paid: " + e.Title
}
