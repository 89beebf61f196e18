package payment

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
)

// Occurrence is one calendar entry projected from a payment event.
type Occurrence struct {
	EventID      uuid.UUID
	Title        string
	Date         time.Time
	Color        string
	Amount       decimal.Decimal
	Frequency    entity.PaymentFrequency
	IsPaid       bool
	OriginalDate time.Time
	Description  string
}

// CalendarInput represents a calendar range query.
type CalendarInput struct {
	UserID uuid.UUID
	Start  time.Time
	End    time.Time
}

// CalendarUseCase projects a user's payment events onto a date range.
type CalendarUseCase struct {
	eventRepo adapter.PaymentEventRepository
	now       func() time.Time
}

// NewCalendarUseCase creates a new CalendarUseCase instance.
func NewCalendarUseCase(eventRepo adapter.PaymentEventRepository) *CalendarUseCase {
	return &CalendarUseCase{
		eventRepo: eventRepo,
		now:       time.Now,
	}
}

// Execute returns every occurrence within [Start, End] ordered by date. It
// reads only; colors are derived at query time.
func (uc *CalendarUseCase) Execute(ctx context.Context, input CalendarInput) ([]Occurrence, error) {
	if input.End.Before(input.Start) || input.End.Sub(input.Start) > MaxCalendarSpan {
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodeInvalidDateRange,
			"end must not be before start and the range must not exceed two years",
			domainerror.ErrInvalidDateRange,
		)
	}

	events, err := uc.eventRepo.FindAllByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment events: %w", err)
	}

	now := uc.now().UTC()
	occurrences := make([]Occurrence, 0, len(events))
	for _, event := range events {
		title := fmt.Sprintf("%s (%s zł)", event.Title, formatAmount(event.Amount))
		for date := range event.Occurrences(input.Start, input.End) {
			occurrences = append(occurrences, Occurrence{
				EventID:      event.ID,
				Title:        title,
				Date:         date,
				Color:        event.ColorAt(date, now),
				Amount:       event.Amount,
				Frequency:    event.Frequency,
				IsPaid:       event.IsPaid,
				OriginalDate: event.Date,
				Description:  event.Description,
			})
		}
	}

	sort.SliceStable(occurrences, func(i, j int) bool {
		return occurrences[i].Date.Before(occurrences[j].Date)
	})
	return occurrences, nil
}
