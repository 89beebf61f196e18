package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/application/usecase/payment"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
)

// SaveEventRequest represents the request body for creating or updating a
// payment event. A missing id creates a new event.
type SaveEventRequest struct {
	ID          *string          `json:"id,omitempty"`
	Title       string           `json:"title" binding:"required,min=1,max=200"`
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	Date        string           `json:"date" binding:"required"`
	Frequency   string           `json:"frequency" binding:"required,oneof=one_time monthly yearly"`
	Description string           `json:"description,omitempty" binding:"max=1000"`
	IsPaid      bool             `json:"is_paid"`
}

// EventResponse represents a payment event in API responses.
type EventResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Amount      string    `json:"amount"`
	Date        string    `json:"date"`
	Frequency   string    `json:"frequency"`
	Description string    `json:"description"`
	IsPaid      bool      `json:"is_paid"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventListResponse represents the response for listing payment events.
type EventListResponse struct {
	Events []EventResponse `json:"events"`
}

// SaveEventResponse reports the stored event and whether it was created.
type SaveEventResponse struct {
	Event   EventResponse `json:"event"`
	Created bool          `json:"created"`
}

// OccurrenceResponse is one calendar entry. Field names follow the
// calendar widget's event object.
type OccurrenceResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Start        string `json:"start"`
	Color        string `json:"color"`
	AllDay       bool   `json:"allDay"`
	Amount       string `json:"amount"`
	Frequency    string `json:"frequency"`
	IsPaid       bool   `json:"isPaid"`
	OriginalDate string `json:"originalDate"`
	Description  string `json:"description"`
}

// ToEventResponse converts a PaymentEvent to an EventResponse DTO.
func ToEventResponse(event *entity.PaymentEvent) EventResponse {
	return EventResponse{
		ID:          event.ID.String(),
		Title:       event.Title,
		Amount:      money(event.Amount),
		Date:        formatDate(event.Date),
		Frequency:   string(event.Frequency),
		Description: event.Description,
		IsPaid:      event.IsPaid,
		CreatedAt:   event.CreatedAt,
		UpdatedAt:   event.UpdatedAt,
	}
}

// ToEventListResponse converts events to an EventListResponse.
func ToEventListResponse(events []*entity.PaymentEvent) EventListResponse {
	out := make([]EventResponse, len(events))
	for i, event := range events {
		out[i] = ToEventResponse(event)
	}
	return EventListResponse{Events: out}
}

// ToOccurrenceResponses converts calendar occurrences.
func ToOccurrenceResponses(occurrences []payment.Occurrence) []OccurrenceResponse {
	out := make([]OccurrenceResponse, len(occurrences))
	for i, o := range occurrences {
		out[i] = OccurrenceResponse{
			ID:           o.EventID.String(),
			Title:        o.Title,
			Start:        formatDate(o.Date),
			Color:        o.Color,
			AllDay:       true,
			Amount:       money(o.Amount),
			Frequency:    string(o.Frequency),
			IsPaid:       o.IsPaid,
			OriginalDate: formatDate(o.OriginalDate),
			Description:  o.Description,
		}
	}
	return out
}
