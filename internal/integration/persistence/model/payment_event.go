// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
)

// PaymentEventModel represents the payment_events table in the database.
type PaymentEventModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title       string          `gorm:"type:varchar(200);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Date        time.Time       `gorm:"not null"`
	Frequency   string          `gorm:"type:varchar(10);not null"`
	Description string          `gorm:"type:text"`
	IsPaid      bool            `gorm:"not null;default:false"`
	Version     int             `gorm:"not null;default:1"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the PaymentEventModel.
func (PaymentEventModel) TableName() string {
	return "payment_events"
}

// ToEntity converts a PaymentEventModel to a domain PaymentEvent entity.
func (m *PaymentEventModel) ToEntity() *entity.PaymentEvent {
	return &entity.PaymentEvent{
		ID:          m.ID,
		UserID:      m.UserID,
		Title:       m.Title,
		Amount:      m.Amount,
		Date:        m.Date,
		Frequency:   entity.PaymentFrequency(m.Frequency),
		Description: m.Description,
		IsPaid:      m.IsPaid,
		Version:     m.Version,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// PaymentEventFromEntity creates a PaymentEventModel from a domain PaymentEvent entity.
func PaymentEventFromEntity(e *entity.PaymentEvent) *PaymentEventModel {
	return &PaymentEventModel{
		ID:          e.ID,
		UserID:      e.UserID,
		Title:       e.Title,
		Amount:      e.Amount,
		Date:        e.Date.UTC(),
		Frequency:   string(e.Frequency),
		Description: e.Description,
		IsPaid:      e.IsPaid,
		Version:     e.Version,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
