// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
)

// LiabilityModel represents the liabilities table in the database.
type LiabilityModel struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID             uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title              string          `gorm:"type:varchar(200);not null"`
	Type               string          `gorm:"type:varchar(20);not null"`
	TotalAmount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PaidAmount         decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	StartDate          time.Time       `gorm:"not null"`
	EndDate            *time.Time
	MonthlyInstallment *decimal.Decimal `gorm:"type:decimal(15,2)"`
	ReminderEnabled    bool             `gorm:"not null;default:false"`
	Description        string           `gorm:"type:text"`
	CreatedAt          time.Time        `gorm:"not null"`
	UpdatedAt          time.Time        `gorm:"not null"`
}

// TableName returns the table name for the LiabilityModel.
func (LiabilityModel) TableName() string {
	return "liabilities"
}

// ToEntity converts a LiabilityModel to a domain Liability entity.
func (m *LiabilityModel) ToEntity() *entity.Liability {
	return &entity.Liability{
		ID:                 m.ID,
		UserID:             m.UserID,
		Title:              m.Title,
		Type:               entity.LiabilityType(m.Type),
		TotalAmount:        m.TotalAmount,
		PaidAmount:         m.PaidAmount,
		StartDate:          m.StartDate,
		EndDate:            m.EndDate,
		MonthlyInstallment: m.MonthlyInstallment,
		ReminderEnabled:    m.ReminderEnabled,
		Description:        m.Description,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// LiabilityFromEntity creates a LiabilityModel from a domain Liability entity.
func LiabilityFromEntity(l *entity.Liability) *LiabilityModel {
	return &LiabilityModel{
		ID:                 l.ID,
		UserID:             l.UserID,
		Title:              l.Title,
		Type:               string(l.Type),
		TotalAmount:        l.TotalAmount,
		PaidAmount:         l.PaidAmount,
		StartDate:          l.StartDate.UTC(),
		EndDate:            l.EndDate,
		MonthlyInstallment: l.MonthlyInstallment,
		ReminderEnabled:    l.ReminderEnabled,
		Description:        l.Description,
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
	}
}
