// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
)

// SavingsGoalModel represents the savings_goals table in the database.
type SavingsGoalModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name              string          `gorm:"type:varchar(100);not null"`
	TargetAmount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CurrentAmount     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	IsAutoSaveEnabled bool            `gorm:"not null;default:false;index:idx_savings_goals_due,priority:1"`
	AutoSaveAmount    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	AutoSaveDay       int             `gorm:"not null;default:1"`
	NextAutoSaveDate  *time.Time      `gorm:"index:idx_savings_goals_due,priority:2"`
	Version           int             `gorm:"not null;default:1"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
}

// TableName returns the table name for the SavingsGoalModel.
func (SavingsGoalModel) TableName() string {
	return "savings_goals"
}

// ToEntity converts a SavingsGoalModel to a domain SavingsGoal entity.
func (m *SavingsGoalModel) ToEntity() *entity.SavingsGoal {
	return &entity.SavingsGoal{
		ID:                m.ID,
		UserID:            m.UserID,
		Name:              m.Name,
		TargetAmount:      m.TargetAmount,
		CurrentAmount:     m.CurrentAmount,
		IsAutoSaveEnabled: m.IsAutoSaveEnabled,
		AutoSaveAmount:    m.AutoSaveAmount,
		AutoSaveDay:       m.AutoSaveDay,
		NextAutoSaveDate:  m.NextAutoSaveDate,
		Version:           m.Version,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// SavingsGoalFromEntity creates a SavingsGoalModel from a domain SavingsGoal entity.
func SavingsGoalFromEntity(goal *entity.SavingsGoal) *SavingsGoalModel {
	var next *time.Time
	if goal.NextAutoSaveDate != nil {
		utc := goal.NextAutoSaveDate.UTC()
		next = &utc
	}

	return &SavingsGoalModel{
		ID:                goal.ID,
		UserID:            goal.UserID,
		Name:              goal.Name,
		TargetAmount:      goal.TargetAmount,
		CurrentAmount:     goal.CurrentAmount,
		IsAutoSaveEnabled: goal.IsAutoSaveEnabled,
		AutoSaveAmount:    goal.AutoSaveAmount,
		AutoSaveDay:       goal.AutoSaveDay,
		NextAutoSaveDate:  next,
		Version:           goal.Version,
		CreatedAt:         goal.CreatedAt,
		UpdatedAt:         goal.UpdatedAt,
	}
}
