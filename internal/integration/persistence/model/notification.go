// Package model defines database models for persistence layer.
package model

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
)

// NotificationModel represents the notifications outbox table in the database.
type NotificationModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind           string    `gorm:"type:varchar(50);not null"`
	RecipientEmail string    `gorm:"type:varchar(255);not null"`
	RecipientName  string    `gorm:"type:varchar(255)"`
	Subject        string    `gorm:"type:varchar(500);not null"`
	Data           string    `gorm:"type:text;not null;default:'{}'"`
	Status         string    `gorm:"type:varchar(20);not null;default:'pending';index:idx_notifications_due,priority:1"`
	Attempts       int       `gorm:"not null;default:0"`
	MaxAttempts    int       `gorm:"not null;default:3"`
	LastError      string    `gorm:"type:text"`
	ProviderID     string    `gorm:"type:varchar(100)"`
	CreatedAt      time.Time `gorm:"not null"`
	ScheduledAt    time.Time `gorm:"not null;index:idx_notifications_due,priority:2"`
	ProcessedAt    sql.NullTime
}

// TableName returns the table name for the NotificationModel.
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToEntity converts a NotificationModel to a domain Notification entity.
func (m *NotificationModel) ToEntity() *entity.Notification {
	var data map[string]any
	if m.Data != "" {
		if err := json.Unmarshal([]byte(m.Data), &data); err != nil {
			slog.Warn("Failed to unmarshal notification data", "error", err, "id", m.ID)
		}
	}
	if data == nil {
		data = make(map[string]any)
	}

	var processedAt *time.Time
	if m.ProcessedAt.Valid {
		processedAt = &m.ProcessedAt.Time
	}

	return &entity.Notification{
		ID:             m.ID,
		UserID:         m.UserID,
		Kind:           entity.NotificationKind(m.Kind),
		RecipientEmail: m.RecipientEmail,
		RecipientName:  m.RecipientName,
		Subject:        m.Subject,
		Data:           data,
		Status:         entity.NotificationStatus(m.Status),
		Attempts:       m.Attempts,
		MaxAttempts:    m.MaxAttempts,
		LastError:      m.LastError,
		ProviderID:     m.ProviderID,
		CreatedAt:      m.CreatedAt,
		ScheduledAt:    m.ScheduledAt,
		ProcessedAt:    processedAt,
	}
}

// NotificationFromEntity creates a NotificationModel from a domain Notification entity.
func NotificationFromEntity(n *entity.Notification) *NotificationModel {
	data, err := json.Marshal(n.Data)
	if err != nil {
		slog.Error("Failed to marshal notification data", "error", err, "id", n.ID)
		data = []byte("{}")
	}

	var processedAt sql.NullTime
	if n.ProcessedAt != nil {
		processedAt = sql.NullTime{Time: *n.ProcessedAt, Valid: true}
	}

	return &NotificationModel{
		ID:             n.ID,
		UserID:         n.UserID,
		Kind:           string(n.Kind),
		RecipientEmail: n.RecipientEmail,
		RecipientName:  n.RecipientName,
		Subject:        n.Subject,
		Data:           string(data),
		Status:         string(n.Status),
		Attempts:       n.Attempts,
		MaxAttempts:    n.MaxAttempts,
		LastError:      n.LastError,
		ProviderID:     n.ProviderID,
		CreatedAt:      n.CreatedAt,
		ScheduledAt:    n.ScheduledAt,
		ProcessedAt:    processedAt,
	}
}
