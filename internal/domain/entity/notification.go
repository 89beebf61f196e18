// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationStatus is the delivery state of an outbox notification.
type NotificationStatus string

const (
	NotificationPending    NotificationStatus = "pending"
	NotificationProcessing NotificationStatus = "processing"
	NotificationSent       NotificationStatus = "sent"
	NotificationFailed     NotificationStatus = "failed"
)

// NotificationKind selects the email template used for delivery.
type NotificationKind string

const (
	NotificationAutoSaveExecuted NotificationKind = "autosave_executed"
	NotificationPaymentConfirmed NotificationKind = "payment_confirmed"
)

// notificationMaxAttempts bounds delivery retries before a notification is parked as failed.
const notificationMaxAttempts = 3

// retryDelays is indexed by the number of failed attempts so far.
var retryDelays = []time.Duration{0, time.Minute, 5 * time.Minute}

// Notification is an email written to the outbox in the same unit of work as
// the ledger change it describes, and delivered later by the email worker.
type Notification struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Kind           NotificationKind
	RecipientEmail string
	RecipientName  string
	Subject        string
	Data           map[string]any
	Status         NotificationStatus
	Attempts       int
	MaxAttempts    int
	LastError      string
	ProviderID     string
	CreatedAt      time.Time
	ScheduledAt    time.Time
	ProcessedAt    *time.Time
}

// NewNotification creates a pending notification addressed to user.
func NewNotification(user *User, kind NotificationKind, subject string, data map[string]any) *Notification {
	now := time.Now().UTC()
	return &Notification{
		ID:             uuid.New(),
		UserID:         user.ID,
		Kind:           kind,
		RecipientEmail: user.Email,
		RecipientName:  user.Name,
		Subject:        subject,
		Data:           data,
		Status:         NotificationPending,
		MaxAttempts:    notificationMaxAttempts,
		CreatedAt:      now,
		ScheduledAt:    now,
	}
}

// MarkProcessing claims the notification for delivery.
func (n *Notification) MarkProcessing() {
	n.Status = NotificationProcessing
}

// MarkSent records a successful delivery.
func (n *Notification) MarkSent(providerID string) {
	now := time.Now().UTC()
	n.Status = NotificationSent
	n.ProviderID = providerID
	n.ProcessedAt = &now
}

// MarkFailed records a failed attempt. The notification goes back to pending with
// a backoff unless the failure is permanent or attempts are exhausted.
func (n *Notification) MarkFailed(err error, permanent bool) {
	n.Attempts++
	n.LastError = err.Error()

	now := time.Now().UTC()
	if permanent || n.Attempts >= n.MaxAttempts {
		n.Status = NotificationFailed
		n.ProcessedAt = &now
		return
	}

	n.Status = NotificationPending
	delay := retryDelays[len(retryDelays)-1]
	if n.Attempts < len(retryDelays) {
		delay = retryDelays[n.Attempts]
	}
	n.ScheduledAt = now.Add(delay)
}
