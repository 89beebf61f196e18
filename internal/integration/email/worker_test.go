package email

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/application/usecase/usecasetest"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
	"github.com/finance-tracker/savings-ledger/internal/integration/email/templates"
)

type fakeSender struct {
	sent []adapter.SendEmailInput
	err  error
}

func (s *fakeSender) Send(_ context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.sent = append(s.sent, input)
	return &adapter.SendEmailResult{ProviderID: fmt.Sprintf("msg-%d", len(s.sent))}, nil
}

func newTestWorker(t *testing.T, sender adapter.EmailSender) (*Worker, *usecasetest.Store, *entity.User) {
	t.Helper()
	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	store := usecasetest.NewStore()
	user := entity.NewUser("ana@example.com", "Ana", "hash")
	store.AddUser(user)
	return NewWorker(store.Notifications, sender, renderer, WorkerConfig{BatchSize: 10}), store, user
}

func enqueue(t *testing.T, store *usecasetest.Store, n *entity.Notification) {
	t.Helper()
	if err := store.Notifications.Create(context.Background(), n); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
}

func TestWorker_ProcessNow(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers payment confirmation", func(t *testing.T) {
		sender := &fakeSender{}
		worker, store, user := newTestWorker(t, sender)
		enqueue(t, store, entity.NewNotification(user, entity.NotificationPaymentConfirmed, "Payment confirmed: Rent", map[string]any{
			"title":     "Rent",
			"amount":    "1500.00",
			"paid_at":   "2024-03-10",
			"recurring": true,
			"next_date": "2024-04-10",
		}))

		worker.ProcessNow(ctx)

		if len(sender.sent) != 1 {
			t.Fatalf("expected 1 email, got %d", len(sender.sent))
		}
		sent := sender.sent[0]
		if sent.To != "ana@example.com" || sent.Subject != "Payment confirmed: Rent" {
			t.Errorf("unexpected envelope: %+v", sent)
		}
		if !strings.Contains(sent.HTML, "1500.00 zł") || !strings.Contains(sent.Text, "2024-04-10") {
			t.Errorf("body missing details:\n%s\n%s", sent.HTML, sent.Text)
		}

		queued := store.NotificationsFor(user.ID)
		if queued[0].Status != entity.NotificationSent || queued[0].ProviderID != "msg-1" {
			t.Errorf("expected sent status, got %+v", queued[0])
		}
	})

	t.Run("delivers auto-save notice", func(t *testing.T) {
		sender := &fakeSender{}
		worker, store, user := newTestWorker(t, sender)
		enqueue(t, store, entity.NewNotification(user, entity.NotificationAutoSaveExecuted, "Auto-save: Vacation", map[string]any{
			"goal_name":      "Vacation",
			"amount":         "75.00",
			"current_amount": "150.00",
			"target_amount":  "1000.00",
			"next_date":      "2024-04-10",
		}))

		worker.ProcessNow(ctx)

		if len(sender.sent) != 1 {
			t.Fatalf("expected 1 email, got %d", len(sender.sent))
		}
		if !strings.Contains(sender.sent[0].Text, "Vacation") || !strings.Contains(sender.sent[0].Text, "150.00 zł of 1000.00 zł") {
			t.Errorf("unexpected text body:\n%s", sender.sent[0].Text)
		}
	})

	t.Run("temporary failure is retried later", func(t *testing.T) {
		sender := &fakeSender{err: domainerror.NewEmailError(domainerror.ErrCodeTemporaryEmailFailure, "rate limited", errors.New("429"))}
		worker, store, user := newTestWorker(t, sender)
		enqueue(t, store, entity.NewNotification(user, entity.NotificationPaymentConfirmed, "Paid", map[string]any{"title": "Rent"}))

		worker.ProcessNow(ctx)

		n := store.NotificationsFor(user.ID)[0]
		if n.Status != entity.NotificationPending || n.Attempts != 1 {
			t.Errorf("expected pending with 1 attempt, got status=%s attempts=%d", n.Status, n.Attempts)
		}
		if !n.ScheduledAt.After(n.CreatedAt) {
			t.Errorf("expected backoff, scheduled at %s", n.ScheduledAt)
		}
	})

	t.Run("permanent failure is parked", func(t *testing.T) {
		sender := &fakeSender{err: domainerror.NewEmailError(domainerror.ErrCodePermanentEmailFailure, "rejected", errors.New("422"))}
		worker, store, user := newTestWorker(t, sender)
		enqueue(t, store, entity.NewNotification(user, entity.NotificationPaymentConfirmed, "Paid", map[string]any{"title": "Rent"}))

		worker.ProcessNow(ctx)

		if n := store.NotificationsFor(user.ID)[0]; n.Status != entity.NotificationFailed {
			t.Errorf("expected failed status, got %s", n.Status)
		}
	})

	t.Run("unknown kind fails permanently without sending", func(t *testing.T) {
		sender := &fakeSender{}
		worker, store, user := newTestWorker(t, sender)
		enqueue(t, store, entity.NewNotification(user, entity.NotificationKind("newsletter"), "News", nil))

		worker.ProcessNow(ctx)

		if len(sender.sent) != 0 {
			t.Errorf("expected nothing sent, got %d", len(sender.sent))
		}
		if n := store.NotificationsFor(user.ID)[0]; n.Status != entity.NotificationFailed {
			t.Errorf("expected failed status, got %s", n.Status)
		}
	})
}

func TestIsPermanentError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("422 validation_error: invalid `to` field"), true},
		{errors.New("401 unauthorized"), true},
		{errors.New("429 rate limit exceeded"), false},
		{errors.New("503 service unavailable"), false},
	}
	for _, tt := range tests {
		if got := isPermanentError(tt.err); got != tt.want {
			t.Errorf("isPermanentError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
