package notification

import (
	"context"
	"testing"

	"github.com/finance-tracker/savings-ledger/internal/application/usecase/usecasetest"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
)

func TestEnqueuer_Enqueue(t *testing.T) {
	ctx := context.Background()

	t.Run("queues for opted-in users", func(t *testing.T) {
		store := usecasetest.NewStore()
		user := entity.NewUser("in@example.com", "In", "hash")
		user.EmailNotifications = true
		store.AddUser(user)

		enqueuer := NewEnqueuer(store.Users, store.Notifications)
		if err := enqueuer.Enqueue(ctx, user.ID, entity.NotificationPaymentConfirmed, "Paid", map[string]any{"title": "Rent"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		queued := store.NotificationsFor(user.ID)
		if len(queued) != 1 {
			t.Fatalf("expected 1 notification, got %d", len(queued))
		}
		if queued[0].RecipientEmail != user.Email || queued[0].Status != entity.NotificationPending {
			t.Errorf("unexpected notification: %+v", queued[0])
		}
	})

	t.Run("skips opted-out users", func(t *testing.T) {
		store := usecasetest.NewStore()
		user := entity.NewUser("out@example.com", "Out", "hash")
		user.EmailNotifications = false
		store.AddUser(user)

		enqueuer := NewEnqueuer(store.Users, store.Notifications)
		if err := enqueuer.Enqueue(ctx, user.ID, entity.NotificationPaymentConfirmed, "Paid", nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(store.NotificationsFor(user.ID)) != 0 {
			t.Error("expected nothing to be queued")
		}
	})
}
