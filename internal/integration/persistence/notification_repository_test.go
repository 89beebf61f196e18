package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
)

func TestNotificationRepository_ClaimPending(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	user := createTestUser(t, db, "outbox@example.com")
	repo := NewNotificationRepository(db)

	notification := entity.NewNotification(user, entity.NotificationAutoSaveExecuted, "Auto-save", map[string]any{"goal": "Vacation"})
	if err := repo.Create(ctx, notification); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claimed, err := repo.ClaimPending(ctx, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(claimed) != 1 {
		t.Fatalf("expected 1 claimed notification, got %d", len(claimed))
	}
	if claimed[0].Status != entity.NotificationProcessing {
		t.Errorf("expected processing status, got %s", claimed[0].Status)
	}
	if claimed[0].Data["goal"] != "Vacation" {
		t.Errorf("expected data to round-trip, got %v", claimed[0].Data)
	}

	again, err := repo.ClaimPending(ctx, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("expected claimed notification not to be handed out twice, got %d", len(again))
	}

	claimed[0].MarkFailed(errors.New("smtp down"), false)
	if err := repo.Update(ctx, claimed[0]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claimed[0].Status != entity.NotificationPending {
		t.Errorf("expected pending after a temporary failure, got %s", claimed[0].Status)
	}
}
