package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRefreshTokenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("saved token is valid until invalidated", func(t *testing.T) {
		_, client := newTestRedis(t)
		store := NewRefreshTokenStore(client)
		userID := uuid.New()

		if err := store.Save(ctx, "token-a", userID, time.Hour); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		valid, err := store.IsValid(ctx, "token-a")
		if err != nil || !valid {
			t.Fatalf("IsValid() = %v, %v; want true, nil", valid, err)
		}

		if err := store.Invalidate(ctx, "token-a"); err != nil {
			t.Fatalf("Invalidate() error = %v", err)
		}
		valid, err = store.IsValid(ctx, "token-a")
		if err != nil || valid {
			t.Errorf("IsValid() after Invalidate = %v, %v; want false, nil", valid, err)
		}
	})

	t.Run("unknown token is invalid", func(t *testing.T) {
		_, client := newTestRedis(t)
		store := NewRefreshTokenStore(client)

		valid, err := store.IsValid(ctx, "never-issued")
		if err != nil || valid {
			t.Errorf("IsValid() = %v, %v; want false, nil", valid, err)
		}
		if err := store.Invalidate(ctx, "never-issued"); err != nil {
			t.Errorf("Invalidate() of unknown token error = %v", err)
		}
	})

	t.Run("token expires with its ttl", func(t *testing.T) {
		mr, client := newTestRedis(t)
		store := NewRefreshTokenStore(client)

		if err := store.Save(ctx, "short", uuid.New(), time.Minute); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		mr.FastForward(2 * time.Minute)

		valid, err := store.IsValid(ctx, "short")
		if err != nil || valid {
			t.Errorf("IsValid() after expiry = %v, %v; want false, nil", valid, err)
		}
	})

	t.Run("raw token is not stored as a key", func(t *testing.T) {
		mr, client := newTestRedis(t)
		store := NewRefreshTokenStore(client)

		if err := store.Save(ctx, "secret-token", uuid.New(), time.Hour); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		for _, key := range mr.Keys() {
			if key == refreshTokenPrefix+"secret-token" {
				t.Errorf("found raw token key %q", key)
			}
		}
	})
}
