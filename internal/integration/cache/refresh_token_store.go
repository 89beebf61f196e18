// Package cache implements redis-backed stores.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
)

const refreshTokenPrefix = "refresh:token:"

// refreshTokenStore keeps issued refresh tokens in redis. Tokens are stored
// by hash and expire with the token itself.
type refreshTokenStore struct {
	client *redis.Client
}

// NewRefreshTokenStore creates a new redis refresh token store.
func NewRefreshTokenStore(client *redis.Client) adapter.RefreshTokenStore {
	return &refreshTokenStore{client: client}
}

func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return refreshTokenPrefix + hex.EncodeToString(sum[:])
}

// Save records the token for ttl.
func (s *refreshTokenStore) Save(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error {
	if err := s.client.Set(ctx, tokenKey(token), userID.String(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

// IsValid reports whether the token is stored and not revoked.
func (s *refreshTokenStore) IsValid(ctx context.Context, token string) (bool, error) {
	err := s.client.Get(ctx, tokenKey(token)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read refresh token: %w", err)
	}
	return true, nil
}

// Invalidate revokes one token.
func (s *refreshTokenStore) Invalidate(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, tokenKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}
