package market

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
)

const cacheKeyPrefix = "market:rates:"

// cachedProvider serves rates from redis and refreshes them from the
// wrapped provider when the entry has expired.
type cachedProvider struct {
	next   adapter.ExchangeRateProvider
	client *redis.Client
	ttl    time.Duration
}

// NewCachedProvider wraps next with a redis cache kept for ttl.
func NewCachedProvider(next adapter.ExchangeRateProvider, client *redis.Client, ttl time.Duration) adapter.ExchangeRateProvider {
	return &cachedProvider{
		next:   next,
		client: client,
		ttl:    ttl,
	}
}

// Latest returns the cached table when present. Cache failures fall through
// to the upstream provider.
func (p *cachedProvider) Latest(ctx context.Context, codes []string) (*adapter.ExchangeRateTable, error) {
	key := cacheKeyPrefix + strings.ToUpper(strings.Join(codes, ","))

	raw, err := p.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var table adapter.ExchangeRateTable
		if err := json.Unmarshal(raw, &table); err == nil {
			return &table, nil
		}
		slog.Warn("Discarding unreadable cached rates", "key", key)
	case !errors.Is(err, redis.Nil):
		slog.Warn("Rate cache read failed", "error", err)
	}

	table, err := p.next.Latest(ctx, codes)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(table); err == nil {
		if err := p.client.Set(ctx, key, payload, p.ttl).Err(); err != nil {
			slog.Warn("Rate cache write failed", "error", err)
		}
	}
	return table, nil
}
