package cache

import (
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/finance-tracker/savings-ledger/config"
)

func TestNewRedisClient(t *testing.T) {
	t.Run("connects", func(t *testing.T) {
		mr := miniredis.RunT(t)

		client, err := NewRedisClient(&config.RedisConfig{URL: "redis://" + mr.Addr() + "/0"})
		if err != nil {
			t.Fatalf("NewRedisClient() error = %v", err)
		}
		defer client.Close()
	})

	t.Run("rejects malformed url", func(t *testing.T) {
		if _, err := NewRedisClient(&config.RedisConfig{URL: "::not a url"}); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("fails when server is down", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		if _, err := NewRedisClient(&config.RedisConfig{URL: "redis://" + addr}); err == nil {
			t.Error("expected ping error")
		}
	})
}
