// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
	"github.com/finance-tracker/savings-ledger/internal/integration/entrypoint/dto"
)

const (
	// defaultMaxAttempts is the default number of allowed attempts per window.
	defaultMaxAttempts = 5
	// defaultWindowDuration is the default time window for rate limiting.
	defaultWindowDuration = 15 * time.Minute

	rateLimitKeyPrefix = "ratelimit:"
)

// RateLimiter limits requests per client IP with a fixed window counter
// shared through redis.
type RateLimiter struct {
	client         *redis.Client
	scope          string
	maxAttempts    int
	windowDuration time.Duration
}

// NewRateLimiter creates a new rate limiter for one route scope.
func NewRateLimiter(client *redis.Client, scope string, maxAttempts int, windowDuration time.Duration) *RateLimiter {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if windowDuration <= 0 {
		windowDuration = defaultWindowDuration
	}
	return &RateLimiter{
		client:         client,
		scope:          scope,
		maxAttempts:    maxAttempts,
		windowDuration: windowDuration,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}

		allowed, retryAfter := rl.allow(c.Request.Context(), clientIP)
		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// allow counts the attempt and reports whether it is within the limit. Redis
// failures let the request through.
func (rl *RateLimiter) allow(ctx context.Context, clientIP string) (bool, time.Duration) {
	key := rateLimitKeyPrefix + rl.scope + ":" + clientIP

	count, err := rl.client.Incr(ctx, key).Result()
	if err != nil {
		slog.Warn("Rate limiter unavailable", "error", err)
		return true, 0
	}
	if count == 1 {
		if err := rl.client.Expire(ctx, key, rl.windowDuration).Err(); err != nil {
			slog.Warn("Failed to set rate limit window", "error", err)
		}
	}

	if count > int64(rl.maxAttempts) {
		retryAfter, err := rl.client.TTL(ctx, key).Result()
		if err != nil || retryAfter < 0 {
			retryAfter = rl.windowDuration
		}
		return false, retryAfter
	}
	return true, 0
}

// Reset clears the counter for one client.
func (rl *RateLimiter) Reset(ctx context.Context, clientIP string) error {
	return rl.client.Del(ctx, rateLimitKeyPrefix+rl.scope+":"+clientIP).Err()
}
