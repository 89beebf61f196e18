package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newLimitedEngine(t *testing.T, attempts int, window time.Duration) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	limiter := NewRateLimiter(client, "login", attempts, window)
	engine := gin.New()
	engine.POST("/login", limiter.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })
	return engine, mr
}

func post(engine *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = ip + ":12345"
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRateLimiter(t *testing.T) {
	t.Run("blocks after the limit", func(t *testing.T) {
		engine, _ := newLimitedEngine(t, 3, time.Minute)

		for i := 0; i < 3; i++ {
			if w := post(engine, "10.0.0.1"); w.Code != http.StatusOK {
				t.Fatalf("attempt %d: expected 200, got %d", i+1, w.Code)
			}
		}
		w := post(engine, "10.0.0.1")
		if w.Code != http.StatusTooManyRequests {
			t.Fatalf("expected 429, got %d", w.Code)
		}
		if w.Header().Get("Retry-After") == "" {
			t.Error("expected Retry-After header")
		}
	})

	t.Run("limits are per client", func(t *testing.T) {
		engine, _ := newLimitedEngine(t, 1, time.Minute)

		if w := post(engine, "10.0.0.1"); w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if w := post(engine, "10.0.0.2"); w.Code != http.StatusOK {
			t.Errorf("expected other client to pass, got %d", w.Code)
		}
	})

	t.Run("window expiry resets the count", func(t *testing.T) {
		engine, mr := newLimitedEngine(t, 1, time.Minute)

		post(engine, "10.0.0.1")
		if w := post(engine, "10.0.0.1"); w.Code != http.StatusTooManyRequests {
			t.Fatalf("expected 429, got %d", w.Code)
		}
		mr.FastForward(2 * time.Minute)
		if w := post(engine, "10.0.0.1"); w.Code != http.StatusOK {
			t.Errorf("expected 200 after window, got %d", w.Code)
		}
	})

	t.Run("redis outage lets requests through", func(t *testing.T) {
		engine, mr := newLimitedEngine(t, 1, time.Minute)
		mr.Close()

		for i := 0; i < 3; i++ {
			if w := post(engine, "10.0.0.1"); w.Code != http.StatusOK {
				t.Errorf("attempt %d: expected 200, got %d", i+1, w.Code)
			}
		}
	})
}

type stubTokenService struct {
	adapter.TokenService
	userID uuid.UUID
}

func (s stubTokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return &adapter.TokenClaims{UserID: s.userID, Email: "ana@example.com"}, nil
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	engine := gin.New()
	engine.GET("/me", NewAuthMiddleware(stubTokenService{userID: userID}).Authenticate(), func(c *gin.Context) {
		id, ok := UserID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, id.String())
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"invalid token", "Bearer bad", http.StatusUnauthorized},
		{"valid token", "Bearer good", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, w.Code)
			}
			if tt.want == http.StatusOK && w.Body.String() != userID.String() {
				t.Errorf("expected user id in context, got %q", w.Body.String())
			}
		})
	}
}
