package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/integration/cache"
)

const testSecret = "test-secret-key-with-enough-length"

func newTestTokenService(t *testing.T) adapter.TokenService {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewTokenService(testSecret, cache.NewRefreshTokenStore(client))
}

func TestTokenService(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("generates validatable pair", func(t *testing.T) {
		svc := newTestTokenService(t)

		pair, err := svc.GenerateTokenPair(ctx, userID, "ana@example.com", false)
		if err != nil {
			t.Fatalf("GenerateTokenPair() error = %v", err)
		}

		claims, err := svc.ValidateAccessToken(ctx, pair.AccessToken)
		if err != nil {
			t.Fatalf("ValidateAccessToken() error = %v", err)
		}
		if claims.UserID != userID || claims.Email != "ana@example.com" {
			t.Errorf("claims = %+v", claims)
		}
		if d := time.Until(claims.ExpiresAt); d > defaultAccessTokenDuration || d < defaultAccessTokenDuration-time.Minute {
			t.Errorf("access token expires in %v", d)
		}

		if _, err := svc.ValidateRefreshToken(ctx, pair.RefreshToken); err != nil {
			t.Errorf("ValidateRefreshToken() error = %v", err)
		}
		valid, err := svc.IsRefreshTokenValid(ctx, pair.RefreshToken)
		if err != nil || !valid {
			t.Errorf("IsRefreshTokenValid() = %v, %v", valid, err)
		}
	})

	t.Run("token types are not interchangeable", func(t *testing.T) {
		svc := newTestTokenService(t)
		pair, err := svc.GenerateTokenPair(ctx, userID, "ana@example.com", false)
		if err != nil {
			t.Fatalf("GenerateTokenPair() error = %v", err)
		}

		if _, err := svc.ValidateAccessToken(ctx, pair.RefreshToken); err == nil {
			t.Error("expected refresh token to be rejected as access token")
		}
		if _, err := svc.ValidateRefreshToken(ctx, pair.AccessToken); err == nil {
			t.Error("expected access token to be rejected as refresh token")
		}
	})

	t.Run("remember me extends durations", func(t *testing.T) {
		svc := newTestTokenService(t)
		pair, err := svc.GenerateTokenPair(ctx, userID, "ana@example.com", true)
		if err != nil {
			t.Fatalf("GenerateTokenPair() error = %v", err)
		}
		claims, err := svc.ValidateRefreshToken(ctx, pair.RefreshToken)
		if err != nil {
			t.Fatalf("ValidateRefreshToken() error = %v", err)
		}
		if d := time.Until(claims.ExpiresAt); d < rememberMeRefreshTokenDuration-time.Minute {
			t.Errorf("refresh token expires in %v, want about %v", d, rememberMeRefreshTokenDuration)
		}
	})

	t.Run("consecutive pairs are distinct", func(t *testing.T) {
		svc := newTestTokenService(t)
		first, err := svc.GenerateTokenPair(ctx, userID, "ana@example.com", false)
		if err != nil {
			t.Fatalf("GenerateTokenPair() error = %v", err)
		}
		second, err := svc.GenerateTokenPair(ctx, userID, "ana@example.com", false)
		if err != nil {
			t.Fatalf("GenerateTokenPair() error = %v", err)
		}
		if first.RefreshToken == second.RefreshToken {
			t.Error("expected distinct refresh tokens")
		}
	})

	t.Run("invalidated refresh token is no longer valid", func(t *testing.T) {
		svc := newTestTokenService(t)
		pair, err := svc.GenerateTokenPair(ctx, userID, "ana@example.com", false)
		if err != nil {
			t.Fatalf("GenerateTokenPair() error = %v", err)
		}
		if err := svc.InvalidateRefreshToken(ctx, pair.RefreshToken); err != nil {
			t.Fatalf("InvalidateRefreshToken() error = %v", err)
		}
		valid, err := svc.IsRefreshTokenValid(ctx, pair.RefreshToken)
		if err != nil || valid {
			t.Errorf("IsRefreshTokenValid() = %v, %v; want false", valid, err)
		}
	})

	t.Run("rejects foreign signature", func(t *testing.T) {
		svc := newTestTokenService(t)
		claims := CustomClaims{
			UserID:    userID.String(),
			TokenType: tokenTypeAccess,
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    tokenIssuer,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
		if err != nil {
			t.Fatalf("SignedString() error = %v", err)
		}
		if _, err := svc.ValidateAccessToken(ctx, forged); err == nil {
			t.Error("expected forged token to be rejected")
		}
	})

	t.Run("rejects expired token", func(t *testing.T) {
		svc := newTestTokenService(t)
		claims := CustomClaims{
			UserID:    userID.String(),
			TokenType: tokenTypeAccess,
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    tokenIssuer,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
		}
		expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		if err != nil {
			t.Fatalf("SignedString() error = %v", err)
		}
		if _, err := svc.ValidateAccessToken(ctx, expired); err == nil {
			t.Error("expected expired token to be rejected")
		}
	})
}

func TestPasswordService(t *testing.T) {
	svc := NewPasswordService(bcrypt.MinCost)

	t.Run("hash and verify", func(t *testing.T) {
		hash, err := svc.HashPassword("secret123")
		if err != nil {
			t.Fatalf("HashPassword() error = %v", err)
		}
		if hash == "secret123" {
			t.Fatal("hash equals plain text")
		}
		if err := svc.VerifyPassword(hash, "secret123"); err != nil {
			t.Errorf("VerifyPassword() error = %v", err)
		}
		if err := svc.VerifyPassword(hash, "secret124"); err == nil {
			t.Error("expected mismatch error")
		}
	})

	t.Run("strength", func(t *testing.T) {
		tests := []struct {
			password string
			wantErr  bool
		}{
			{"abc12345", false},
			{"zażółć99", false},
			{"abc1234", true},
			{"abcdefgh", true},
			{"12345678", true},
		}
		for _, tt := range tests {
			err := svc.ValidatePasswordStrength(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePasswordStrength(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
			}
		}
	})

	t.Run("out of range cost falls back to default", func(t *testing.T) {
		s := NewPasswordService(0).(*passwordService)
		if s.cost != DefaultBcryptCost {
			t.Errorf("cost = %d, want %d", s.cost, DefaultBcryptCost)
		}
	})
}
