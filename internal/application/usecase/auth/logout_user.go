package auth

import (
	"context"
	"log/slog"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
)

// LogoutUserUseCase handles user logout logic.
type LogoutUserUseCase struct {
	tokenService adapter.TokenService
}

// NewLogoutUserUseCase creates a new LogoutUserUseCase instance.
func NewLogoutUserUseCase(tokenService adapter.TokenService) *LogoutUserUseCase {
	return &LogoutUserUseCase{
		tokenService: tokenService,
	}
}

// Execute revokes the refresh token. Logging out always succeeds, also for
// tokens that are already invalid.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, refreshToken string) {
	if err := uc.tokenService.InvalidateRefreshToken(ctx, refreshToken); err != nil {
		slog.Warn("Failed to revoke refresh token on logout", "error", err)
	}
}
