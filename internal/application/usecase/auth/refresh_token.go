package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
)

// RefreshTokenUseCase rotates a refresh token.
type RefreshTokenUseCase struct {
	userRepo     adapter.UserRepository
	tokenService adapter.TokenService
}

// NewRefreshTokenUseCase creates a new RefreshTokenUseCase instance.
func NewRefreshTokenUseCase(userRepo adapter.UserRepository, tokenService adapter.TokenService) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{
		userRepo:     userRepo,
		tokenService: tokenService,
	}
}

// Execute revokes the presented refresh token and issues a new pair. A token
// can be used once; a revoked token is rejected.
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, refreshToken string) (*AuthOutput, error) {
	claims, err := uc.tokenService.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, invalidToken("invalid or expired refresh token")
	}

	valid, err := uc.tokenService.IsRefreshTokenValid(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to check token validity: %w", err)
	}
	if !valid {
		return nil, invalidToken("refresh token has been revoked")
	}

	user, err := uc.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, invalidToken("account no longer exists")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := uc.tokenService.InvalidateRefreshToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to invalidate old token: %w", err)
	}

	return issueTokens(ctx, uc.tokenService, user, false)
}

func invalidToken(message string) error {
	return domainerror.NewAuthError(
		domainerror.ErrCodeInvalidToken,
		message,
		domainerror.ErrInvalidToken,
	)
}
