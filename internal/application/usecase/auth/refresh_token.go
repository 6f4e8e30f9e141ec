package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
)

// RefreshTokenInput represents the input for token refresh.
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenUseCase rotates a refresh token into a new session.
type RefreshTokenUseCase struct {
	tokens   adapter.TokenService
	userRepo adapter.UserRepository
}

// NewRefreshTokenUseCase creates a new RefreshTokenUseCase instance.
func NewRefreshTokenUseCase(tokens adapter.TokenService, userRepo adapter.UserRepository) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{
		tokens:   tokens,
		userRepo: userRepo,
	}
}

// Execute revokes the presented token and opens a new session. The identity
// is read again, so renamed users get their current greeting and removed
// users get AUTH-020002 instead of fresh tokens.
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, input RefreshTokenInput) (*Session, error) {
	claims, err := uc.tokens.ValidateRefreshToken(ctx, input.RefreshToken)
	if err != nil {
		return nil, invalidRefreshToken("invalid or expired refresh token")
	}

	live, err := uc.tokens.IsRefreshTokenValid(ctx, input.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to check token validity: %w", err)
	}
	if !live {
		return nil, invalidRefreshToken("refresh token has been revoked")
	}

	// Single use, whatever happens next.
	if err := uc.tokens.InvalidateRefreshToken(ctx, input.RefreshToken); err != nil {
		return nil, fmt.Errorf("failed to invalidate old token: %w", err)
	}

	user, err := uc.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeUserNotFound,
				"user not found",
				domainerror.ErrUserNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return openSession(ctx, uc.tokens, user, false)
}

func invalidRefreshToken(message string) error {
	return domainerror.NewAuthError(domainerror.ErrCodeInvalidToken, message, domainerror.ErrInvalidToken)
}
