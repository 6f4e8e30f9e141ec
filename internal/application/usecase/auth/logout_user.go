package auth

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
)

// SnapshotEvictor forgets the cached dashboard data of a user.
type SnapshotEvictor interface {
	Drop(ctx context.Context, userID uuid.UUID) error
}

// LogoutUserInput represents the input for user logout.
type LogoutUserInput struct {
	RefreshToken string
}

// LogoutUserOutput represents the output of user logout.
type LogoutUserOutput struct {
	Message string
	// Ended is false when the token was unknown or already revoked.
	Ended bool
}

// LogoutUserUseCase ends a session.
type LogoutUserUseCase struct {
	tokens    adapter.TokenService
	snapshots SnapshotEvictor
}

// NewLogoutUserUseCase creates a new LogoutUserUseCase instance. snapshots may be nil.
func NewLogoutUserUseCase(tokens adapter.TokenService, snapshots SnapshotEvictor) *LogoutUserUseCase {
	return &LogoutUserUseCase{
		tokens:    tokens,
		snapshots: snapshots,
	}
}

// Execute revokes the refresh token and evicts the owner's cached records so
// they do not outlive the session in the shared cache. It never fails.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, input LogoutUserInput) (*LogoutUserOutput, error) {
	out := &LogoutUserOutput{Message: "Successfully logged out"}

	claims, err := uc.tokens.ValidateRefreshToken(ctx, input.RefreshToken)
	if err != nil {
		return out, nil
	}
	if live, err := uc.tokens.IsRefreshTokenValid(ctx, input.RefreshToken); err != nil || !live {
		return out, nil
	}

	if err := uc.tokens.InvalidateRefreshToken(ctx, input.RefreshToken); err != nil {
		slog.Warn("failed to revoke refresh token on logout", "userID", claims.UserID, "error", err)
		return out, nil
	}
	out.Ended = true

	if uc.snapshots != nil {
		if err := uc.snapshots.Drop(ctx, claims.UserID); err != nil {
			slog.Warn("failed to evict record snapshot on logout", "userID", claims.UserID, "error", err)
		}
	}

	return out, nil
}
