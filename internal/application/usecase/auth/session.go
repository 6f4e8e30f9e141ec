package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
)

// Session is what a client holds after signing in: the token pair and the
// identity the dashboard greets.
type Session struct {
	AccessToken  string
	RefreshToken string
	Identity     *GetCurrentUserOutput
}

func openSession(ctx context.Context, tokens adapter.TokenService, user *entity.User, rememberMe bool) (*Session, error) {
	pair, err := tokens.GenerateTokenPair(ctx, user.ID, user.Email, rememberMe)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}
	return &Session{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Identity:     ToCurrentUserOutput(user),
	}, nil
}

// normalizeEmail is the form emails are stored and looked up in.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
