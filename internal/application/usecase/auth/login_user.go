package auth

import (
	"context"
	"log/slog"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
)

// LoginUserInput represents the input for user login.
type LoginUserInput struct {
	Email      string
	Password   string
	RememberMe bool
}

// LoginUserUseCase opens a session for a known email and password.
type LoginUserUseCase struct {
	userRepo adapter.UserRepository
	hasher   adapter.CredentialHasher
	tokens   adapter.TokenService
}

// NewLoginUserUseCase creates a new LoginUserUseCase instance.
func NewLoginUserUseCase(
	userRepo adapter.UserRepository,
	hasher adapter.CredentialHasher,
	tokens adapter.TokenService,
) *LoginUserUseCase {
	return &LoginUserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// Execute checks the credentials and returns a session. Unknown emails and
// wrong passwords produce the same AUTH-020001 error.
func (uc *LoginUserUseCase) Execute(ctx context.Context, input LoginUserInput) (*Session, error) {
	user, err := uc.userRepo.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil || !uc.hasher.Matches(user.PasswordHash, input.Password) {
		if err != nil {
			slog.Debug("login for unknown email", "error", err)
		}
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidCredentials,
			"invalid email or password",
			domainerror.ErrInvalidCredentials,
		)
	}

	return openSession(ctx, uc.tokens, user, input.RememberMe)
}
