package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
)

// GetCurrentUserInput represents the input for resolving the current identity.
type GetCurrentUserInput struct {
	UserID uuid.UUID
}

// GetCurrentUserOutput is the identity shown on the dashboard.
type GetCurrentUserOutput struct {
	ID          uuid.UUID
	Email       string
	DisplayName string
	FirstName   string
	ImageURL    string
}

// GetCurrentUserUseCase resolves the authenticated user's identity.
type GetCurrentUserUseCase struct {
	userRepo adapter.UserRepository
}

// NewGetCurrentUserUseCase creates a new GetCurrentUserUseCase instance.
func NewGetCurrentUserUseCase(userRepo adapter.UserRepository) *GetCurrentUserUseCase {
	return &GetCurrentUserUseCase{
		userRepo: userRepo,
	}
}

// Execute returns the identity of the user, or an AUTH-020002 error when it no longer exists.
func (uc *GetCurrentUserUseCase) Execute(ctx context.Context, input GetCurrentUserInput) (*GetCurrentUserOutput, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
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

	return ToCurrentUserOutput(user), nil
}

// ToCurrentUserOutput converts a user entity into the identity output.
func ToCurrentUserOutput(user *entity.User) *GetCurrentUserOutput {
	firstName := user.FirstName
	if firstName == "" {
		firstName = entity.FirstNameOf(user.DisplayName())
	}
	return &GetCurrentUserOutput{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName(),
		FirstName:   firstName,
		ImageURL:    user.ImageURL,
	}
}
