// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/finance-tracker/dashboard/internal/application/usecase/auth"
)

// RegisterRequest represents the request body for user registration.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=1,max=100"`
	ImageURL string `json:"image_url" binding:"omitempty,url,max=500"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// RefreshTokenRequest represents the request body for token refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest represents the request body for user logout.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// SessionResponse is returned by register, login and refresh.
type SessionResponse struct {
	AccessToken  string              `json:"access_token"`
	RefreshToken string              `json:"refresh_token"`
	User         CurrentUserResponse `json:"user"`
}

// MessageResponse represents a generic message response.
type MessageResponse struct {
	Message string `json:"message"`
}

// CurrentUserResponse is the identity returned by GET /me.
type CurrentUserResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	FirstName   string `json:"first_name"`
	ImageURL    string `json:"image_url,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// ToSessionResponse converts a session to its DTO.
func ToSessionResponse(session *auth.Session) SessionResponse {
	return SessionResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		User:         ToCurrentUserResponse(session.Identity),
	}
}

// ToCurrentUserResponse converts a GetCurrentUserOutput to its DTO.
func ToCurrentUserResponse(output *auth.GetCurrentUserOutput) CurrentUserResponse {
	return CurrentUserResponse{
		ID:          output.ID.String(),
		Email:       output.Email,
		DisplayName: output.DisplayName,
		FirstName:   output.FirstName,
		ImageURL:    output.ImageURL,
	}
}
