package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated identity of the dashboard.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	FirstName    string
	ImageURL     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new User. FirstName is derived from name when empty.
func NewUser(email, name, firstName, imageURL, passwordHash string) *User {
	now := time.Now().UTC()
	if firstName == "" {
		firstName = FirstNameOf(name)
	}
	return &User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		FirstName:    firstName,
		ImageURL:     imageURL,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// DisplayName returns the name shown on the dashboard, falling back to the email.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// FirstNameOf returns the first whitespace separated word of name.
func FirstNameOf(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
