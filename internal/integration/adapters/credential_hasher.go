package adapters

import (
	"errors"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/finance-tracker/dashboard/internal/application/adapter"
)

const (
	// DefaultBcryptCost is the production hashing cost.
	DefaultBcryptCost = 12

	minSecretLength = 8
	// bcrypt ignores input beyond 72 bytes.
	maxSecretBytes = 72
)

var (
	errSecretTooShort = errors.New("password must be at least 8 characters long")
	errSecretTooLong  = errors.New("password must be at most 72 bytes long")
	errSecretBlank    = errors.New("password must not be only whitespace")
)

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a CredentialHasher using the given bcrypt cost.
// A cost outside bcrypt's bounds falls back to DefaultBcryptCost.
func NewBcryptHasher(cost int) adapter.CredentialHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(secret string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (h *bcryptHasher) Matches(hash, secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}

func (h *bcryptHasher) CheckPolicy(secret string) error {
	switch {
	case len([]rune(secret)) < minSecretLength:
		return errSecretTooShort
	case len(secret) > maxSecretBytes:
		return errSecretTooLong
	}
	for _, r := range secret {
		if !unicode.IsSpace(r) {
			return nil
		}
	}
	return errSecretBlank
}
