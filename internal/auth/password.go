package auth

import (
	"fmt"

	"leadsdesk/internal/errs"

	"golang.org/x/crypto/bcrypt"
)

const (
	// MinPasswordLength is the minimum accepted plaintext password length.
	MinPasswordLength = 6
	// bcryptCost trades hashing latency for offline brute-force resistance.
	bcryptCost = 12
)

// ValidatePassword enforces the plaintext password policy.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters long", errs.ErrInvalidInput, MinPasswordLength)
	}
	return nil
}

// HashPassword hashes a plaintext password with bcrypt (random salt per call).
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: password is empty", errs.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password with its stored hash.
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
