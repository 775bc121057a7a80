package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken indicates a malformed, mis-signed or expired session token.
	ErrInvalidToken = errors.New("invalid token")

	// ErrInvalidResetToken covers both non-matching and expired reset tokens.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")

	// ErrUnauthenticated indicates a request with no resolved principal.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrForbidden indicates an authenticated caller lacking permission or ownership.
	ErrForbidden = errors.New("forbidden")
)

// ForbiddenError is a permission denial that reports which permissions
// would have satisfied the check.
type ForbiddenError struct {
	Required []Permission
}

func (e *ForbiddenError) Error() string {
	if len(e.Required) == 0 {
		return ErrForbidden.Error()
	}
	return fmt.Sprintf("forbidden: requires one of %v", e.Required)
}

func (e *ForbiddenError) Is(target error) bool {
	return target == ErrForbidden
}
