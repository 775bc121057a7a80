package auth

import (
	"errors"
	"testing"

	"leadsdesk/internal/errs"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	const pw = "correct horse battery staple"
	hash, err := HashPassword(pw)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == pw {
		t.Fatalf("hash equals plaintext")
	}
	if !VerifyPassword(hash, pw) {
		t.Fatalf("VerifyPassword: expected true for correct password")
	}
	if VerifyPassword(hash, "wrong") {
		t.Fatalf("VerifyPassword: expected false for wrong password")
	}
	if VerifyPassword(hash, "") {
		t.Fatalf("VerifyPassword: expected false for empty password")
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword(1): %v", err)
	}
	h2, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword(2): %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same password are equal, salt missing")
	}
}

func TestHashPassword_EmptyRejected(t *testing.T) {
	t.Parallel()

	if _, err := HashPassword(""); !errors.Is(err, errs.ErrInvalidInput) {
		t.Fatalf("err=%v, want ErrInvalidInput", err)
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	if err := ValidatePassword("abcdef"); err != nil {
		t.Fatalf("6-char password rejected: %v", err)
	}
	if err := ValidatePassword("abcde"); !errors.Is(err, errs.ErrInvalidInput) {
		t.Fatalf("short password: err=%v, want ErrInvalidInput", err)
	}
}
