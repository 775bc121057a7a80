package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// resetTokenBytes is the entropy of a password-reset token.
const resetTokenBytes = 32

// GenerateResetToken returns a one-time password-reset token in plaintext
// together with its digest. The plaintext leaves the process exactly once
// (via email); only the digest is persisted.
func GenerateResetToken() (plain, digest string, err error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("generate reset token: %w", err)
	}
	plain = hex.EncodeToString(buf)
	return plain, HashResetToken(plain), nil
}

// HashResetToken computes the at-rest digest of a reset token. Lookup during
// reset compares digests, so the transform must be deterministic.
func HashResetToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
