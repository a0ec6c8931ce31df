package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes the admin password for the in-memory credential. A cost
// outside bcrypt's accepted range, zero included, falls back to
// bcrypt.DefaultCost so a bad BCRYPT_COST cannot stop the server from
// starting. Passwords over 72 bytes are rejected by bcrypt rather than
// silently truncated.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches hash. bcrypt compares in
// constant time, and a malformed hash simply fails to match.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
