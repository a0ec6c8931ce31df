package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
)

// ErrInvalidCredentials is returned for any username or password mismatch.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// Authenticator checks the credentials of the single configured admin.
type Authenticator struct {
	username     string
	passwordHash string
	tokens       *TokenService
}

// NewAuthenticator wraps the admin account. passwordHash must be a bcrypt
// hash.
func NewAuthenticator(username, passwordHash string, tokens *TokenService) *Authenticator {
	return &Authenticator{username: username, passwordHash: passwordHash, tokens: tokens}
}

// Login returns a fresh token when username and password match. The password
// is always checked, so a wrong username costs the same bcrypt round as a
// wrong password.
func (a *Authenticator) Login(username, password string) (Token, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := a.passwordHash != "" && VerifyPassword(a.passwordHash, password)
	if !userOK || !passOK {
		return Token{}, ErrInvalidCredentials
	}
	tok, err := a.tokens.Issue(a.username)
	if err != nil {
		return Token{}, fmt.Errorf("login: %w", err)
	}
	return tok, nil
}

// Verify delegates to the token service.
func (a *Authenticator) Verify(raw string) (Identity, error) {
	return a.tokens.Verify(raw)
}
