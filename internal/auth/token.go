// Package auth issues and verifies the signed session tokens of the admin
// panel and checks admin credentials.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin is the only role a token is ever issued for.
const RoleAdmin = "ADMIN"

// DefaultTTL is the lifetime of a session token.
const DefaultTTL = 24 * time.Hour

// MinSecretLen is the shortest signing secret NewTokenService accepts.
const MinSecretLen = 32

var (
	ErrInvalidSignature = errors.New("auth: invalid token signature")
	ErrExpired          = errors.New("auth: token expired")
	ErrMalformed        = errors.New("auth: malformed token")
	ErrWeakSecret       = fmt.Errorf("auth: signing secret shorter than %d bytes", MinSecretLen)
)

// Token is a signed session token and its expiry.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Identity is what a verified token asserts about its bearer.
type Identity struct {
	Username string
	Role     string
}

// claims is the JWT payload. The admin username travels in the standard
// subject (sub) claim alongside exp, iat and iss; role is the only private
// claim.
type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService signs tokens with HMAC-SHA256. It holds no mutable state after
// construction and is safe for concurrent use.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// TokenOption customises a TokenService.
type TokenOption func(*TokenService)

// WithTokenClock replaces time.Now for issuing and verifying.
func WithTokenClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

// NewTokenService builds a service for the given secret. A zero ttl means
// DefaultTTL.
func NewTokenService(secret, issuer string, ttl time.Duration, opts ...TokenOption) (*TokenService, error) {
	if len(secret) < MinSecretLen {
		return nil, ErrWeakSecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &TokenService{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	// The parser is built once so every Verify applies the same rules. Only
	// HS256 is accepted, which rules out "none" and algorithm confusion with
	// asymmetric keys. A token without exp never validates, and the injected
	// clock keeps expiry checks in step with Issue.
	popts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	// An empty issuer disables the iss check so tokens from a deployment
	// that never set one keep working.
	if issuer != "" {
		popts = append(popts, jwt.WithIssuer(issuer))
	}
	s.parser = jwt.NewParser(popts...)
	return s, nil
}

// TTL returns the lifetime of issued tokens.
func (s *TokenService) TTL() time.Duration { return s.ttl }

// Issue signs a token for username.
func (s *TokenService) Issue(username string) (Token, error) {
	// Truncation to whole seconds happens inside NumericDate; ExpiresAt on
	// the returned Token keeps the full precision for the login response.
	now := s.now().UTC()
	exp := now.Add(s.ttl)
	c := claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}
	return Token{Value: signed, ExpiresAt: exp}, nil
}

// Verify checks the signature, then expiry, then issuer, and returns the
// bearer's identity. Failures map onto ErrMalformed, ErrInvalidSignature and
// ErrExpired.
func (s *TokenService) Verify(raw string) (Identity, error) {
	var c claims
	// The key func can return the secret unconditionally because the parser
	// has already rejected any alg other than HS256.
	_, err := s.parser.ParseWithClaims(raw, &c, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return Identity{}, classify(err)
	}
	if c.Subject == "" {
		return Identity{}, ErrMalformed
	}
	// Tokens are only ever issued for the admin, so a missing role claim is
	// read as RoleAdmin rather than rejected.
	role := c.Role
	if role == "" {
		role = RoleAdmin
	}
	return Identity{Username: c.Subject, Role: role}, nil
}

// classify folds the jwt library's error set into the three errors callers
// act on. An unknown issuer counts as a bad signature since the token was not
// minted here, and a missing exp counts as expired.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable),
		errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired),
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return ErrExpired
	default:
		return ErrMalformed
	}
}
