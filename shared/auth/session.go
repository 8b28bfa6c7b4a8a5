package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMissingSecret is returned when a Sessions issuer is constructed without
// a signing secret. Sessions must fail closed rather than sign with an empty
// key.
var ErrMissingSecret = errors.New("session signing secret is not configured")

// Identity is the normalized assertion produced by a successful credential
// verification. It never carries the password hash.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// SessionClaims are the claims embedded in a session token. The role claim
// carries the role stored on the user record.
type SessionClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Identity rebuilds the identity assertion carried by the claims.
func (c *SessionClaims) Identity() Identity {
	return Identity{
		ID:    c.Subject,
		Name:  c.Name,
		Email: c.Email,
		Role:  c.Role,
	}
}

// PasswordResetClaims are the claims embedded in a password reset token.
type PasswordResetClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	JTI    string `json:"jti"`
	jwt.RegisteredClaims
}

// Sessions issues and verifies stateless session tokens. The server never
// stores a session; trust is re-derived from the signature and expiry on
// every request.
type Sessions struct {
	jwtAuth JWTAuthenticator
	secret  string
	ttl     time.Duration
	issuer  string
}

// NewSessions creates a session issuer. It refuses to build without a secret.
func NewSessions(jwtAuth JWTAuthenticator, secret, issuer string, ttl time.Duration) (*Sessions, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	return &Sessions{
		jwtAuth: jwtAuth,
		secret:  secret,
		ttl:     ttl,
		issuer:  issuer,
	}, nil
}

// Issue signs a session token for the given identity. The token expires
// after the configured lifetime.
func (s *Sessions) Issue(identity Identity) (string, *SessionClaims, error) {
	now := time.Now()
	claims := &SessionClaims{
		Name:  identity.Name,
		Email: identity.Email,
		Role:  identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.issuer},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := s.jwtAuth.GenerateToken(claims, s.secret)
	if err != nil {
		return "", nil, err
	}

	return token, claims, nil
}

// Verify parses and validates a session token and returns its claims.
func (s *Sessions) Verify(token string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if _, err := s.jwtAuth.ValidateTokenWithClaims(token, s.secret, claims); err != nil {
		return nil, err
	}

	return claims, nil
}

// TTL returns the configured session lifetime.
func (s *Sessions) TTL() time.Duration {
	return s.ttl
}
