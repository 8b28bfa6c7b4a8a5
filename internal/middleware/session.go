package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/AmCoder2104/exam-portal-api/shared/auth"
)

// SessionCookieName is the cookie the session token travels in.
const SessionCookieName = "session_token"

type contextKey struct{}

var sessionClaimsKey = contextKey{}

// ContextWithSession stores verified session claims on the context.
func ContextWithSession(ctx context.Context, claims *auth.SessionClaims) context.Context {
	return context.WithValue(ctx, sessionClaimsKey, claims)
}

// SessionFromContext returns the verified session claims for the request, if any.
func SessionFromContext(ctx context.Context) (*auth.SessionClaims, bool) {
	claims, ok := ctx.Value(sessionClaimsKey).(*auth.SessionClaims)
	return claims, ok
}

var errNoSessionToken = errors.New("no session token in request")

// sessionFromRequest extracts and verifies a session token from the cookie
// or the Authorization header.
func sessionFromRequest(r *http.Request, sessions *auth.Sessions) (*auth.SessionClaims, error) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return sessions.Verify(cookie.Value)
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, errNoSessionToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, errNoSessionToken
	}

	return sessions.Verify(parts[1])
}
