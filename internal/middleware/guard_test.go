package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmCoder2104/exam-portal-api/internal/model"
	"github.com/AmCoder2104/exam-portal-api/shared/auth"
)

func newTestSessions(t *testing.T) *auth.Sessions {
	t.Helper()

	jwtAuth := auth.NewJWTAuthenticator("exam-portal", "exam-portal")
	sessions, err := auth.NewSessions(jwtAuth, "guard-test-secret", "exam-portal", time.Hour)
	require.NoError(t, err)

	return sessions
}

func newTestGuard(t *testing.T) (*Guard, *auth.Sessions) {
	t.Helper()

	sessions := newTestSessions(t)
	logger := zerolog.Nop()

	return NewGuard(sessions, &logger), sessions
}

func issueToken(t *testing.T, sessions *auth.Sessions, role string) string {
	t.Helper()

	token, _, err := sessions.Issue(auth.Identity{
		ID:    "64f000000000000000000001",
		Name:  "Test User",
		Email: "user@example.com",
		Role:  role,
	})
	require.NoError(t, err)

	return token
}

// serveGuarded runs a request through Guard.Protect in front of a handler
// that records whether it was reached.
func serveGuarded(g *Guard, req *http.Request) (*httptest.ResponseRecorder, bool) {
	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	g.Protect(next).ServeHTTP(rec, req)

	return rec, reached
}

func withSessionCookie(req *http.Request, token string) *http.Request {
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	return req
}

func TestGuardIgnoresUnprotectedPaths(t *testing.T) {
	g, _ := newTestGuard(t)

	for _, path := range []string{"/", "/about", "/auth/login", "/api/questions"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec, reached := serveGuarded(g, req)

		assert.True(t, reached, "path %s should pass through", path)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestGuardRedirectsAnonymousToLogin(t *testing.T) {
	g, _ := newTestGuard(t)

	req := httptest.NewRequest(http.MethodGet, "http://portal.example/test/web-development", nil)
	rec, reached := serveGuarded(g, req)

	assert.False(t, reached)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t,
		"/auth/login?callbackUrl=http%3A%2F%2Fportal.example%2Ftest%2Fweb-development",
		rec.Header().Get("Location"))
}

func TestGuardRedirectsInvalidToken(t *testing.T) {
	g, _ := newTestGuard(t)

	req := httptest.NewRequest(http.MethodGet, "http://portal.example/dashboard", nil)
	withSessionCookie(req, "not-a-token")

	rec, reached := serveGuarded(g, req)

	assert.False(t, reached)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), loginPath)
}

func TestGuardAdminOnlyArea(t *testing.T) {
	g, sessions := newTestGuard(t)

	cases := []struct {
		role       string
		wantPass   bool
		wantTarget string
	}{
		{role: model.RoleAdmin, wantPass: true},
		{role: model.RoleExaminer, wantPass: false, wantTarget: "/dashboard"},
		{role: model.RoleCandidate, wantPass: false, wantTarget: "/dashboard"},
	}

	for _, tc := range cases {
		t.Run(tc.role, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/dashboard/users", nil)
			withSessionCookie(req, issueToken(t, sessions, tc.role))

			rec, reached := serveGuarded(g, req)

			if tc.wantPass {
				assert.True(t, reached)
				assert.Equal(t, http.StatusOK, rec.Code)
				return
			}

			assert.False(t, reached)
			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, tc.wantTarget, rec.Header().Get("Location"))
		})
	}
}

func TestGuardManagementArea(t *testing.T) {
	g, sessions := newTestGuard(t)

	for _, path := range []string{"/dashboard/tests", "/dashboard/questions"} {
		t.Run(path, func(t *testing.T) {
			for _, role := range []string{model.RoleAdmin, model.RoleExaminer} {
				req := httptest.NewRequest(http.MethodGet, path, nil)
				withSessionCookie(req, issueToken(t, sessions, role))

				_, reached := serveGuarded(g, req)
				assert.True(t, reached, "role %s should reach %s", role, path)
			}

			req := httptest.NewRequest(http.MethodGet, path, nil)
			withSessionCookie(req, issueToken(t, sessions, model.RoleCandidate))

			rec, reached := serveGuarded(g, req)
			assert.False(t, reached)
			assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
		})
	}
}

func TestGuardDashboardRequiresKnownRole(t *testing.T) {
	g, sessions := newTestGuard(t)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	withSessionCookie(req, issueToken(t, sessions, "visitor"))

	rec, reached := serveGuarded(g, req)

	assert.False(t, reached)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestGuardTestAreaAllowsCandidates(t *testing.T) {
	g, sessions := newTestGuard(t)

	req := httptest.NewRequest(http.MethodGet, "/test/javascript", nil)
	withSessionCookie(req, issueToken(t, sessions, model.RoleCandidate))

	rec, reached := serveGuarded(g, req)

	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGuardAcceptsBearerToken(t *testing.T) {
	g, sessions := newTestGuard(t)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, sessions, model.RoleExaminer))

	_, reached := serveGuarded(g, req)
	assert.True(t, reached)
}

func TestGuardStoresClaimsOnContext(t *testing.T) {
	g, sessions := newTestGuard(t)

	var gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := SessionFromContext(r.Context())
		require.True(t, ok)
		gotRole = claims.Role
	})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	withSessionCookie(req, issueToken(t, sessions, model.RoleAdmin))

	g.Protect(next).ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, model.RoleAdmin, gotRole)
}
