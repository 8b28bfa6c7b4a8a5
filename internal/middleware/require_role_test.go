package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmCoder2104/exam-portal-api/internal/model"
	"github.com/AmCoder2104/exam-portal-api/shared/authz"
)

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body["error"]
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	g, _ := newTestGuard(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)

	g.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a session")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotEmpty(t, decodeErrorBody(t, rec))
}

func TestRequireAuthStoresClaims(t *testing.T) {
	g, sessions := newTestGuard(t)

	var gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := SessionFromContext(r.Context())
		require.True(t, ok)
		gotRole = claims.Role
	})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	withSessionCookie(req, issueToken(t, sessions, model.RoleCandidate))

	g.RequireAuth(next).ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, model.RoleCandidate, gotRole)
}

func TestRequireRole(t *testing.T) {
	g, sessions := newTestGuard(t)

	cases := []struct {
		role     string
		wantCode int
	}{
		{role: model.RoleAdmin, wantCode: http.StatusOK},
		{role: model.RoleExaminer, wantCode: http.StatusOK},
		{role: model.RoleCandidate, wantCode: http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.role, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/questions", nil)
			withSessionCookie(req, issueToken(t, sessions, tc.role))

			g.RequireRole(authz.ManagementArea)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})).ServeHTTP(rec, req)

			assert.Equal(t, tc.wantCode, rec.Code)
			if tc.wantCode == http.StatusForbidden {
				assert.NotEmpty(t, decodeErrorBody(t, rec))
			}
		})
	}
}

func TestRequireRoleRejectsInvalidToken(t *testing.T) {
	g, _ := newTestGuard(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	withSessionCookie(req, "garbage")

	g.RequireRole(authz.AdminArea)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with an invalid token")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotEmpty(t, decodeErrorBody(t, rec))
}
