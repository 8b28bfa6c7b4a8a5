package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/AmCoder2104/exam-portal-api/shared/auth"
	"github.com/AmCoder2104/exam-portal-api/shared/authz"
)

// Protected page prefixes. More specific prefixes are evaluated before the
// general dashboard rule.
const (
	testPrefix      = "/test"
	dashboardPrefix = "/dashboard"

	adminOnlyPrefix = "/dashboard/users"

	loginPath = "/auth/login"
)

var managementPrefixes = []string{"/dashboard/tests", "/dashboard/questions"}

// Guard intercepts requests to the test-taking and dashboard areas and
// enforces authentication and role-based access before the page handlers run.
// Requests outside the protected prefixes pass through untouched.
type Guard struct {
	sessions *auth.Sessions
	logger   *zerolog.Logger
}

// NewGuard creates a route guard backed by the given session verifier.
func NewGuard(sessions *auth.Sessions, logger *zerolog.Logger) *Guard {
	return &Guard{
		sessions: sessions,
		logger:   logger,
	}
}

// Protect is the page-route middleware. Unauthenticated requests are
// redirected to the login page with the original URL as callback;
// insufficient roles are redirected to the dashboard root or the
// application root depending on which rule failed.
func (g *Guard) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if !strings.HasPrefix(path, testPrefix) && !strings.HasPrefix(path, dashboardPrefix) {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := sessionFromRequest(r, g.sessions)
		if err != nil {
			g.redirectToLogin(w, r)
			return
		}

		if strings.HasPrefix(path, adminOnlyPrefix) && !authz.Allowed(claims.Role, authz.AdminArea) {
			http.Redirect(w, r, dashboardPrefix, http.StatusFound)
			return
		}

		if matchesAny(path, managementPrefixes) && !authz.Allowed(claims.Role, authz.ManagementArea) {
			http.Redirect(w, r, dashboardPrefix, http.StatusFound)
			return
		}

		if strings.HasPrefix(path, dashboardPrefix) && !authz.Allowed(claims.Role, authz.Dashboard) {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithSession(r.Context(), claims)))
	})
}

func (g *Guard) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	login := url.URL{Path: loginPath}

	query := url.Values{}
	query.Set("callbackUrl", requestURL(r))
	login.RawQuery = query.Encode()

	http.Redirect(w, r, login.String(), http.StatusFound)
}

// requestURL reconstructs the absolute URL the client requested so the
// login page can redirect back after authentication.
func requestURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	return scheme + "://" + r.Host + r.URL.RequestURI()
}

func matchesAny(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
