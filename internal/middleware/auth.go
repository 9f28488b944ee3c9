package middleware

import (
	"net/http"
	"strings"

	"docvault/internal/httputil"
)

// AuthMiddleware resolves the caller's identity from the X-User-Id
// header set by the authenticating reverse proxy. The header's value is
// trusted as-is; session verification happens upstream. Requests
// without it get a 401 unless the path is public.
func AuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
			if userID == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing X-User-Id header")
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, userID))
		})
	}
}

// isPublicPath lists the routes reachable without an identity:
// registration, login and the health probe.
func isPublicPath(path string) bool {
	if path == "/health" {
		return true
	}
	return strings.HasPrefix(path, "/api/auth/")
}
