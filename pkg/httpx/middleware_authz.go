package httpx

import "net/http"

// RequireRole only admits callers whose verified role matches the required
// one. It must be chained strictly after the authentication gate that
// populates the role in the request context. On mismatch the wrapped handler
// is never invoked.
func RequireRole(required string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if RoleFromContext(r.Context()) != required {
				WriteError(w, http.StatusForbidden, "forbidden", required+" access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
