package middleware

import (
	"net/http"

	"github.com/heartmarshall/todolist-backend/pkg/ctxutil"
)

// RequireAuth rejects anonymous requests with 401. Place it after Auth.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ctxutil.UserIDFromCtx(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireStaff rejects anonymous requests with 401 and non-staff callers
// with 403.
func RequireStaff(next http.Handler) http.Handler {
	return RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !ctxutil.IsStaffCtx(r.Context()) {
			writeError(w, http.StatusForbidden, "staff access required")
			return
		}
		next.ServeHTTP(w, r)
	}))
}
