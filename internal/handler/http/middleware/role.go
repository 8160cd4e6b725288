package middleware

import (
	"fmt"
	"net/http"

	"github.com/nalaaircon/nala-backend/internal/domain/auth"
	"github.com/nalaaircon/nala-backend/internal/domain/user"
	"github.com/nalaaircon/nala-backend/internal/handler/http/response"
)

// RequirePermission lets the request through when the caller's role holds at
// least one of the permissions.
func RequirePermission(permissions ...user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := auth.SessionFrom(r.Context())
			if err != nil {
				response.HandleError(w, err)
				return
			}

			if !user.HasAnyPermission(session.Role, permissions...) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required %v, but user role is '%s'", permissions, session.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
