package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/nalaaircon/nala-backend/internal/domain/auth"
	"github.com/nalaaircon/nala-backend/internal/handler/http/response"
	"github.com/nalaaircon/nala-backend/internal/pkg/jwt"
)

// AuthRequired rejects requests without a valid access token and stores the
// caller's session in the request context.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			session, err := jwt.SessionFromClaims(claims)
			if err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), session)))
		}
		return http.HandlerFunc(hfn)
	}
}
