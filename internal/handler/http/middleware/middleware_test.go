package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nalaaircon/nala-backend/internal/domain/auth"
	"github.com/nalaaircon/nala-backend/internal/domain/user"
	"github.com/nalaaircon/nala-backend/internal/pkg/jwt"
)

func protected(jwtService jwt.Service, perms ...user.Permission) http.Handler {
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := auth.SessionFrom(r.Context())
		if err != nil {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		_, _ = w.Write([]byte(session.EmployeeID))
	})
	return jwtauth.Verifier(jwtService.JWTAuth())(AuthRequired(jwtService.JWTAuth())(RequirePermission(perms...)(final)))
}

func call(t *testing.T, h http.Handler, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequired(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", "1h")
	h := protected(jwtService, user.PermissionRead)

	token, _, err := jwtService.GenerateAccessToken(auth.Session{EmployeeID: "emp-1", Role: user.RoleTeknisi})
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		rec := call(t, h, token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "emp-1", rec.Body.String())
	})

	t.Run("missing token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, call(t, h, "").Code)
	})

	t.Run("foreign signature", func(t *testing.T) {
		other := jwt.NewJWTService("other-secret", "1h")
		forged, _, err := other.GenerateAccessToken(auth.Session{EmployeeID: "emp-1", Role: user.RoleAdmin})
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, call(t, h, forged).Code)
	})

	t.Run("unknown role", func(t *testing.T) {
		bad, _, err := jwtService.GenerateAccessToken(auth.Session{EmployeeID: "emp-1", Role: "owner"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, call(t, h, bad).Code)
	})
}

func TestRequirePermission(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", "1h")

	tokenFor := func(role user.Role) string {
		token, _, err := jwtService.GenerateAccessToken(auth.Session{EmployeeID: "emp-" + string(role), Role: role})
		require.NoError(t, err)
		return token
	}

	finance := protected(jwtService, user.PermissionWriteFinance)
	assert.Equal(t, http.StatusOK, call(t, finance, tokenFor(user.RoleFinance)).Code)
	assert.Equal(t, http.StatusOK, call(t, finance, tokenFor(user.RoleAdmin)).Code)
	assert.Equal(t, http.StatusForbidden, call(t, finance, tokenFor(user.RoleTeknisi)).Code)
	assert.Equal(t, http.StatusForbidden, call(t, finance, tokenFor(user.RoleManager)).Code)

	either := protected(jwtService, user.PermissionWrite, user.PermissionWriteFinance)
	assert.Equal(t, http.StatusOK, call(t, either, tokenFor(user.RoleManager)).Code)
	assert.Equal(t, http.StatusOK, call(t, either, tokenFor(user.RoleFinance)).Code)
	assert.Equal(t, http.StatusForbidden, call(t, either, tokenFor(user.RoleTeknisi)).Code)
}
