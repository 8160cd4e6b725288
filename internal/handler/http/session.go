package http

import (
	"net/http"
	"time"

	"github.com/nalaaircon/nala-backend/internal/domain/auth"
	"github.com/nalaaircon/nala-backend/internal/domain/user"
	"github.com/nalaaircon/nala-backend/internal/handler/http/response"
	"github.com/nalaaircon/nala-backend/internal/service/payroll"
)

// currentSession writes a 401 and returns false when the request carries no session.
func currentSession(w http.ResponseWriter, r *http.Request) (auth.Session, bool) {
	session, err := auth.SessionFrom(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return auth.Session{}, false
	}
	return session, true
}

// seesEveryone reports whether the caller may read records of other employees.
func seesEveryone(s auth.Session) bool {
	return user.HasAnyPermission(s.Role, user.PermissionApprove, user.PermissionWriteFinance)
}

// periodParam reads ?period and falls back to the current payroll period.
func periodParam(r *http.Request, calc *payroll.Calculator) string {
	if period := r.URL.Query().Get("period"); period != "" {
		return period
	}
	return calc.Period(time.Now())
}
