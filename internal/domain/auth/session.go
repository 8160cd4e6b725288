package auth

import (
	"context"

	"github.com/nalaaircon/nala-backend/internal/domain/user"
)

// Session identifies the authenticated caller of a request.
type Session struct {
	EmployeeID string    `json:"employee_id"`
	Name       string    `json:"name"`
	Role       user.Role `json:"role"`
	Branch     string    `json:"branch"`
}

func (s Session) Can(p user.Permission) bool {
	return user.HasPermission(s.Role, p)
}

type sessionKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom returns the session stored by the auth middleware.
func SessionFrom(ctx context.Context) (Session, error) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	if !ok || s.EmployeeID == "" {
		return Session{}, ErrNoSession
	}
	return s, nil
}
