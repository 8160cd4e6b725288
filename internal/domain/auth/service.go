package auth

import (
	"context"
)

type AuthService interface {
	// Login checks phone and password of an active employee and issues an access token
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// Me reloads the session of the caller from the employee record
	Me(ctx context.Context, employeeID string) (Session, error)
}
