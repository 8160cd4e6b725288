package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid phone or password")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenExpired       = errors.New("token has expired")
	ErrNoSession          = errors.New("no authenticated session")
)
