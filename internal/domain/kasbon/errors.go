package kasbon

import "errors"

var (
	ErrKasbonNotFound      = errors.New("kasbon not found")
	ErrKasbonAlreadyPaid   = errors.New("kasbon is already paid")
	ErrKasbonLimitExceeded = errors.New("kasbon exceeds the allowed limit")
)
