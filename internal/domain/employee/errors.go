package employee

import "errors"

var (
	ErrEmployeeNotFound        = errors.New("employee not found")
	ErrPhoneExists             = errors.New("phone number already registered")
	ErrInvalidLevel            = errors.New("unknown employee level")
	ErrInvalidBranch           = errors.New("unknown branch")
	ErrEmployeeInactive        = errors.New("employee is inactive")
	ErrEmployeeAlreadyInactive = errors.New("employee is already inactive")
	ErrCannotDeactivateSelf    = errors.New("cannot deactivate your own account")
)
