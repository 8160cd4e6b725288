package payroll

import "errors"

var (
	ErrSalarySlipNotFound      = errors.New("salary slip not found")
	ErrSalarySlipAlreadyExists = errors.New("salary slip already exists for this period")
	ErrUnknownLevel            = errors.New("employee level has no configured rates")
	ErrInvalidPeriod           = errors.New("invalid payroll period")
)
