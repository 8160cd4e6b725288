package expense

import "errors"

var (
	ErrExpenseNotFound  = errors.New("expense not found")
	ErrInvalidCategory  = errors.New("unknown expense category")
	ErrEmployeeRequired = errors.New("kasbon expense requires an employee")
)
