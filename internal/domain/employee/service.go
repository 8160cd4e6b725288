package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// CreateEmployee validates level and branch against the business rules and hashes the password
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	// ListEmployees returns active employees ordered by name unless IncludeInactive is set
	ListEmployees(ctx context.Context, filter EmployeeFilter) ([]EmployeeResponse, error)

	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// DeactivateEmployee soft deletes an employee; actorID is the caller
	DeactivateEmployee(ctx context.Context, id string, actorID string) error
}
