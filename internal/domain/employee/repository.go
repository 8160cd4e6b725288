package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, employee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	// GetByPhone returns nil when no employee uses the number.
	GetByPhone(ctx context.Context, phone string) (*Employee, error)
	// List returns employees ordered by name.
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, error)
	Update(ctx context.Context, employee Employee) (Employee, error)
}
