package record

import (
	"context"

	"github.com/nalaaircon/nala-backend/internal/domain/employee"
	"github.com/nalaaircon/nala-backend/internal/pkg/recordstore"
)

type employeeRepository struct {
	store recordstore.Store
}

func NewEmployeeRepository(store recordstore.Store) employee.EmployeeRepository {
	return &employeeRepository{store: store}
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	return create(ctx, r.store, recordstore.Employees, e)
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return getByID[employee.Employee](ctx, r.store, recordstore.Employees, id, employee.ErrEmployeeNotFound)
}

// GetByPhone implements employee.EmployeeRepository.
func (r *employeeRepository) GetByPhone(ctx context.Context, phone string) (*employee.Employee, error) {
	return first[employee.Employee](ctx, r.store, recordstore.Employees, recordstore.Query().Eq("phone", phone))
}

// List implements employee.EmployeeRepository.
func (r *employeeRepository) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	q := recordstore.Query()
	if filter.Branch != "" {
		q.Eq("branch", filter.Branch)
	}
	if filter.Role != "" {
		q.Eq("role", filter.Role)
	}
	if !filter.IncludeInactive {
		q.Eq("is_active", true)
	}
	return list[employee.Employee](ctx, r.store, recordstore.Employees, q.OrderBy("name", false))
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepository) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	return update(ctx, r.store, recordstore.Employees, e.ID, e, employee.ErrEmployeeNotFound)
}
