package payroll

import "context"

type SalarySlipRepository interface {
	Create(ctx context.Context, slip SalarySlip) (SalarySlip, error)
	GetByID(ctx context.Context, id string) (SalarySlip, error)
	// GetByEmployeePeriod returns nil when the employee has no slip for period.
	GetByEmployeePeriod(ctx context.Context, employeeID, period string) (*SalarySlip, error)
	ListByPeriod(ctx context.Context, period string) ([]SalarySlip, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]SalarySlip, error)
}
