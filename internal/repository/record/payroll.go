package record

import (
	"context"

	"github.com/nalaaircon/nala-backend/internal/domain/payroll"
	"github.com/nalaaircon/nala-backend/internal/pkg/recordstore"
)

type salarySlipRepository struct {
	store recordstore.Store
}

func NewSalarySlipRepository(store recordstore.Store) payroll.SalarySlipRepository {
	return &salarySlipRepository{store: store}
}

// Create implements payroll.SalarySlipRepository.
func (r *salarySlipRepository) Create(ctx context.Context, slip payroll.SalarySlip) (payroll.SalarySlip, error) {
	return create(ctx, r.store, recordstore.SalarySlips, slip)
}

// GetByID implements payroll.SalarySlipRepository.
func (r *salarySlipRepository) GetByID(ctx context.Context, id string) (payroll.SalarySlip, error) {
	return getByID[payroll.SalarySlip](ctx, r.store, recordstore.SalarySlips, id, payroll.ErrSalarySlipNotFound)
}

// GetByEmployeePeriod implements payroll.SalarySlipRepository.
func (r *salarySlipRepository) GetByEmployeePeriod(ctx context.Context, employeeID, period string) (*payroll.SalarySlip, error) {
	q := recordstore.Query().Eq("employee_id", employeeID).Eq("period", period)
	return first[payroll.SalarySlip](ctx, r.store, recordstore.SalarySlips, q)
}

// ListByPeriod implements payroll.SalarySlipRepository.
func (r *salarySlipRepository) ListByPeriod(ctx context.Context, period string) ([]payroll.SalarySlip, error) {
	q := recordstore.Query().Eq("period", period).OrderBy("employee_name", false)
	return list[payroll.SalarySlip](ctx, r.store, recordstore.SalarySlips, q)
}

// ListByEmployee implements payroll.SalarySlipRepository.
func (r *salarySlipRepository) ListByEmployee(ctx context.Context, employeeID string) ([]payroll.SalarySlip, error) {
	q := recordstore.Query().Eq("employee_id", employeeID).OrderBy("period", true)
	return list[payroll.SalarySlip](ctx, r.store, recordstore.SalarySlips, q)
}
