package kasbon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nalaaircon/nala-backend/internal/domain/attendance"
	"github.com/nalaaircon/nala-backend/internal/domain/employee"
	"github.com/nalaaircon/nala-backend/internal/domain/kasbon"
	"github.com/nalaaircon/nala-backend/internal/domain/kpi"
	"github.com/nalaaircon/nala-backend/internal/pkg/recordstore"
	"github.com/nalaaircon/nala-backend/internal/pkg/validator"
	payrollservice "github.com/nalaaircon/nala-backend/internal/service/payroll"
)

type KasbonServiceImpl struct {
	tx             recordstore.Transactor
	kasbonRepo     kasbon.KasbonRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	kpiRepo        kpi.KPIRepository
	calc           *payrollservice.Calculator
	now            func() time.Time
}

func NewKasbonService(
	tx recordstore.Transactor,
	kasbonRepo kasbon.KasbonRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	kpiRepo kpi.KPIRepository,
	calc *payrollservice.Calculator,
	now func() time.Time,
) kasbon.KasbonService {
	if now == nil {
		now = time.Now
	}
	return &KasbonServiceImpl{
		tx:             tx,
		kasbonRepo:     kasbonRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		kpiRepo:        kpiRepo,
		calc:           calc,
		now:            now,
	}
}

// Create implements kasbon.KasbonService.
func (s *KasbonServiceImpl) Create(ctx context.Context, req kasbon.CreateKasbonRequest) (kasbon.Kasbon, error) {
	if err := req.Validate(); err != nil {
		return kasbon.Kasbon{}, err
	}

	var created kasbon.Kasbon
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to get employee: %w", err)
		}
		if !emp.IsActive {
			return employee.ErrEmployeeInactive
		}

		limit, err := s.Limit(ctx, req.EmployeeID, req.Period)
		if err != nil {
			return err
		}
		if req.Amount.GreaterThan(limit.Available) {
			return fmt.Errorf("%w: requested %s, available %s", kasbon.ErrKasbonLimitExceeded,
				req.Amount.StringFixed(0), limit.Available.StringFixed(0))
		}

		created, err = s.kasbonRepo.Create(ctx, kasbon.Kasbon{
			EmployeeID: req.EmployeeID,
			Amount:     req.Amount,
			Notes:      req.Notes,
			Status:     kasbon.StatusActive,
			ExpenseID:  req.ExpenseID,
		})
		if err != nil {
			return fmt.Errorf("failed to create kasbon: %w", err)
		}
		return nil
	})
	if err != nil {
		return kasbon.Kasbon{}, err
	}

	slog.Info("kasbon created", "kasbon_id", created.ID, "employee_id", created.EmployeeID, "amount", created.Amount.String())
	return created, nil
}

// List implements kasbon.KasbonService.
func (s *KasbonServiceImpl) List(ctx context.Context, filter kasbon.KasbonFilter) ([]kasbon.Kasbon, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	items, err := s.kasbonRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list kasbon: %w", err)
	}
	return items, nil
}

// Limit implements kasbon.KasbonService.
// The base is the salary earned so far in the period: the daily rate times
// the days attended.
func (s *KasbonServiceImpl) Limit(ctx context.Context, employeeID, period string) (kasbon.Limit, error) {
	if period == "" {
		period = s.calc.Period(s.now())
	}
	from, to, err := validator.PeriodRange(period)
	if err != nil {
		return kasbon.Limit{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return kasbon.Limit{}, fmt.Errorf("failed to get employee: %w", err)
	}

	records, err := s.attendanceRepo.ListByEmployee(ctx, employeeID, from, to)
	if err != nil {
		return kasbon.Limit{}, fmt.Errorf("failed to list attendance: %w", err)
	}
	workDays := 0
	for _, a := range records {
		if a.CheckIn != nil {
			workDays++
		}
	}

	counts := map[string]int{}
	if rec, err := s.kpiRepo.GetByEmployeePeriod(ctx, employeeID, period); err != nil {
		return kasbon.Limit{}, fmt.Errorf("failed to get kpi record: %w", err)
	} else if rec != nil {
		counts = rec.Counts()
	}

	outstanding, _, err := s.Outstanding(ctx, employeeID)
	if err != nil {
		return kasbon.Limit{}, err
	}

	base := s.calc.BaseSalary(workDays, emp.Level)
	kpiPct := s.calc.AverageKPI(counts)
	limit := s.calc.KasbonLimit(kpiPct, base)

	return kasbon.Limit{
		EmployeeID:    employeeID,
		Period:        period,
		KPIPercentage: kpiPct,
		BaseSalary:    base,
		Limit:         limit,
		Outstanding:   outstanding,
		Available:     decimal.Max(decimal.Zero, limit.Sub(outstanding)),
	}, nil
}

// MarkPaid implements kasbon.KasbonService.
func (s *KasbonServiceImpl) MarkPaid(ctx context.Context, id string) (kasbon.Kasbon, error) {
	k, err := s.kasbonRepo.GetByID(ctx, id)
	if err != nil {
		return kasbon.Kasbon{}, fmt.Errorf("failed to get kasbon: %w", err)
	}
	if k.Status == kasbon.StatusPaid {
		return kasbon.Kasbon{}, kasbon.ErrKasbonAlreadyPaid
	}

	paidAt := s.now()
	k.Status = kasbon.StatusPaid
	k.PaidAt = &paidAt

	updated, err := s.kasbonRepo.Update(ctx, k)
	if err != nil {
		return kasbon.Kasbon{}, fmt.Errorf("failed to update kasbon: %w", err)
	}
	return updated, nil
}

// Outstanding implements kasbon.KasbonService.
func (s *KasbonServiceImpl) Outstanding(ctx context.Context, employeeID string) (decimal.Decimal, []kasbon.Kasbon, error) {
	active, err := s.kasbonRepo.List(ctx, kasbon.KasbonFilter{EmployeeID: employeeID, Status: string(kasbon.StatusActive)})
	if err != nil {
		return decimal.Zero, nil, fmt.Errorf("failed to list kasbon: %w", err)
	}
	total := decimal.Zero
	for _, k := range active {
		total = total.Add(k.Amount)
	}
	return total, active, nil
}
