package payroll

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
	"github.com/nalaaircon/nala-backend/internal/domain/payroll"
	"github.com/nalaaircon/nala-backend/internal/pkg/recordstore"
	"github.com/nalaaircon/nala-backend/internal/pkg/validator"
)

type PayrollServiceImpl struct {
	tx             recordstore.Transactor
	slipRepo       payroll.SalarySlipRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	kpiRepo        kpi.KPIRepository
	kasbonRepo     kasbon.KasbonRepository
	calc           *Calculator
	now            func() time.Time
}

func NewPayrollService(
	tx recordstore.Transactor,
	slipRepo payroll.SalarySlipRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	kpiRepo kpi.KPIRepository,
	kasbonRepo kasbon.KasbonRepository,
	calc *Calculator,
	now func() time.Time,
) payroll.PayrollService {
	if now == nil {
		now = time.Now
	}
	return &PayrollServiceImpl{
		tx:             tx,
		slipRepo:       slipRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		kpiRepo:        kpiRepo,
		kasbonRepo:     kasbonRepo,
		calc:           calc,
		now:            now,
	}
}

// Preview implements payroll.PayrollService.
func (s *PayrollServiceImpl) Preview(ctx context.Context, req payroll.PreviewRequest) (payroll.Breakdown, error) {
	if err := req.Validate(); err != nil {
		return payroll.Breakdown{}, err
	}
	if _, ok := s.calc.Rules().Level(req.Level); !ok {
		return payroll.Breakdown{}, fmt.Errorf("%w: %s", payroll.ErrUnknownLevel, req.Level)
	}

	return s.calc.SalarySlip(payroll.SlipInput{
		Level:         req.Level,
		WorkDays:      req.WorkDays,
		OvertimeHours: req.OvertimeHours,
		LateMinutes:   req.LateMinutes,
		MealAllowance: req.MealAllowance,
		Kasbon:        req.Kasbon,
		Achievements:  req.Achievements,
		Period:        req.Period,
	}), nil
}

// GenerateSlip implements payroll.PayrollService.
// Work days, lateness and overtime come from attendance; overtime is paid in
// whole hours. Every active kasbon is deducted and marked paid.
func (s *PayrollServiceImpl) GenerateSlip(ctx context.Context, req payroll.GenerateSlipRequest) (payroll.SalarySlip, error) {
	if err := req.Validate(); err != nil {
		return payroll.SalarySlip{}, err
	}
	from, to, err := validator.PeriodRange(req.Period)
	if err != nil {
		return payroll.SalarySlip{}, fmt.Errorf("%w: %s", payroll.ErrInvalidPeriod, req.Period)
	}

	var slip payroll.SalarySlip
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to get employee: %w", err)
		}
		if _, ok := s.calc.Rules().Level(emp.Level); !ok {
			return fmt.Errorf("%w: %q", payroll.ErrUnknownLevel, emp.Level)
		}

		existing, err := s.slipRepo.GetByEmployeePeriod(ctx, emp.ID, req.Period)
		if err != nil {
			return fmt.Errorf("failed to check existing slip: %w", err)
		}
		if existing != nil {
			return payroll.ErrSalarySlipAlreadyExists
		}

		records, err := s.attendanceRepo.ListByEmployee(ctx, emp.ID, from, to)
		if err != nil {
			return fmt.Errorf("failed to list attendance: %w", err)
		}
		workDays, lateMinutes, overtimeMinutes := 0, 0, 0
		for _, a := range records {
			if a.CheckIn == nil {
				continue
			}
			workDays++
			lateMinutes += a.LateMinutes
			overtimeMinutes += a.OvertimeMinutes
		}
		overtimeHours := decimal.NewFromInt(int64(overtimeMinutes / 60))

		achievements := map[string]int{}
		rec, err := s.kpiRepo.GetByEmployeePeriod(ctx, emp.ID, req.Period)
		if err != nil {
			return fmt.Errorf("failed to get kpi record: %w", err)
		}
		if rec != nil {
			achievements = rec.Counts()
		}

		active, err := s.kasbonRepo.List(ctx, kasbon.KasbonFilter{EmployeeID: emp.ID, Status: string(kasbon.StatusActive)})
		if err != nil {
			return fmt.Errorf("failed to list kasbon: %w", err)
		}
		kasbonTotal := decimal.Zero
		kasbonIDs := make([]string, 0, len(active))
		for _, k := range active {
			kasbonTotal = kasbonTotal.Add(k.Amount)
			kasbonIDs = append(kasbonIDs, k.ID)
		}

		breakdown := s.calc.SalarySlip(payroll.SlipInput{
			Level:         emp.Level,
			WorkDays:      workDays,
			OvertimeHours: overtimeHours,
			LateMinutes:   lateMinutes,
			MealAllowance: req.MealAllowance,
			Kasbon:        kasbonTotal,
			Achievements:  achievements,
			Period:        req.Period,
		})

		slip, err = s.slipRepo.Create(ctx, payroll.SalarySlip{
			EmployeeID:    emp.ID,
			EmployeeName:  emp.Name,
			Level:         emp.Level,
			Branch:        emp.Branch,
			Period:        req.Period,
			WorkDays:      workDays,
			OvertimeHours: overtimeHours,
			LateMinutes:   lateMinutes,
			Breakdown:     breakdown,
			KasbonIDs:     kasbonIDs,
			GeneratedBy:   req.GeneratedBy,
		})
		if err != nil {
			return fmt.Errorf("failed to create salary slip: %w", err)
		}

		paidAt := s.now()
		for _, k := range active {
			k.Status = kasbon.StatusPaid
			k.PaidAt = &paidAt
			k.SalarySlipID = slip.ID
			if _, err := s.kasbonRepo.Update(ctx, k); err != nil {
				return fmt.Errorf("failed to settle kasbon %s: %w", k.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return payroll.SalarySlip{}, err
	}

	slog.Info("salary slip generated",
		"slip_id", slip.ID, "employee_id", slip.EmployeeID, "period", slip.Period,
		"net_salary", slip.Breakdown.NetSalary.String(), "kasbon_settled", len(slip.KasbonIDs))
	return slip, nil
}

// GetSlip implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetSlip(ctx context.Context, id string) (payroll.SalarySlip, error) {
	slip, err := s.slipRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.SalarySlip{}, fmt.Errorf("failed to get salary slip: %w", err)
	}
	return slip, nil
}

// ListSlips implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListSlips(ctx context.Context, filter payroll.SlipFilter) ([]payroll.SalarySlip, error) {
	if filter.Period != "" && !validator.IsValidPeriod(filter.Period) {
		return nil, validator.ValidationErrors{{Field: "period", Message: "must be in YYYY-MM format"}}
	}

	var (
		slips []payroll.SalarySlip
		err   error
	)
	switch {
	case filter.EmployeeID != "":
		slips, err = s.slipRepo.ListByEmployee(ctx, filter.EmployeeID)
	case filter.Period != "":
		slips, err = s.slipRepo.ListByPeriod(ctx, filter.Period)
	default:
		slips, err = s.slipRepo.ListByPeriod(ctx, s.calc.Period(s.now()))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list salary slips: %w", err)
	}

	if filter.EmployeeID != "" && filter.Period != "" {
		matched := slips[:0]
		for _, slip := range slips {
			if slip.Period == filter.Period {
				matched = append(matched, slip)
			}
		}
		slips = matched
	}
	return slips, nil
}

// ExportSlips implements payroll.PayrollService.
func (s *PayrollServiceImpl) ExportSlips(ctx context.Context, period string) ([]byte, error) {
	if !validator.IsValidPeriod(period) {
		return nil, validator.ValidationErrors{{Field: "period", Message: "must be in YYYY-MM format"}}
	}
	slips, err := s.slipRepo.ListByPeriod(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary slips: %w", err)
	}
	return SlipsWorkbook(period, slips)
}
