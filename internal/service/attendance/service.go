package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nalaaircon/nala-backend/internal/config"
	"github.com/nalaaircon/nala-backend/internal/domain/attendance"
	"github.com/nalaaircon/nala-backend/internal/domain/employee"
	"github.com/nalaaircon/nala-backend/internal/pkg/geo"
	"github.com/nalaaircon/nala-backend/internal/pkg/recordstore"
	"github.com/nalaaircon/nala-backend/internal/pkg/validator"
	payrollservice "github.com/nalaaircon/nala-backend/internal/service/payroll"
)

type AttendanceServiceImpl struct {
	tx             recordstore.Transactor
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	calc           *payrollservice.Calculator
	now            func() time.Time
}

func NewAttendanceService(
	tx recordstore.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	calc *payrollservice.Calculator,
	now func() time.Time,
) attendance.AttendanceService {
	if now == nil {
		now = time.Now
	}
	return &AttendanceServiceImpl{
		tx:             tx,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		calc:           calc,
		now:            now,
	}
}

func (a *AttendanceServiceImpl) rules() config.Rules {
	return a.calc.Rules()
}

func (a *AttendanceServiceImpl) sites() []geo.Site {
	offices := a.rules().Offices
	sites := make([]geo.Site, 0, len(offices))
	for _, o := range offices {
		sites = append(sites, geo.Site{
			Key:          o.Key,
			Name:         o.Name,
			Latitude:     o.Latitude,
			Longitude:    o.Longitude,
			RadiusMeters: o.RadiusMeters,
		})
	}
	return sites
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := a.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.IsActive {
		return attendance.AttendanceResponse{}, employee.ErrEmployeeInactive
	}

	// Reject before asking the device for a position.
	existing, err := a.attendanceRepo.GetByEmployeeAndDate(ctx, emp.ID, a.calc.Date(a.now()))
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if existing.State() != attendance.StateNotCheckedIn {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	pos, err := geo.Resolve(ctx, req.Locator, a.rules().GeolocationTimeout)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	check, ok := geo.Nearest(pos, a.sites())
	if !ok {
		return attendance.AttendanceResponse{}, attendance.ErrNoOfficeConfigured
	}
	if !check.Within {
		slog.Info("check-in outside radius",
			"employee_id", emp.ID, "office", check.Site.Key, "distance_meters", check.DistanceMeters)
		return attendance.AttendanceResponse{}, &attendance.OutsideRadiusError{
			OfficeName:     check.Site.Name,
			DistanceMeters: check.DistanceMeters,
			RadiusMeters:   check.Site.RadiusMeters,
		}
	}

	checkIn := a.now()
	date := a.calc.Date(checkIn)

	var saved attendance.Attendance
	err = a.tx.WithTx(ctx, func(ctx context.Context) error {
		current, err := a.attendanceRepo.GetByEmployeeAndDate(ctx, emp.ID, date)
		if err != nil {
			return fmt.Errorf("failed to get today's attendance: %w", err)
		}
		if current.State() != attendance.StateNotCheckedIn {
			return attendance.ErrAlreadyCheckedIn
		}

		saved, err = a.attendanceRepo.Upsert(ctx, attendance.Attendance{
			EmployeeID:     emp.ID,
			Branch:         emp.Branch,
			Date:           date,
			CheckIn:        &checkIn,
			LateMinutes:    a.calc.LateMinutes(checkIn),
			Latitude:       pos.Latitude,
			Longitude:      pos.Longitude,
			Accuracy:       pos.Accuracy,
			OfficeKey:      check.Site.Key,
			OfficeName:     check.Site.Name,
			DistanceMeters: check.DistanceMeters,
		})
		if err != nil {
			return fmt.Errorf("failed to save attendance: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("checked in",
		"employee_id", emp.ID, "date", date, "office", check.Site.Key, "late_minutes", saved.LateMinutes)
	return attendance.ToResponse(saved), nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var pos *geo.Position
	if req.Locator != nil {
		p, err := geo.Resolve(ctx, req.Locator, a.rules().GeolocationTimeout)
		if err != nil {
			slog.Warn("check-out position unavailable", "employee_id", req.EmployeeID, "error", err)
		} else {
			pos = &p
		}
	}

	checkOut := a.now()
	date := a.calc.Date(checkOut)

	var saved attendance.Attendance
	err := a.tx.WithTx(ctx, func(ctx context.Context) error {
		current, err := a.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
		if err != nil {
			return fmt.Errorf("failed to get today's attendance: %w", err)
		}
		switch current.State() {
		case attendance.StateNotCheckedIn:
			return attendance.ErrNotCheckedIn
		case attendance.StateCheckedOut:
			return attendance.ErrAlreadyCheckedOut
		}
		if !checkOut.After(*current.CheckIn) {
			return attendance.ErrCheckOutBeforeCheckIn
		}

		current.CheckOut = &checkOut
		current.OvertimeMinutes = a.calc.OvertimeMinutes(checkOut)
		if pos != nil {
			current.CheckOutLatitude = &pos.Latitude
			current.CheckOutLongitude = &pos.Longitude
		}

		saved, err = a.attendanceRepo.Upsert(ctx, *current)
		if err != nil {
			return fmt.Errorf("failed to save attendance: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("checked out", "employee_id", req.EmployeeID, "date", date, "overtime_minutes", saved.OvertimeMinutes)
	return attendance.ToResponse(saved), nil
}

// Today implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Today(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	date := a.calc.Date(a.now())
	rec, err := a.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if rec == nil {
		return attendance.AttendanceResponse{
			EmployeeID: employeeID,
			Date:       date,
			State:      attendance.StateNotCheckedIn,
		}, nil
	}
	return attendance.ToResponse(*rec), nil
}

// GetMyAttendance implements attendance.AttendanceService.
// Without a range it returns the current period.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.MyAttendanceFilter) ([]attendance.AttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	from, to := filter.From, filter.To
	if from == "" && to == "" {
		var err error
		from, to, err = validator.PeriodRange(a.calc.Period(a.now()))
		if err != nil {
			return nil, err
		}
	}
	if from == "" {
		from = "0001-01-01"
	}
	if to == "" {
		to = "9999-12-31"
	}

	records, err := a.attendanceRepo.ListByEmployee(ctx, filter.EmployeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return toResponses(records), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	records, err := a.attendanceRepo.ListByDate(ctx, filter.Date, filter.Branch)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return toResponses(records), nil
}

// Summarize implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Summarize(ctx context.Context, employeeID, period string) (attendance.PeriodSummary, error) {
	from, to, err := validator.PeriodRange(period)
	if err != nil {
		return attendance.PeriodSummary{}, validator.ValidationErrors{{Field: "period", Message: "must be in YYYY-MM format"}}
	}
	records, err := a.attendanceRepo.ListByEmployee(ctx, employeeID, from, to)
	if err != nil {
		return attendance.PeriodSummary{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	summary := attendance.PeriodSummary{EmployeeID: employeeID, Period: period}
	for _, rec := range records {
		if rec.CheckIn == nil {
			continue
		}
		summary.WorkDays++
		summary.LateMinutes += rec.LateMinutes
		summary.OvertimeMinutes += rec.OvertimeMinutes
	}
	return summary, nil
}

func toResponses(records []attendance.Attendance) []attendance.AttendanceResponse {
	out := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, attendance.ToResponse(rec))
	}
	return out
}
