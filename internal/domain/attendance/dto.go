package attendance

import (
	"time"

	"github.com/nalaaircon/nala-backend/internal/pkg/geo"
	"github.com/nalaaircon/nala-backend/internal/pkg/validator"
)

type ClockInRequest struct {
	EmployeeID string      `json:"-"`
	Locator    geo.Locator `json:"-"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID == "" {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if r.Locator == nil {
		errs = append(errs, validator.ValidationError{Field: "location", Message: "is required"})
	}

	return errs.OrNil()
}

type ClockOutRequest struct {
	EmployeeID string `json:"-"`
	// Locator is optional; the position is recorded when available.
	Locator geo.Locator `json:"-"`
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID == "" {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}

	return errs.OrNil()
}

type AttendanceResponse struct {
	ID              string     `json:"id,omitempty"`
	EmployeeID      string     `json:"employee_id"`
	Branch          string     `json:"branch,omitempty"`
	Date            string     `json:"date"`
	State           State      `json:"state"`
	CheckIn         *time.Time `json:"check_in,omitempty"`
	CheckOut        *time.Time `json:"check_out,omitempty"`
	LateMinutes     int        `json:"late_minutes"`
	OvertimeMinutes int        `json:"overtime_minutes"`
	OfficeName      string     `json:"office_name,omitempty"`
	DistanceMeters  float64    `json:"distance_meters,omitempty"`
}

func ToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:              a.ID,
		EmployeeID:      a.EmployeeID,
		Branch:          a.Branch,
		Date:            a.Date,
		State:           a.State(),
		CheckIn:         a.CheckIn,
		CheckOut:        a.CheckOut,
		LateMinutes:     a.LateMinutes,
		OvertimeMinutes: a.OvertimeMinutes,
		OfficeName:      a.OfficeName,
		DistanceMeters:  a.DistanceMeters,
	}
}

type MyAttendanceFilter struct {
	EmployeeID string
	From       string `validate:"omitempty,date"`
	To         string `validate:"omitempty,date"`
}

func (f *MyAttendanceFilter) Validate() error {
	errs := validator.Struct(f)
	if f.From != "" && f.To != "" && f.From > f.To {
		errs = append(errs, validator.ValidationError{Field: "from", Message: "must not be after to"})
	}
	return errs.OrNil()
}

type AttendanceFilter struct {
	Date   string `validate:"required,date"`
	Branch string
}

func (f *AttendanceFilter) Validate() error {
	return validator.Struct(f).OrNil()
}

// PeriodSummary aggregates the attendance of an employee over a payroll
// period.
type PeriodSummary struct {
	EmployeeID      string `json:"employee_id"`
	Period          string `json:"period"`
	WorkDays        int    `json:"work_days"`
	LateMinutes     int    `json:"late_minutes"`
	OvertimeMinutes int    `json:"overtime_minutes"`
}
