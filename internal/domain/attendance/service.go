package attendance

import (
	"context"
)

// AttendanceService drives the per-day attendance state machine
type AttendanceService interface {
	// ClockIn resolves the device position, checks the geofence and records the check-in
	ClockIn(ctx context.Context, req ClockInRequest) (AttendanceResponse, error)

	// ClockOut records the check-out and overtime of a checked-in employee
	ClockOut(ctx context.Context, req ClockOutRequest) (AttendanceResponse, error)

	// Today returns the current state of the employee, with an empty record when not checked in
	Today(ctx context.Context, employeeID string) (AttendanceResponse, error)

	GetMyAttendance(ctx context.Context, filter MyAttendanceFilter) ([]AttendanceResponse, error)

	// ListAttendance lists every record of a date (admin/manager)
	ListAttendance(ctx context.Context, filter AttendanceFilter) ([]AttendanceResponse, error)

	// Summarize aggregates work days, late and overtime minutes of a payroll period
	Summarize(ctx context.Context, employeeID, period string) (PeriodSummary, error)
}
