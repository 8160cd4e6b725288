package attendance

import "context"

type AttendanceRepository interface {
	// GetByEmployeeAndDate returns nil when there is no record.
	GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (*Attendance, error)
	GetByID(ctx context.Context, id string) (Attendance, error)
	// Upsert writes the record of (employee, date), updating an existing one in place.
	Upsert(ctx context.Context, attendance Attendance) (Attendance, error)
	Update(ctx context.Context, attendance Attendance) (Attendance, error)
	// ListByEmployee returns records between from and to (inclusive), newest first.
	ListByEmployee(ctx context.Context, employeeID, from, to string) ([]Attendance, error)
	ListByDate(ctx context.Context, date, branch string) ([]Attendance, error)
}
