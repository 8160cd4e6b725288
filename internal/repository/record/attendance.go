package record

import (
	"context"

	"github.com/nalaaircon/nala-backend/internal/domain/attendance"
	"github.com/nalaaircon/nala-backend/internal/pkg/recordstore"
)

type attendanceRepository struct {
	store recordstore.Store
}

func NewAttendanceRepository(store recordstore.Store) attendance.AttendanceRepository {
	return &attendanceRepository{store: store}
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (*attendance.Attendance, error) {
	q := recordstore.Query().Eq("employee_id", employeeID).Eq("date", date)
	return first[attendance.Attendance](ctx, r.store, recordstore.Attendance, q)
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	return getByID[attendance.Attendance](ctx, r.store, recordstore.Attendance, id, attendance.ErrAttendanceNotFound)
}

// Upsert implements attendance.AttendanceRepository.
func (r *attendanceRepository) Upsert(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	var out attendance.Attendance
	err := r.store.WithTx(ctx, func(ctx context.Context) error {
		existing, err := r.GetByEmployeeAndDate(ctx, a.EmployeeID, a.Date)
		if err != nil {
			return err
		}
		if existing == nil {
			out, err = create(ctx, r.store, recordstore.Attendance, a)
			return err
		}
		a.ID = existing.ID
		a.CreatedAt = existing.CreatedAt
		out, err = update(ctx, r.store, recordstore.Attendance, existing.ID, a, attendance.ErrAttendanceNotFound)
		return err
	})
	return out, err
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	return update(ctx, r.store, recordstore.Attendance, a.ID, a, attendance.ErrAttendanceNotFound)
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByEmployee(ctx context.Context, employeeID, from, to string) ([]attendance.Attendance, error) {
	q := recordstore.Query().Eq("employee_id", employeeID).Between("date", from, to).OrderBy("date", true)
	return list[attendance.Attendance](ctx, r.store, recordstore.Attendance, q)
}

// ListByDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByDate(ctx context.Context, date, branch string) ([]attendance.Attendance, error) {
	q := recordstore.Query().Eq("date", date)
	if branch != "" {
		q.Eq("branch", branch)
	}
	return list[attendance.Attendance](ctx, r.store, recordstore.Attendance, q.OrderBy("check_in", false))
}
