package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nalaaircon/nala-backend/internal/config"
	"github.com/nalaaircon/nala-backend/internal/domain/attendance"
	"github.com/nalaaircon/nala-backend/internal/domain/employee"
	"github.com/nalaaircon/nala-backend/internal/domain/user"
	"github.com/nalaaircon/nala-backend/internal/pkg/geo"
	"github.com/nalaaircon/nala-backend/internal/pkg/recordstore"
	"github.com/nalaaircon/nala-backend/internal/repository/record"
	payrollservice "github.com/nalaaircon/nala-backend/internal/service/payroll"
)

var makassarOffice = geo.Position{Latitude: -5.135399, Longitude: 119.423790}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

type fixture struct {
	svc      attendance.AttendanceService
	clock    *clock
	employee employee.Employee
	wita     *time.Location
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := recordstore.NewMemoryStore()
	rules := config.DefaultRules()
	wita := rules.Location()
	c := &clock{t: time.Date(2025, 1, 6, 8, 40, 0, 0, wita)}

	employees := record.NewEmployeeRepository(store)
	emp, err := employees.Create(context.Background(), employee.Employee{
		Name: "Citra", Phone: "081200000003", Role: user.RoleTeknisi, Level: "helper", Branch: "makassar", IsActive: true,
	})
	require.NoError(t, err)

	svc := NewAttendanceService(store, record.NewAttendanceRepository(store), employees,
		payrollservice.NewCalculator(rules), c.now)
	return fixture{svc: svc, clock: c, employee: emp, wita: wita}
}

func (f fixture) at(day, hour, minute int) {
	f.clock.t = time.Date(2025, 1, day, hour, minute, 0, 0, f.wita)
}

func located(pos geo.Position) geo.Locator {
	return geo.LocatorFunc(func(context.Context) (geo.Position, error) { return pos, nil })
}

func TestAttendanceService_FullDay(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	today, err := f.svc.Today(ctx, f.employee.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StateNotCheckedIn, today.State)
	assert.Equal(t, "2025-01-06", today.Date)

	f.at(6, 8, 46)
	in, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{
		EmployeeID: f.employee.ID,
		Locator:    located(geo.OffsetNorth(makassarOffice, 40)),
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StateCheckedIn, in.State)
	assert.Equal(t, 1, in.LateMinutes)
	assert.Equal(t, "Kantor Makassar", in.OfficeName)
	assert.InDelta(t, 40, in.DistanceMeters, 0.01)
	assert.Equal(t, "makassar", in.Branch)

	f.at(6, 19, 0)
	out, err := f.svc.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: f.employee.ID})
	require.NoError(t, err)
	assert.Equal(t, attendance.StateCheckedOut, out.State)
	assert.Equal(t, 90, out.OvertimeMinutes)
	assert.Equal(t, 1, out.LateMinutes)
	assert.Equal(t, in.ID, out.ID)

	_, err = f.svc.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: f.employee.ID})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)

	_, err = f.svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: f.employee.ID, Locator: located(makassarOffice)})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestAttendanceService_ClockInOnTime(t *testing.T) {
	f := newFixture(t)
	f.at(6, 8, 45)

	in, err := f.svc.ClockIn(context.Background(), attendance.ClockInRequest{EmployeeID: f.employee.ID, Locator: located(makassarOffice)})
	require.NoError(t, err)
	assert.Zero(t, in.LateMinutes)
}

func TestAttendanceService_ClockInGeofence(t *testing.T) {
	cases := []struct {
		name   string
		meters float64
		err    error
	}{
		{"exactly at radius", 100, nil},
		{"one meter outside", 101, attendance.ErrOutsideAllowedRadius},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.svc.ClockIn(context.Background(), attendance.ClockInRequest{
				EmployeeID: f.employee.ID,
				Locator:    located(geo.OffsetNorth(makassarOffice, c.meters)),
			})
			if c.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, c.err)

			var radiusErr *attendance.OutsideRadiusError
			require.True(t, errors.As(err, &radiusErr))
			assert.Equal(t, "Kantor Makassar", radiusErr.OfficeName)
			assert.Equal(t, "101", radiusErr.Details()["distance_meters"])

			today, err := f.svc.Today(context.Background(), f.employee.ID)
			require.NoError(t, err)
			assert.Equal(t, attendance.StateNotCheckedIn, today.State)
		})
	}
}

func TestAttendanceService_ClockInLocationErrors(t *testing.T) {
	cases := []struct {
		name    string
		locator geo.Locator
		err     error
	}{
		{"permission denied", geo.Report{ErrorCode: geo.CodePermissionDenied}, geo.ErrPermissionDenied},
		{"unavailable", geo.Report{ErrorCode: geo.CodePositionUnavailable}, geo.ErrPositionUnavailable},
		{"device timeout", geo.Report{ErrorCode: geo.CodeTimeout}, geo.ErrTimeout},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.svc.ClockIn(context.Background(), attendance.ClockInRequest{EmployeeID: f.employee.ID, Locator: c.locator})
			assert.ErrorIs(t, err, c.err)
		})
	}
}

func TestAttendanceService_ClockInDiscardsLatePosition(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())

	late := geo.LocatorFunc(func(context.Context) (geo.Position, error) {
		cancel()
		return makassarOffice, nil
	})
	_, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: f.employee.ID, Locator: late})
	require.ErrorIs(t, err, context.Canceled)

	today, err := f.svc.Today(context.Background(), f.employee.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StateNotCheckedIn, today.State)
}

func TestAttendanceService_ClockOutRequiresCheckIn(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ClockOut(context.Background(), attendance.ClockOutRequest{EmployeeID: f.employee.ID})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestAttendanceService_ClockOutNotAfterCheckIn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: f.employee.ID, Locator: located(makassarOffice)})
	require.NoError(t, err)

	_, err = f.svc.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: f.employee.ID})
	assert.ErrorIs(t, err, attendance.ErrCheckOutBeforeCheckIn)
}

func TestAttendanceService_ClockInRejectsInactiveEmployee(t *testing.T) {
	ctx := context.Background()
	store := recordstore.NewMemoryStore()
	employees := record.NewEmployeeRepository(store)
	emp, err := employees.Create(ctx, employee.Employee{Name: "Dedi", Role: user.RoleTeknisi, Level: "helper"})
	require.NoError(t, err)

	svc := NewAttendanceService(store, record.NewAttendanceRepository(store), employees,
		payrollservice.NewCalculator(config.DefaultRules()), nil)
	_, err = svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: emp.ID, Locator: located(makassarOffice)})
	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
}

func TestAttendanceService_HistoryAndSummary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	days := []struct{ day, inHour, inMinute, outHour int }{
		{6, 8, 30, 17},  // on time, no overtime
		{7, 9, 0, 18},   // 15 late, 30 overtime
		{8, 10, 15, 19}, // 90 late, 90 overtime
	}
	for _, d := range days {
		f.at(d.day, d.inHour, d.inMinute)
		_, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: f.employee.ID, Locator: located(makassarOffice)})
		require.NoError(t, err)
		f.at(d.day, d.outHour, 0)
		_, err = f.svc.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: f.employee.ID})
		require.NoError(t, err)
	}

	summary, err := f.svc.Summarize(ctx, f.employee.ID, "2025-01")
	require.NoError(t, err)
	assert.Equal(t, 3, summary.WorkDays)
	assert.Equal(t, 15+90, summary.LateMinutes)
	assert.Equal(t, 30+90, summary.OvertimeMinutes)

	mine, err := f.svc.GetMyAttendance(ctx, attendance.MyAttendanceFilter{EmployeeID: f.employee.ID})
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, "2025-01-08", mine[0].Date)

	ranged, err := f.svc.GetMyAttendance(ctx, attendance.MyAttendanceFilter{EmployeeID: f.employee.ID, From: "2025-01-07"})
	require.NoError(t, err)
	assert.Len(t, ranged, 2)

	_, err = f.svc.GetMyAttendance(ctx, attendance.MyAttendanceFilter{EmployeeID: f.employee.ID, From: "2025-01-09", To: "2025-01-01"})
	assert.Error(t, err)

	byDate, err := f.svc.ListAttendance(ctx, attendance.AttendanceFilter{Date: "2025-01-07", Branch: "makassar"})
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, 15, byDate[0].LateMinutes)

	_, err = f.svc.Summarize(ctx, f.employee.ID, "Jan 2025")
	assert.Error(t, err)
}
