package payroll

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/nalaaircon/nala-backend/internal/config"
	"github.com/nalaaircon/nala-backend/internal/domain/attendance"
	"github.com/nalaaircon/nala-backend/internal/domain/employee"
	"github.com/nalaaircon/nala-backend/internal/domain/kasbon"
	"github.com/nalaaircon/nala-backend/internal/domain/kpi"
	"github.com/nalaaircon/nala-backend/internal/domain/payroll"
	"github.com/nalaaircon/nala-backend/internal/domain/user"
	"github.com/nalaaircon/nala-backend/internal/pkg/recordstore"
	"github.com/nalaaircon/nala-backend/internal/pkg/recordstore/recordstoretest"
	"github.com/nalaaircon/nala-backend/internal/repository/record"
)

var payday = time.Date(2025, 2, 1, 9, 0, 0, 0, wita)

func newTestService(store recordstore.Store) payroll.PayrollService {
	return NewPayrollService(store,
		record.NewSalarySlipRepository(store),
		record.NewEmployeeRepository(store),
		record.NewAttendanceRepository(store),
		record.NewKPIRepository(store),
		record.NewKasbonRepository(store),
		NewCalculator(config.DefaultRules()),
		func() time.Time { return payday },
	)
}

// seedMonth gives the employee 20 attended days in January 2025 with 750
// overtime minutes in total, no lateness and one active kasbon of 500000.
func seedMonth(t *testing.T, store recordstore.Store, name, phone, level string) (employee.Employee, kasbon.Kasbon) {
	t.Helper()
	ctx := context.Background()

	emp, err := record.NewEmployeeRepository(store).Create(ctx, employee.Employee{
		Name: name, Phone: phone, Role: user.RoleTeknisi,
		Level: level, Branch: "makassar", IsActive: true,
	})
	require.NoError(t, err)

	attendanceRepo := record.NewAttendanceRepository(store)
	for day := 1; day <= 20; day++ {
		checkIn := time.Date(2025, 1, day, 8, 30, 0, 0, wita)
		overtime := 36
		if day == 1 {
			overtime = 66
		}
		_, err := attendanceRepo.Upsert(ctx, attendance.Attendance{
			EmployeeID: emp.ID, Date: fmt.Sprintf("2025-01-%02d", day), CheckIn: &checkIn, OvertimeMinutes: overtime,
		})
		require.NoError(t, err)
	}
	_, err = attendanceRepo.Upsert(ctx, attendance.Attendance{EmployeeID: emp.ID, Date: "2025-01-21"})
	require.NoError(t, err)

	k, err := record.NewKasbonRepository(store).Create(ctx, kasbon.Kasbon{
		EmployeeID: emp.ID, Amount: decimal.NewFromInt(500000), Status: kasbon.StatusActive,
	})
	require.NoError(t, err)
	return emp, k
}

func TestPayrollService_Preview(t *testing.T) {
	svc := newTestService(recordstore.NewMemoryStore())

	b, err := svc.Preview(context.Background(), payroll.PreviewRequest{
		Level: "teknisi", WorkDays: 20, OvertimeHours: decimal.NewFromInt(12),
		MealAllowance: decimal.NewFromInt(500000), Kasbon: decimal.NewFromInt(500000), Period: "2025-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "240000", b.NetSalary.String())

	_, err = svc.Preview(context.Background(), payroll.PreviewRequest{Level: "mandor", Period: "2025-01"})
	assert.ErrorIs(t, err, payroll.ErrUnknownLevel)

	_, err = svc.Preview(context.Background(), payroll.PreviewRequest{Level: "teknisi", Period: "Jan"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "period")
}

func TestPayrollService_GenerateSlipSettlesKasbon(t *testing.T) {
	ctx := context.Background()
	store := recordstore.NewMemoryStore()
	svc := newTestService(store)
	emp, k := seedMonth(t, store, "Andi", "081200000001", "teknisi")

	slip, err := svc.GenerateSlip(ctx, payroll.GenerateSlipRequest{
		EmployeeID: emp.ID, Period: "2025-01", MealAllowance: decimal.NewFromInt(500000), GeneratedBy: "admin-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, slip.ID)
	assert.Equal(t, 20, slip.WorkDays)
	assert.Equal(t, "12", slip.OvertimeHours.String())
	assert.Equal(t, "Andi", slip.EmployeeName)
	assert.Equal(t, "admin-1", slip.GeneratedBy)
	assert.Equal(t, []string{k.ID}, slip.KasbonIDs)
	assert.Equal(t, "3740000", slip.Breakdown.Income.Total.String())
	assert.Equal(t, "3500000", slip.Breakdown.Deductions.Total.String())
	assert.Equal(t, "240000", slip.Breakdown.NetSalary.String())

	settled, err := record.NewKasbonRepository(store).GetByID(ctx, k.ID)
	require.NoError(t, err)
	assert.Equal(t, kasbon.StatusPaid, settled.Status)
	assert.Equal(t, slip.ID, settled.SalarySlipID)
	require.NotNil(t, settled.PaidAt)
	assert.True(t, payday.Equal(*settled.PaidAt))

	got, err := svc.GetSlip(ctx, slip.ID)
	require.NoError(t, err)
	assert.Equal(t, "240000", got.Breakdown.NetSalary.String())

	_, err = svc.GenerateSlip(ctx, payroll.GenerateSlipRequest{EmployeeID: emp.ID, Period: "2025-01"})
	assert.ErrorIs(t, err, payroll.ErrSalarySlipAlreadyExists)
}

func TestPayrollService_GenerateSlipUsesKPI(t *testing.T) {
	ctx := context.Background()
	store := recordstore.NewMemoryStore()
	svc := newTestService(store)
	emp, _ := seedMonth(t, store, "Budi", "081200000002", "teknisi")

	rec := kpi.Record{EmployeeID: emp.ID, Period: "2025-01"}
	rec.SetCounts(map[string]int{"cuci_ac": 7, "pasang_ac": 3, "bongkar_pasang": 2, "service_berat": 2})
	_, err := record.NewKPIRepository(store).Upsert(ctx, rec)
	require.NoError(t, err)

	slip, err := svc.GenerateSlip(ctx, payroll.GenerateSlipRequest{EmployeeID: emp.ID, Period: "2025-01"})
	require.NoError(t, err)
	assert.Equal(t, "100", slip.Breakdown.KPI.AveragePercentage.String())
	assert.True(t, slip.Breakdown.Deductions.KPI.IsZero())
	// 3,000,000 + 240,000 - 500,000 kasbon
	assert.Equal(t, "2740000", slip.Breakdown.NetSalary.String())
}

func TestPayrollService_GenerateSlipRollsBack(t *testing.T) {
	ctx := context.Background()
	store := recordstoretest.NewFlakyStore()
	svc := newTestService(store)
	emp, k := seedMonth(t, store, "Andi", "081200000001", "teknisi")

	store.FailOn(recordstoretest.OpUpdate, recordstore.Kasbon, 1)
	_, err := svc.GenerateSlip(ctx, payroll.GenerateSlipRequest{EmployeeID: emp.ID, Period: "2025-01"})
	assert.ErrorIs(t, err, recordstoretest.ErrInjected)

	slips, err := svc.ListSlips(ctx, payroll.SlipFilter{Period: "2025-01"})
	require.NoError(t, err)
	assert.Empty(t, slips)

	still, err := record.NewKasbonRepository(store).GetByID(ctx, k.ID)
	require.NoError(t, err)
	assert.Equal(t, kasbon.StatusActive, still.Status)
}

func TestPayrollService_GenerateSlipErrors(t *testing.T) {
	ctx := context.Background()
	store := recordstore.NewMemoryStore()
	svc := newTestService(store)
	emp, _ := seedMonth(t, store, "Cici", "081200000003", "mandor")

	_, err := svc.GenerateSlip(ctx, payroll.GenerateSlipRequest{EmployeeID: emp.ID, Period: "2025-01"})
	assert.ErrorIs(t, err, payroll.ErrUnknownLevel)

	_, err = svc.GenerateSlip(ctx, payroll.GenerateSlipRequest{EmployeeID: "missing", Period: "2025-01"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = svc.GenerateSlip(ctx, payroll.GenerateSlipRequest{EmployeeID: emp.ID, Period: "2025-13"})
	assert.Error(t, err)

	_, err = svc.GetSlip(ctx, "missing")
	assert.ErrorIs(t, err, payroll.ErrSalarySlipNotFound)
}

func TestPayrollService_ListAndExport(t *testing.T) {
	ctx := context.Background()
	store := recordstore.NewMemoryStore()
	svc := newTestService(store)
	andi, _ := seedMonth(t, store, "Andi", "081200000001", "teknisi")
	budi, _ := seedMonth(t, store, "Budi Santoso", "081200000002", "helper")

	for _, id := range []string{andi.ID, budi.ID} {
		_, err := svc.GenerateSlip(ctx, payroll.GenerateSlipRequest{EmployeeID: id, Period: "2025-01"})
		require.NoError(t, err)
	}

	// the clock is in February, which has no slips yet
	current, err := svc.ListSlips(ctx, payroll.SlipFilter{})
	require.NoError(t, err)
	assert.Empty(t, current)

	january, err := svc.ListSlips(ctx, payroll.SlipFilter{Period: "2025-01"})
	require.NoError(t, err)
	require.Len(t, january, 2)
	assert.Equal(t, "Andi", january[0].EmployeeName)

	mine, err := svc.ListSlips(ctx, payroll.SlipFilter{EmployeeID: budi.ID, Period: "2025-01"})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "helper", mine[0].Level)

	_, err = svc.ListSlips(ctx, payroll.SlipFilter{Period: "januari"})
	assert.Error(t, err)

	data, err := svc.ExportSlips(ctx, "2025-01")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(slipSheet)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "Periode Januari 2025", rows[0][0])
	assert.Equal(t, "Nama", rows[2][0])
	assert.Equal(t, "Andi", rows[3][0])
	assert.Equal(t, "Budi Santoso", rows[4][0])
	assert.Equal(t, "240000", rows[3][len(rows[3])-1])

	_, err = svc.ExportSlips(ctx, "")
	assert.Error(t, err)
}
