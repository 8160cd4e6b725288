package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nalaaircon/nala-backend/internal/config"
	"github.com/nalaaircon/nala-backend/internal/domain/attendance"
	"github.com/nalaaircon/nala-backend/internal/domain/dashboard"
	"github.com/nalaaircon/nala-backend/internal/domain/employee"
	"github.com/nalaaircon/nala-backend/internal/domain/expense"
	"github.com/nalaaircon/nala-backend/internal/domain/finance"
	"github.com/nalaaircon/nala-backend/internal/domain/inventory"
	"github.com/nalaaircon/nala-backend/internal/domain/kpi"
	"github.com/nalaaircon/nala-backend/internal/domain/records"
	"github.com/nalaaircon/nala-backend/internal/domain/user"
	"github.com/nalaaircon/nala-backend/internal/pkg/recordstore"
	"github.com/nalaaircon/nala-backend/internal/repository/record"
	financeservice "github.com/nalaaircon/nala-backend/internal/service/finance"
	inventoryservice "github.com/nalaaircon/nala-backend/internal/service/inventory"
	kpiservice "github.com/nalaaircon/nala-backend/internal/service/kpi"
	payrollservice "github.com/nalaaircon/nala-backend/internal/service/payroll"
	recordsservice "github.com/nalaaircon/nala-backend/internal/service/records"
)

type fixture struct {
	store   *recordstore.MemoryStore
	svc     dashboard.DashboardService
	records records.RecordService
	items   inventory.InventoryService
	income  finance.IncomeService
}

func newFixture() fixture {
	rules := config.DefaultRules()
	store := recordstore.NewMemoryStore()
	calc := payrollservice.NewCalculator(rules)
	now := func() time.Time { return time.Date(2025, 1, 15, 10, 0, 0, 0, rules.Location()) }

	employeeRepo := record.NewEmployeeRepository(store)
	movementRepo := record.NewMovementRepository(store)
	inv := inventoryservice.NewInventoryService(store, record.NewItemRepository(store), movementRepo)
	income := financeservice.NewIncomeService(record.NewIncomeRepository(store), record.NewExpenseRepository(store), rules)
	kpiSvc := kpiservice.NewKPIService(store, record.NewKPIRepository(store), employeeRepo, movementRepo, inv, calc)
	recs := recordsservice.NewRecordService(record.NewDocumentRepository(store))

	return fixture{
		store:   store,
		svc:     NewDashboardService(income, inv, kpiSvc, recs, employeeRepo, record.NewAttendanceRepository(store), calc, now),
		records: recs,
		items:   inv,
		income:  income,
	}
}

func (f fixture) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	employees := record.NewEmployeeRepository(f.store)
	attendanceRepo := record.NewAttendanceRepository(f.store)

	andi, err := employees.Create(ctx, employee.Employee{Name: "Andi", Phone: "081200000001", Role: user.RoleTeknisi, Level: "teknisi", Branch: "makassar", IsActive: true})
	require.NoError(t, err)
	_, err = employees.Create(ctx, employee.Employee{Name: "Budi", Phone: "081200000002", Role: user.RoleTeknisi, Level: "helper", Branch: "makassar", IsActive: true})
	require.NoError(t, err)
	_, err = employees.Create(ctx, employee.Employee{Name: "Cici", Phone: "081200000003", Role: user.RoleTeknisi, Level: "helper", Branch: "palu", IsActive: false})
	require.NoError(t, err)

	in := time.Date(2025, 1, 15, 8, 50, 0, 0, time.FixedZone("WITA", 8*3600))
	out := in.Add(9 * time.Hour)
	_, err = attendanceRepo.Upsert(ctx, attendance.Attendance{EmployeeID: andi.ID, Date: "2025-01-15", CheckIn: &in, CheckOut: &out, LateMinutes: 5})
	require.NoError(t, err)

	_, err = f.items.CreateItem(ctx, inventory.CreateItemRequest{Name: "Pipa AC", Category: "material", Quantity: decimal.NewFromInt(5), Unit: "meter", MinStock: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(1000)})
	require.NoError(t, err)
	_, err = f.items.CreateItem(ctx, inventory.CreateItemRequest{Name: "AC Daikin 1PK Split", Category: "ac_unit", Quantity: decimal.NewFromInt(3), Unit: "unit", MinStock: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(4000000)})
	require.NoError(t, err)

	_, err = f.income.Create(ctx, finance.CreateIncomeRequest{Source: "Servis", Amount: decimal.NewFromInt(1000000), Date: "2025-01-03"})
	require.NoError(t, err)
	_, err = record.NewExpenseRepository(f.store).Create(ctx, expense.Expense{Category: expense.CategoryToko, Amount: decimal.NewFromInt(250000), Date: "2025-01-04"})
	require.NoError(t, err)

	for _, name := range []string{"PT Maju", "Hotel Aston"} {
		_, err = f.records.Create(ctx, "customers", records.Document{"name": name})
		require.NoError(t, err)
	}
	_, err = f.records.Create(ctx, "bookings", records.Document{"customer_name": "Ibu Rina", "service_date": "2025-01-16"})
	require.NoError(t, err)

	rec := kpi.Record{EmployeeID: andi.ID, Period: "2025-01"}
	rec.SetCounts(map[string]int{"cuci_ac": 7})
	_, err = record.NewKPIRepository(f.store).Upsert(ctx, rec)
	require.NoError(t, err)
}

func TestDashboardService_Overview(t *testing.T) {
	f := newFixture()
	f.seed(t)

	o, err := f.svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2025-01", o.Financing.Period)
	assert.Equal(t, "1000000", o.Financing.Income.String())
	assert.Equal(t, "250000", o.Financing.Expenses.String())
	assert.Equal(t, "750000", o.Financing.Net.String())

	assert.Equal(t, 2, o.Inventory.TotalItems)
	assert.Equal(t, 1, o.Inventory.MaterialItems)
	assert.Equal(t, 1, o.Inventory.ACUnitItems)
	assert.Equal(t, 1, o.Inventory.LowStock)
	assert.Equal(t, "12005000", o.Inventory.StockValue.String())

	assert.Equal(t, dashboard.AbsensiSummary{
		Date: "2025-01-15", ActiveEmployees: 2, CheckedIn: 1, CheckedOut: 1, Late: 1, Absent: 1,
	}, o.Absensi)

	assert.Equal(t, dashboard.DatabaseSummary{Employees: 2, Customers: 2, Projects: 0, Bookings: 1}, o.Database)

	assert.Equal(t, 2, o.KPI.Employees)
	assert.Equal(t, 7, o.KPI.JobsCompleted)
	// 25% and 0%
	assert.Equal(t, "12.5", o.KPI.AveragePercentage.String())
}

func TestDashboardService_Summary(t *testing.T) {
	f := newFixture()
	f.seed(t)
	ctx := context.Background()

	for _, m := range dashboard.Modules() {
		got, err := f.svc.Summary(ctx, m.ID)
		require.NoError(t, err, m.ID)
		assert.NotNil(t, got)
	}

	got, err := f.svc.Summary(ctx, dashboard.ModuleDatabase)
	require.NoError(t, err)
	assert.Equal(t, 2, got.(dashboard.DatabaseSummary).Customers)

	_, err = f.svc.Summary(ctx, dashboard.Module("gaji"))
	assert.ErrorIs(t, err, dashboard.ErrUnknownModule)
}

func TestDashboardService_EmptyStore(t *testing.T) {
	f := newFixture()

	o, err := f.svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Zero(t, o.Absensi.Absent)
	assert.True(t, o.KPI.AveragePercentage.IsZero())
	assert.True(t, o.Inventory.StockValue.IsZero())
}
