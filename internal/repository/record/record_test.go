package record

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nalaaircon/nala-backend/internal/domain/attendance"
	"github.com/nalaaircon/nala-backend/internal/domain/employee"
	"github.com/nalaaircon/nala-backend/internal/domain/expense"
	"github.com/nalaaircon/nala-backend/internal/domain/kpi"
	"github.com/nalaaircon/nala-backend/internal/pkg/recordstore"
)

func TestEncode_DropsStoreOwnedFields(t *testing.T) {
	rec, err := encode(employee.Employee{Name: "Budi", IsActive: true})
	require.NoError(t, err)

	assert.NotContains(t, rec, recordstore.FieldID)
	assert.NotContains(t, rec, recordstore.FieldCreatedAt)
	assert.NotContains(t, rec, recordstore.FieldUpdatedAt)
	assert.Equal(t, "Budi", rec["name"])
	assert.Equal(t, true, rec["is_active"])
}

func TestExpenseRepository_RoundTripsDecimals(t *testing.T) {
	ctx := context.Background()
	repo := NewExpenseRepository(recordstore.NewMemoryStore())

	created, err := repo.Create(ctx, expense.Expense{
		Category: expense.CategoryMaterial,
		Amount:   decimal.RequireFromString("500000"),
		Date:     "2025-01-10",
		Quantity: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(500000)))
	assert.Equal(t, "10", got.Quantity.String())

	require.NoError(t, repo.MarkSynced(ctx, created.ID, expense.SyncedToInventory, "item-1"))
	got, err = repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.IsSynced(expense.SyncedToInventory))

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, expense.ErrExpenseNotFound)
}

func TestExpenseRepository_ListNewestFirstWithinRange(t *testing.T) {
	ctx := context.Background()
	repo := NewExpenseRepository(recordstore.NewMemoryStore())

	for _, date := range []string{"2025-01-03", "2025-02-01", "2025-01-20", "2024-12-31"} {
		_, err := repo.Create(ctx, expense.Expense{Category: expense.CategoryToko, Amount: decimal.NewFromInt(1), Date: date})
		require.NoError(t, err)
	}

	got, err := repo.List(ctx, expense.ExpenseFilter{From: "2025-01-01", To: "2025-01-31"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2025-01-20", got[0].Date)
	assert.Equal(t, "2025-01-03", got[1].Date)
}

func TestEmployeeRepository_ListSkipsInactive(t *testing.T) {
	ctx := context.Background()
	repo := NewEmployeeRepository(recordstore.NewMemoryStore())

	for _, e := range []employee.Employee{
		{Name: "Rudi", Branch: "makassar", IsActive: true},
		{Name: "Andi", Branch: "makassar", IsActive: true},
		{Name: "Sari", Branch: "palu", IsActive: true},
		{Name: "Bayu", Branch: "makassar", IsActive: false},
	} {
		_, err := repo.Create(ctx, e)
		require.NoError(t, err)
	}

	got, err := repo.List(ctx, employee.EmployeeFilter{Branch: "makassar"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Andi", got[0].Name)
	assert.Equal(t, "Rudi", got[1].Name)

	all, err := repo.List(ctx, employee.EmployeeFilter{IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	missing, err := repo.GetByPhone(ctx, "081234567890")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAttendanceRepository_UpsertKeepsOneRecordPerDay(t *testing.T) {
	ctx := context.Background()
	store := recordstore.NewMemoryStore()
	repo := NewAttendanceRepository(store)

	checkIn := time.Date(2025, 1, 6, 8, 40, 0, 0, time.UTC)
	first, err := repo.Upsert(ctx, attendance.Attendance{EmployeeID: "e1", Date: "2025-01-06", CheckIn: &checkIn})
	require.NoError(t, err)

	checkOut := checkIn.Add(9 * time.Hour)
	second, err := repo.Upsert(ctx, attendance.Attendance{EmployeeID: "e1", Date: "2025-01-06", CheckIn: &checkIn, CheckOut: &checkOut})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, attendance.StateCheckedOut, second.State())

	all, err := store.GetAll(ctx, recordstore.Attendance, nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestKPIRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	repo := NewKPIRepository(recordstore.NewMemoryStore())

	none, err := repo.GetByEmployeePeriod(ctx, "e1", "2025-01")
	require.NoError(t, err)
	assert.Nil(t, none)

	created, err := repo.Upsert(ctx, kpi.Record{EmployeeID: "e1", Period: "2025-01", CuciAC: 2})
	require.NoError(t, err)

	updated, err := repo.Upsert(ctx, kpi.Record{EmployeeID: "e1", Period: "2025-01", CuciAC: 3, PasangAC: 1})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	got, err := repo.ListByPeriod(ctx, "2025-01")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].CuciAC)
	assert.Equal(t, 1, got[0].PasangAC)
}

func TestKPIRepository_JobEvents(t *testing.T) {
	ctx := context.Background()
	repo := NewKPIRepository(recordstore.NewMemoryStore())
	ref := kpi.ReferenceID("e1", "2025-01", kpi.JobCuciAC, "booking-7")

	none, err := repo.GetJobEvent(ctx, ref)
	require.NoError(t, err)
	assert.Nil(t, none)

	created, err := repo.CreateJobEvent(ctx, kpi.JobEvent{ReferenceID: ref, EventID: "booking-7", EmployeeID: "e1", Period: "2025-01", JobType: kpi.JobCuciAC})
	require.NoError(t, err)
	assert.Equal(t, kpi.JobEventRecorded, created.Status)

	require.NoError(t, repo.MarkJobEventReversed(ctx, created.ID))
	got, err := repo.GetJobEvent(ctx, ref)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.IsReversed())

	assert.ErrorIs(t, repo.MarkJobEventReversed(ctx, "missing"), kpi.ErrJobEventNotFound)
}
