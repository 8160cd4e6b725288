package leave

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nalaaircon/nala-backend/internal/config"
	"github.com/nalaaircon/nala-backend/internal/domain/employee"
	"github.com/nalaaircon/nala-backend/internal/domain/leave"
	"github.com/nalaaircon/nala-backend/internal/domain/user"
	"github.com/nalaaircon/nala-backend/internal/pkg/recordstore"
	"github.com/nalaaircon/nala-backend/internal/repository/record"
)

func setupLeaveService(t *testing.T) (leave.LeaveService, employee.Employee) {
	t.Helper()
	store := recordstore.NewMemoryStore()
	employees := record.NewEmployeeRepository(store)
	emp, err := employees.Create(context.Background(), employee.Employee{
		Name: "Gita", Role: user.RoleTeknisi, Level: "helper", IsActive: true,
	})
	require.NoError(t, err)

	now := func() time.Time { return time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC) }
	svc := NewLeaveService(store, record.NewLeaveRequestRepository(store), employees, config.DefaultRules(), now)
	return svc, emp
}

func TestLeaveService_CreateLeaveRequest(t *testing.T) {
	ctx := context.Background()
	svc, emp := setupLeaveService(t)

	created, err := svc.CreateLeaveRequest(ctx, leave.CreateLeaveRequestRequest{
		EmployeeID: emp.ID,
		LeaveType:  "izin_pribadi",
		StartDate:  "2025-03-10",
		EndDate:    "2025-03-12",
		Reason:     "Acara keluarga",
	})
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusPending, created.Status)
	assert.Equal(t, 3, created.TotalDays)

	_, err = svc.CreateLeaveRequest(ctx, leave.CreateLeaveRequestRequest{
		EmployeeID: emp.ID,
		LeaveType:  "pelatihan",
		StartDate:  "2025-03-12",
		EndDate:    "2025-03-13",
		Reason:     "Pelatihan",
	})
	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)
}

func TestLeaveService_CreateLeaveRequest_Rules(t *testing.T) {
	ctx := context.Background()
	svc, emp := setupLeaveService(t)

	base := leave.CreateLeaveRequestRequest{
		EmployeeID: emp.ID, StartDate: "2025-03-10", EndDate: "2025-03-10", Reason: "Demam",
	}

	req := base
	req.LeaveType = "cuti_tahunan"
	_, err := svc.CreateLeaveRequest(ctx, req)
	assert.ErrorIs(t, err, leave.ErrUnknownLeaveType)

	req = base
	req.LeaveType = "sakit"
	_, err = svc.CreateLeaveRequest(ctx, req)
	assert.ErrorIs(t, err, leave.ErrProofRequired)

	req.ProofURL = "https://example.com/surat-dokter.jpg"
	created, err := svc.CreateLeaveRequest(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 1, created.TotalDays)

	req = base
	req.LeaveType = "izin_pribadi"
	req.EndDate = "2025-03-09"
	_, err = svc.CreateLeaveRequest(ctx, req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "end_date")
}

func TestLeaveService_ApproveAndReject(t *testing.T) {
	ctx := context.Background()
	svc, emp := setupLeaveService(t)

	first, err := svc.CreateLeaveRequest(ctx, leave.CreateLeaveRequestRequest{
		EmployeeID: emp.ID, LeaveType: "izin_pribadi", StartDate: "2025-03-10", EndDate: "2025-03-10", Reason: "Urusan bank",
	})
	require.NoError(t, err)
	second, err := svc.CreateLeaveRequest(ctx, leave.CreateLeaveRequestRequest{
		EmployeeID: emp.ID, LeaveType: "pelatihan", StartDate: "2025-03-20", EndDate: "2025-03-21", Reason: "Sertifikasi",
	})
	require.NoError(t, err)

	approved, err := svc.ApproveLeaveRequest(ctx, first.ID, "manager-1")
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusApproved, approved.Status)
	assert.Equal(t, "manager-1", approved.ApprovedBy)
	require.NotNil(t, approved.DecidedAt)

	_, err = svc.ApproveLeaveRequest(ctx, first.ID, "manager-1")
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)

	rejected, err := svc.RejectLeaveRequest(ctx, leave.RejectRequestRequest{RequestID: second.ID, Reason: "Jadwal padat", DecidedBy: "manager-1"})
	require.NoError(t, err)
	assert.Equal(t, "Jadwal padat", rejected.RejectionReason)

	pending, err := svc.ListLeaveRequest(ctx, leave.LeaveRequestFilter{Status: "pending"})
	require.NoError(t, err)
	assert.Empty(t, pending)

	all, err := svc.ListLeaveRequest(ctx, leave.LeaveRequestFilter{EmployeeID: emp.ID})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)

	_, err = svc.GetLeaveRequest(ctx, "missing")
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	// A rejected request no longer blocks its dates.
	_, err = svc.CreateLeaveRequest(ctx, leave.CreateLeaveRequestRequest{
		EmployeeID: emp.ID, LeaveType: "izin_pribadi", StartDate: "2025-03-21", EndDate: "2025-03-21", Reason: "Keluarga",
	})
	assert.NoError(t, err)
}
