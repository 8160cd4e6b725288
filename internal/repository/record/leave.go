package record

import (
	"context"

	"github.com/nalaaircon/nala-backend/internal/domain/leave"
	"github.com/nalaaircon/nala-backend/internal/pkg/recordstore"
)

type leaveRequestRepository struct {
	store recordstore.Store
}

func NewLeaveRequestRepository(store recordstore.Store) leave.LeaveRequestRepository {
	return &leaveRequestRepository{store: store}
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	return create(ctx, r.store, recordstore.LeaveRequests, req)
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return getByID[leave.LeaveRequest](ctx, r.store, recordstore.LeaveRequests, id, leave.ErrLeaveRequestNotFound)
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	q := recordstore.Query()
	if filter.EmployeeID != "" {
		q.Eq("employee_id", filter.EmployeeID)
	}
	if filter.Status != "" {
		q.Eq("status", filter.Status)
	}
	return list[leave.LeaveRequest](ctx, r.store, recordstore.LeaveRequests, q.OrderBy("start_date", true))
}

// Update implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) Update(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	return update(ctx, r.store, recordstore.LeaveRequests, req.ID, req, leave.ErrLeaveRequestNotFound)
}
