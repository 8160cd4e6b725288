package leave

import (
	"context"
)

type LeaveService interface {
	// CreateLeaveRequest checks the leave type against the configured ones and stores a pending request
	CreateLeaveRequest(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequest, error)

	ApproveLeaveRequest(ctx context.Context, requestID, decidedBy string) (LeaveRequest, error)
	RejectLeaveRequest(ctx context.Context, req RejectRequestRequest) (LeaveRequest, error)
	GetLeaveRequest(ctx context.Context, requestID string) (LeaveRequest, error)
	ListLeaveRequest(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, error)
}
