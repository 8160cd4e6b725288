package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nalaaircon/nala-backend/internal/config"
	"github.com/nalaaircon/nala-backend/internal/domain/employee"
	"github.com/nalaaircon/nala-backend/internal/domain/leave"
	"github.com/nalaaircon/nala-backend/internal/pkg/recordstore"
)

type LeaveServiceImpl struct {
	tx               recordstore.Transactor
	leaveRequestRepo leave.LeaveRequestRepository
	employeeRepo     employee.EmployeeRepository
	rules            config.Rules
	now              func() time.Time
}

func NewLeaveService(
	tx recordstore.Transactor,
	leaveRequestRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
	rules config.Rules,
	now func() time.Time,
) leave.LeaveService {
	if now == nil {
		now = time.Now
	}
	return &LeaveServiceImpl{
		tx:               tx,
		leaveRequestRepo: leaveRequestRepo,
		employeeRepo:     employeeRepo,
		rules:            rules,
		now:              now,
	}
}

// totalDays counts calendar days, both ends included.
func totalDays(start, end string) int {
	s, err1 := time.Parse("2006-01-02", start)
	e, err2 := time.Parse("2006-01-02", end)
	if err1 != nil || err2 != nil || e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// CreateLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateLeaveRequest(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	leaveType, ok := s.rules.LeaveType(req.LeaveType)
	if !ok {
		return leave.LeaveRequest{}, fmt.Errorf("%w: %s", leave.ErrUnknownLeaveType, req.LeaveType)
	}
	if leaveType.RequireProof && req.ProofURL == "" {
		return leave.LeaveRequest{}, leave.ErrProofRequired
	}

	var created leave.LeaveRequest
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
			return fmt.Errorf("failed to get employee: %w", err)
		}

		existing, err := s.leaveRequestRepo.List(ctx, leave.LeaveRequestFilter{EmployeeID: req.EmployeeID})
		if err != nil {
			return fmt.Errorf("failed to list leave requests: %w", err)
		}
		for _, other := range existing {
			if other.Status == leave.LeaveRequestStatusRejected {
				continue
			}
			if req.StartDate <= other.EndDate && other.StartDate <= req.EndDate {
				return fmt.Errorf("%w: %s to %s", leave.ErrOverlappingLeave, other.StartDate, other.EndDate)
			}
		}

		created, err = s.leaveRequestRepo.Create(ctx, leave.LeaveRequest{
			EmployeeID: req.EmployeeID,
			LeaveType:  leaveType.Key,
			StartDate:  req.StartDate,
			EndDate:    req.EndDate,
			TotalDays:  totalDays(req.StartDate, req.EndDate),
			Reason:     req.Reason,
			ProofURL:   req.ProofURL,
			Status:     leave.LeaveRequestStatusPending,
		})
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	return created, nil
}

// decide moves a pending request to its final status.
func (s *LeaveServiceImpl) decide(ctx context.Context, requestID string, status leave.LeaveRequestStatus, decidedBy, reason string) (leave.LeaveRequest, error) {
	var updated leave.LeaveRequest
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		request, err := s.leaveRequestRepo.GetByID(ctx, requestID)
		if err != nil {
			return fmt.Errorf("failed to get leave request by ID: %w", err)
		}
		if request.Status != leave.LeaveRequestStatusPending {
			return leave.ErrLeaveRequestAlreadyProcessed
		}

		decidedAt := s.now()
		request.Status = status
		request.ApprovedBy = decidedBy
		request.RejectionReason = reason
		request.DecidedAt = &decidedAt

		updated, err = s.leaveRequestRepo.Update(ctx, request)
		if err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	slog.Info("leave request decided", "request_id", requestID, "status", status, "by", decidedBy)
	return updated, nil
}

// ApproveLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) ApproveLeaveRequest(ctx context.Context, requestID, decidedBy string) (leave.LeaveRequest, error) {
	return s.decide(ctx, requestID, leave.LeaveRequestStatusApproved, decidedBy, "")
}

// RejectLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) RejectLeaveRequest(ctx context.Context, req leave.RejectRequestRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}
	return s.decide(ctx, req.RequestID, leave.LeaveRequestStatusRejected, req.DecidedBy, req.Reason)
}

// GetLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) GetLeaveRequest(ctx context.Context, requestID string) (leave.LeaveRequest, error) {
	request, err := s.leaveRequestRepo.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request by ID: %w", err)
	}
	return request, nil
}

// ListLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) ListLeaveRequest(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	requests, err := s.leaveRequestRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return requests, nil
}
