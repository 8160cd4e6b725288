package leave

import (
	"time"
)

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "rejected"
)

func (s LeaveRequestStatus) IsValid() bool {
	switch s {
	case LeaveRequestStatusPending, LeaveRequestStatusApproved, LeaveRequestStatusRejected:
		return true
	}
	return false
}

type LeaveRequest struct {
	ID              string             `json:"id"`
	EmployeeID      string             `json:"employee_id"`
	LeaveType       string             `json:"leave_type"`
	StartDate       string             `json:"start_date"`
	EndDate         string             `json:"end_date"`
	TotalDays       int                `json:"total_days"`
	Reason          string             `json:"reason"`
	ProofURL        string             `json:"proof_url,omitempty"`
	Status          LeaveRequestStatus `json:"status"`
	ApprovedBy      string             `json:"approved_by,omitempty"`
	RejectionReason string             `json:"rejection_reason,omitempty"`
	DecidedAt       *time.Time         `json:"decided_at,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       *time.Time         `json:"updated_at,omitempty"`
}
