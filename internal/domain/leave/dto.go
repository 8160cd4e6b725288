package leave

import (
	"github.com/nalaaircon/nala-backend/internal/pkg/validator"
)

type CreateLeaveRequestRequest struct {
	EmployeeID string `json:"-"`
	LeaveType  string `json:"leave_type" validate:"required"`
	StartDate  string `json:"start_date" validate:"required,date"`
	EndDate    string `json:"end_date" validate:"required,date"`
	Reason     string `json:"reason" validate:"required,max=500"`
	ProofURL   string `json:"proof_url" validate:"omitempty,url"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	errs := validator.Struct(r)

	if r.EmployeeID == "" {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if r.StartDate != "" && r.EndDate != "" && r.EndDate < r.StartDate {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}

	return errs.OrNil()
}

type RejectRequestRequest struct {
	RequestID string `json:"-"`
	Reason    string `json:"reason" validate:"required,max=500"`
	DecidedBy string `json:"-"`
}

func (r *RejectRequestRequest) Validate() error {
	return validator.Struct(r).OrNil()
}

type LeaveRequestFilter struct {
	EmployeeID string
	Status     string `validate:"omitempty,oneof=pending approved rejected"`
}

func (f *LeaveRequestFilter) Validate() error {
	return validator.Struct(f).OrNil()
}
