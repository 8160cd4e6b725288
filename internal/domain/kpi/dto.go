package kpi

import (
	"github.com/nalaaircon/nala-backend/internal/pkg/validator"
)

// JobCompletionRequest records one finished job and the materials it used.
type JobCompletionRequest struct {
	EmployeeID string          `json:"employee_id" validate:"required"`
	Period     string          `json:"period" validate:"required,period"`
	JobType    string          `json:"job_type" validate:"required"`
	EventID    string          `json:"event_id"`
	Materials  []MaterialUsage `json:"materials" validate:"dive"`
}

func (r *JobCompletionRequest) Validate() error {
	errs := validator.Struct(r)
	if r.JobType != "" && !IsValidJobType(r.JobType) {
		errs = append(errs, validator.ValidationError{Field: "job_type", Message: "must be cuci_ac, pasang_ac, bongkar_pasang or service_berat"})
	}
	return errs.OrNil()
}

// JobCompletionResult identifies the recorded job so it can be reversed.
type JobCompletionResult struct {
	Record      Record `json:"record"`
	EventID     string `json:"event_id"`
	ReferenceID string `json:"reference_id"`
}

type ReverseJobRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Period     string `json:"period" validate:"required,period"`
	JobType    string `json:"job_type" validate:"required"`
	EventID    string `json:"event_id" validate:"required"`
}

func (r *ReverseJobRequest) Validate() error {
	errs := validator.Struct(r)
	if r.JobType != "" && !IsValidJobType(r.JobType) {
		errs = append(errs, validator.ValidationError{Field: "job_type", Message: "must be cuci_ac, pasang_ac, bongkar_pasang or service_berat"})
	}
	return errs.OrNil()
}

// UpsertRequest sets the counters of a period directly.
type UpsertRequest struct {
	EmployeeID string         `json:"-"`
	Period     string         `json:"period" validate:"required,period"`
	Counts     map[string]int `json:"counts" validate:"required"`
}

func (r *UpsertRequest) Validate() error {
	errs := validator.Struct(r)
	if r.EmployeeID == "" {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	for jobType, n := range r.Counts {
		if !IsValidJobType(jobType) {
			errs = append(errs, validator.ValidationError{Field: "counts." + jobType, Message: "unknown job type"})
		} else if n < 0 {
			errs = append(errs, validator.ValidationError{Field: "counts." + jobType, Message: "must be non-negative"})
		}
	}
	return errs.OrNil()
}

// ReferenceID is the movement reference of one job event.
func ReferenceID(employeeID, period, jobType, eventID string) string {
	return employeeID + "_" + period + "_" + jobType + "_" + eventID
}
