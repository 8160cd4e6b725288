package kpi

import (
	"time"

	"github.com/shopspring/decimal"
)

// Job types counted towards KPI.
const (
	JobCuciAC        = "cuci_ac"
	JobPasangAC      = "pasang_ac"
	JobBongkarPasang = "bongkar_pasang"
	JobServiceBerat  = "service_berat"
)

var jobTypes = []string{JobCuciAC, JobPasangAC, JobBongkarPasang, JobServiceBerat}

// JobTypes returns every job type counted in a Record.
func JobTypes() []string {
	return append([]string(nil), jobTypes...)
}

func IsValidJobType(jobType string) bool {
	for _, j := range jobTypes {
		if j == jobType {
			return true
		}
	}
	return false
}

// Record holds the completed job counters of one employee in one period.
// There is at most one record per (employee, period).
type Record struct {
	ID            string     `json:"id"`
	EmployeeID    string     `json:"employee_id"`
	Period        string     `json:"period"`
	CuciAC        int        `json:"cuci_ac"`
	PasangAC      int        `json:"pasang_ac"`
	BongkarPasang int        `json:"bongkar_pasang"`
	ServiceBerat  int        `json:"service_berat"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// Counts returns the counters keyed by job type.
func (r Record) Counts() map[string]int {
	return map[string]int{
		JobCuciAC:        r.CuciAC,
		JobPasangAC:      r.PasangAC,
		JobBongkarPasang: r.BongkarPasang,
		JobServiceBerat:  r.ServiceBerat,
	}
}

// SetCounts overwrites the counters present in counts.
func (r *Record) SetCounts(counts map[string]int) {
	for jobType, n := range counts {
		r.add(jobType, n, true)
	}
}

// Increment adds delta to a counter, never going below zero. It returns
// false for an unknown job type.
func (r *Record) Increment(jobType string, delta int) bool {
	return r.add(jobType, delta, false)
}

func (r *Record) add(jobType string, n int, set bool) bool {
	var counter *int
	switch jobType {
	case JobCuciAC:
		counter = &r.CuciAC
	case JobPasangAC:
		counter = &r.PasangAC
	case JobBongkarPasang:
		counter = &r.BongkarPasang
	case JobServiceBerat:
		counter = &r.ServiceBerat
	default:
		return false
	}
	if !set {
		n += *counter
	}
	*counter = max(n, 0)
	return true
}

// MaterialUsage is a material consumed by a job.
type MaterialUsage struct {
	InventoryID string          `json:"inventory_id" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity" validate:"gt=0"`
}

// Summary is the KPI achievement of an employee in a period.
type Summary struct {
	EmployeeID        string         `json:"employee_id"`
	EmployeeName      string         `json:"employee_name,omitempty"`
	Period            string         `json:"period"`
	Counts            map[string]int `json:"counts"`
	AveragePercentage string         `json:"average_percentage"`
}

// Job event states.
const (
	JobEventRecorded = "recorded"
	JobEventReversed = "reversed"
)

// JobEvent marks one counted job completion. It is written in the same
// transaction as the counter, so a replayed or reversed event is detected
// whether or not it issued material.
type JobEvent struct {
	ID          string     `json:"id"`
	ReferenceID string     `json:"reference_id"`
	EventID     string     `json:"event_id"`
	EmployeeID  string     `json:"employee_id"`
	Period      string     `json:"period"`
	JobType     string     `json:"job_type"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func (e JobEvent) IsReversed() bool {
	return e.Status == JobEventReversed
}
