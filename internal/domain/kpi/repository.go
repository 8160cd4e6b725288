package kpi

import "context"

type KPIRepository interface {
	// GetByEmployeePeriod returns nil when there is no record yet.
	GetByEmployeePeriod(ctx context.Context, employeeID, period string) (*Record, error)
	// Upsert creates the (employee, period) record or overwrites its counters.
	Upsert(ctx context.Context, record Record) (Record, error)
	ListByPeriod(ctx context.Context, period string) ([]Record, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Record, error)

	// GetJobEvent returns nil when the event was never recorded.
	GetJobEvent(ctx context.Context, referenceID string) (*JobEvent, error)
	CreateJobEvent(ctx context.Context, event JobEvent) (JobEvent, error)
	MarkJobEventReversed(ctx context.Context, id string) error
}
