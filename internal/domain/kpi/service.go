package kpi

import "context"

// KPIService counts completed jobs and issues the material they consume
type KPIService interface {
	// RecordJobCompletion increments the job counter and issues a stock-out for every
	// consumed material, in one transaction
	RecordJobCompletion(ctx context.Context, req JobCompletionRequest) (JobCompletionResult, error)

	// ReverseJobCompletion returns the consumed stock and decrements the counter
	ReverseJobCompletion(ctx context.Context, req ReverseJobRequest) (Record, error)

	Upsert(ctx context.Context, req UpsertRequest) (Record, error)

	// GetRecord returns the (employee, period) record, with zero counters when none exists
	GetRecord(ctx context.Context, employeeID, period string) (Record, error)

	// Summaries returns the achievement of every active employee in a period
	Summaries(ctx context.Context, period string) ([]Summary, error)
}
