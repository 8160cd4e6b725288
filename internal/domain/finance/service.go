package finance

import "context"

type IncomeService interface {
	Create(ctx context.Context, req CreateIncomeRequest) (Income, error)
	List(ctx context.Context, filter IncomeFilter) ([]Income, error)
	Delete(ctx context.Context, id string) error

	// Cashflow totals income against expenses for a period
	Cashflow(ctx context.Context, period string) (Cashflow, error)
}
