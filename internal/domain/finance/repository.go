package finance

import "context"

type IncomeRepository interface {
	Create(ctx context.Context, income Income) (Income, error)
	GetByID(ctx context.Context, id string) (Income, error)
	// List returns income ordered by date, newest first.
	List(ctx context.Context, filter IncomeFilter) ([]Income, error)
	Delete(ctx context.Context, id string) error
}
