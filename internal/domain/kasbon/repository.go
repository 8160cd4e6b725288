package kasbon

import "context"

type KasbonRepository interface {
	Create(ctx context.Context, kasbon Kasbon) (Kasbon, error)
	GetByID(ctx context.Context, id string) (Kasbon, error)
	// GetByExpense returns nil when no kasbon was created from the expense.
	GetByExpense(ctx context.Context, expenseID string) (*Kasbon, error)
	List(ctx context.Context, filter KasbonFilter) ([]Kasbon, error)
	Update(ctx context.Context, kasbon Kasbon) (Kasbon, error)
	Delete(ctx context.Context, id string) error
}
