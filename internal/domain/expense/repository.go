package expense

import "context"

type ExpenseRepository interface {
	Create(ctx context.Context, expense Expense) (Expense, error)
	GetByID(ctx context.Context, id string) (Expense, error)
	// List returns expenses ordered by date, newest first.
	List(ctx context.Context, filter ExpenseFilter) ([]Expense, error)
	MarkSynced(ctx context.Context, id, target, syncedID string) error
	Delete(ctx context.Context, id string) error
}
