package record

import (
	"context"

	"github.com/nalaaircon/nala-backend/internal/domain/expense"
	"github.com/nalaaircon/nala-backend/internal/pkg/recordstore"
)

type expenseRepository struct {
	store recordstore.Store
}

func NewExpenseRepository(store recordstore.Store) expense.ExpenseRepository {
	return &expenseRepository{store: store}
}

// Create implements expense.ExpenseRepository.
func (r *expenseRepository) Create(ctx context.Context, e expense.Expense) (expense.Expense, error) {
	return create(ctx, r.store, recordstore.Expenses, e)
}

// GetByID implements expense.ExpenseRepository.
func (r *expenseRepository) GetByID(ctx context.Context, id string) (expense.Expense, error) {
	return getByID[expense.Expense](ctx, r.store, recordstore.Expenses, id, expense.ErrExpenseNotFound)
}

// List implements expense.ExpenseRepository.
func (r *expenseRepository) List(ctx context.Context, filter expense.ExpenseFilter) ([]expense.Expense, error) {
	q := recordstore.Query()
	if filter.Category != "" {
		q.Eq("category", filter.Category)
	}
	if filter.Branch != "" {
		q.Eq("branch", filter.Branch)
	}
	q.Between("date", filter.From, filter.To).
		OrderBy("date", true).
		OrderBy(recordstore.FieldCreatedAt, true)
	return list[expense.Expense](ctx, r.store, recordstore.Expenses, q)
}

// MarkSynced implements expense.ExpenseRepository.
func (r *expenseRepository) MarkSynced(ctx context.Context, id, target, syncedID string) error {
	fields := recordstore.Record{"synced_to": target, "synced_id": syncedID}
	return patch(ctx, r.store, recordstore.Expenses, id, fields, expense.ErrExpenseNotFound)
}

// Delete implements expense.ExpenseRepository.
func (r *expenseRepository) Delete(ctx context.Context, id string) error {
	return remove(ctx, r.store, recordstore.Expenses, id, expense.ErrExpenseNotFound)
}
