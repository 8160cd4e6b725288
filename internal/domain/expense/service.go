package expense

import "context"

// ExpenseService records expenses and keeps inventory and kasbon in step with them
type ExpenseService interface {
	// CreateWithInventorySync stores an expense and, in the same transaction, turns a
	// material or AC unit purchase into a stock-in and a kasbon expense into an advance
	CreateWithInventorySync(ctx context.Context, req CreateExpenseRequest) (Expense, error)

	// SyncToInventory (re)applies the stock-in of a stored expense. Already synced
	// expenses only get their unit price refreshed
	SyncToInventory(ctx context.Context, expenseID string) (Expense, error)

	// DeleteWithInventorySync reverses every effect of the expense and deletes it
	DeleteWithInventorySync(ctx context.Context, id string) error

	GetExpense(ctx context.Context, id string) (Expense, error)
	ListExpenses(ctx context.Context, filter ExpenseFilter) ([]Expense, error)
	Summary(ctx context.Context, period string) (Summary, error)
}
