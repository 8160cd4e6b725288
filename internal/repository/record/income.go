package record

import (
	"context"

	"github.com/nalaaircon/nala-backend/internal/domain/finance"
	"github.com/nalaaircon/nala-backend/internal/pkg/recordstore"
)

type incomeRepository struct {
	store recordstore.Store
}

func NewIncomeRepository(store recordstore.Store) finance.IncomeRepository {
	return &incomeRepository{store: store}
}

// Create implements finance.IncomeRepository.
func (r *incomeRepository) Create(ctx context.Context, income finance.Income) (finance.Income, error) {
	return create(ctx, r.store, recordstore.Income, income)
}

// GetByID implements finance.IncomeRepository.
func (r *incomeRepository) GetByID(ctx context.Context, id string) (finance.Income, error) {
	return getByID[finance.Income](ctx, r.store, recordstore.Income, id, finance.ErrIncomeNotFound)
}

// List implements finance.IncomeRepository.
func (r *incomeRepository) List(ctx context.Context, filter finance.IncomeFilter) ([]finance.Income, error) {
	q := recordstore.Query()
	if filter.Branch != "" {
		q.Eq("branch", filter.Branch)
	}
	q.Between("date", filter.From, filter.To).
		OrderBy("date", true).
		OrderBy(recordstore.FieldCreatedAt, true)
	return list[finance.Income](ctx, r.store, recordstore.Income, q)
}

// Delete implements finance.IncomeRepository.
func (r *incomeRepository) Delete(ctx context.Context, id string) error {
	return remove(ctx, r.store, recordstore.Income, id, finance.ErrIncomeNotFound)
}
