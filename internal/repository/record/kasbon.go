package record

import (
	"context"

	"github.com/nalaaircon/nala-backend/internal/domain/kasbon"
	"github.com/nalaaircon/nala-backend/internal/pkg/recordstore"
)

type kasbonRepository struct {
	store recordstore.Store
}

func NewKasbonRepository(store recordstore.Store) kasbon.KasbonRepository {
	return &kasbonRepository{store: store}
}

// Create implements kasbon.KasbonRepository.
func (r *kasbonRepository) Create(ctx context.Context, k kasbon.Kasbon) (kasbon.Kasbon, error) {
	return create(ctx, r.store, recordstore.Kasbon, k)
}

// GetByID implements kasbon.KasbonRepository.
func (r *kasbonRepository) GetByID(ctx context.Context, id string) (kasbon.Kasbon, error) {
	return getByID[kasbon.Kasbon](ctx, r.store, recordstore.Kasbon, id, kasbon.ErrKasbonNotFound)
}

// GetByExpense implements kasbon.KasbonRepository.
func (r *kasbonRepository) GetByExpense(ctx context.Context, expenseID string) (*kasbon.Kasbon, error) {
	return first[kasbon.Kasbon](ctx, r.store, recordstore.Kasbon, recordstore.Query().Eq("expense_id", expenseID))
}

// List implements kasbon.KasbonRepository.
func (r *kasbonRepository) List(ctx context.Context, filter kasbon.KasbonFilter) ([]kasbon.Kasbon, error) {
	q := recordstore.Query()
	if filter.EmployeeID != "" {
		q.Eq("employee_id", filter.EmployeeID)
	}
	if filter.Status != "" {
		q.Eq("status", filter.Status)
	}
	return list[kasbon.Kasbon](ctx, r.store, recordstore.Kasbon, q.OrderBy(recordstore.FieldCreatedAt, true))
}

// Update implements kasbon.KasbonRepository.
func (r *kasbonRepository) Update(ctx context.Context, k kasbon.Kasbon) (kasbon.Kasbon, error) {
	return update(ctx, r.store, recordstore.Kasbon, k.ID, k, kasbon.ErrKasbonNotFound)
}

// Delete implements kasbon.KasbonRepository.
func (r *kasbonRepository) Delete(ctx context.Context, id string) error {
	return remove(ctx, r.store, recordstore.Kasbon, id, kasbon.ErrKasbonNotFound)
}
