package record

import (
	"context"
	"fmt"

	"github.com/nalaaircon/nala-backend/internal/domain/records"
	"github.com/nalaaircon/nala-backend/internal/pkg/recordstore"
)

type documentRepository struct {
	store recordstore.Store
}

func NewDocumentRepository(store recordstore.Store) records.DocumentRepository {
	return &documentRepository{store: store}
}

// List implements records.DocumentRepository.
func (r *documentRepository) List(ctx context.Context, schema records.Schema, filter records.Filter) ([]records.Document, error) {
	q := recordstore.Query()
	if filter.Value != "" && schema.FilterField != "" {
		q.Eq(schema.FilterField, filter.Value)
	}
	if filter.Date != "" {
		q.Eq("service_date", filter.Date)
	}
	if schema.OrderField != "" {
		q.OrderBy(schema.OrderField, schema.OrderDesc)
	}
	return list[records.Document](ctx, r.store, recordstore.Collection(schema.Collection), q)
}

// GetByID implements records.DocumentRepository.
func (r *documentRepository) GetByID(ctx context.Context, c records.Collection, id string) (records.Document, error) {
	return getByID[records.Document](ctx, r.store, recordstore.Collection(c), id, records.ErrRecordNotFound)
}

// Create implements records.DocumentRepository.
func (r *documentRepository) Create(ctx context.Context, c records.Collection, doc records.Document) (records.Document, error) {
	created, err := r.store.Create(ctx, recordstore.Collection(c), recordstore.Record(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s record: %w", c, err)
	}
	return records.Document(created), nil
}

// Update implements records.DocumentRepository.
func (r *documentRepository) Update(ctx context.Context, c records.Collection, id string, fields records.Document) (records.Document, error) {
	updated, err := r.store.Update(ctx, recordstore.Collection(c), id, recordstore.Record(fields))
	if err != nil {
		return nil, notFound(err, records.ErrRecordNotFound)
	}
	return records.Document(updated), nil
}

// Delete implements records.DocumentRepository.
func (r *documentRepository) Delete(ctx context.Context, c records.Collection, id string) error {
	return remove(ctx, r.store, recordstore.Collection(c), id, records.ErrRecordNotFound)
}

// Count implements records.DocumentRepository.
func (r *documentRepository) Count(ctx context.Context, c records.Collection) (int, error) {
	recs, err := r.store.GetAll(ctx, recordstore.Collection(c), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", c, err)
	}
	return len(recs), nil
}
