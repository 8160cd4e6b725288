package records

import "context"

type DocumentRepository interface {
	List(ctx context.Context, schema Schema, filter Filter) ([]Document, error)
	GetByID(ctx context.Context, c Collection, id string) (Document, error)
	Create(ctx context.Context, c Collection, doc Document) (Document, error)
	Update(ctx context.Context, c Collection, id string, fields Document) (Document, error)
	Delete(ctx context.Context, c Collection, id string) error
	Count(ctx context.Context, c Collection) (int, error)
}
