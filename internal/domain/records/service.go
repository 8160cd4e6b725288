package records

import "context"

// RecordService manages customers, projects and bookings
type RecordService interface {
	List(ctx context.Context, collection string, filter Filter) ([]Document, error)
	Get(ctx context.Context, collection, id string) (Document, error)

	// Create checks the required fields of the collection and fills its defaults
	Create(ctx context.Context, collection string, doc Document) (Document, error)

	// Update merges fields into the stored document
	Update(ctx context.Context, collection, id string, fields Document) (Document, error)

	Delete(ctx context.Context, collection, id string) error
	Count(ctx context.Context, collection string) (int, error)
}
