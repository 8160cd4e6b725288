package inventory

import (
	"context"

	"github.com/shopspring/decimal"
)

type ItemRepository interface {
	Create(ctx context.Context, item Item) (Item, error)
	GetByID(ctx context.Context, id string) (Item, error)
	// List returns items ordered by name.
	List(ctx context.Context, filter ItemFilter) ([]Item, error)
	Update(ctx context.Context, item Item) (Item, error)
	UpdateQuantity(ctx context.Context, id string, quantity decimal.Decimal) error
	Delete(ctx context.Context, id string) error
}

type MovementRepository interface {
	Create(ctx context.Context, movement Movement) (Movement, error)
	// ListByReference returns the movements owned by a business event, oldest first.
	ListByReference(ctx context.Context, refType, refID string, movementType MovementType) ([]Movement, error)
	// ListByItem returns the movements of an item, newest first.
	ListByItem(ctx context.Context, inventoryID string) ([]Movement, error)
	ListAll(ctx context.Context) ([]Movement, error)
	Delete(ctx context.Context, id string) error
}
