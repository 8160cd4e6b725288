package record

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/nalaaircon/nala-backend/internal/domain/inventory"
	"github.com/nalaaircon/nala-backend/internal/pkg/recordstore"
)

type itemRepository struct {
	store recordstore.Store
}

func NewItemRepository(store recordstore.Store) inventory.ItemRepository {
	return &itemRepository{store: store}
}

// Create implements inventory.ItemRepository.
func (r *itemRepository) Create(ctx context.Context, item inventory.Item) (inventory.Item, error) {
	return create(ctx, r.store, recordstore.Inventory, item)
}

// GetByID implements inventory.ItemRepository.
func (r *itemRepository) GetByID(ctx context.Context, id string) (inventory.Item, error) {
	return getByID[inventory.Item](ctx, r.store, recordstore.Inventory, id, inventory.ErrItemNotFound)
}

// List implements inventory.ItemRepository.
func (r *itemRepository) List(ctx context.Context, filter inventory.ItemFilter) ([]inventory.Item, error) {
	q := recordstore.Query()
	if filter.Category != "" {
		q.Eq("category", filter.Category)
	}
	if filter.Location != "" {
		q.Eq("location", filter.Location)
	}
	return list[inventory.Item](ctx, r.store, recordstore.Inventory, q.OrderBy("name", false))
}

// Update implements inventory.ItemRepository.
func (r *itemRepository) Update(ctx context.Context, item inventory.Item) (inventory.Item, error) {
	return update(ctx, r.store, recordstore.Inventory, item.ID, item, inventory.ErrItemNotFound)
}

// UpdateQuantity implements inventory.ItemRepository. The quantity is stored
// in the same string form the item encoding uses.
func (r *itemRepository) UpdateQuantity(ctx context.Context, id string, quantity decimal.Decimal) error {
	return patch(ctx, r.store, recordstore.Inventory, id, recordstore.Record{"quantity": quantity.String()}, inventory.ErrItemNotFound)
}

// Delete implements inventory.ItemRepository.
func (r *itemRepository) Delete(ctx context.Context, id string) error {
	return remove(ctx, r.store, recordstore.Inventory, id, inventory.ErrItemNotFound)
}

type movementRepository struct {
	store recordstore.Store
}

func NewMovementRepository(store recordstore.Store) inventory.MovementRepository {
	return &movementRepository{store: store}
}

// Create implements inventory.MovementRepository.
func (r *movementRepository) Create(ctx context.Context, m inventory.Movement) (inventory.Movement, error) {
	return create(ctx, r.store, recordstore.InventoryMovements, m)
}

// ListByReference implements inventory.MovementRepository.
func (r *movementRepository) ListByReference(ctx context.Context, refType, refID string, movementType inventory.MovementType) ([]inventory.Movement, error) {
	q := recordstore.Query().
		Eq("reference_type", refType).
		Eq("reference_id", refID).
		Eq("type", string(movementType)).
		OrderBy(recordstore.FieldCreatedAt, false).
		OrderBy(recordstore.FieldID, false)
	return list[inventory.Movement](ctx, r.store, recordstore.InventoryMovements, q)
}

// ListByItem implements inventory.MovementRepository.
func (r *movementRepository) ListByItem(ctx context.Context, inventoryID string) ([]inventory.Movement, error) {
	q := recordstore.Query().
		Eq("inventory_id", inventoryID).
		OrderBy(recordstore.FieldCreatedAt, true).
		OrderBy(recordstore.FieldID, true)
	return list[inventory.Movement](ctx, r.store, recordstore.InventoryMovements, q)
}

// ListAll implements inventory.MovementRepository.
func (r *movementRepository) ListAll(ctx context.Context) ([]inventory.Movement, error) {
	return list[inventory.Movement](ctx, r.store, recordstore.InventoryMovements, nil)
}

// Delete implements inventory.MovementRepository.
func (r *movementRepository) Delete(ctx context.Context, id string) error {
	return remove(ctx, r.store, recordstore.InventoryMovements, id, recordstore.ErrNotFound)
}
