package inventory

import (
	"context"

	"github.com/shopspring/decimal"
)

// InventoryService owns item quantities and the stock ledger
type InventoryService interface {
	CreateItem(ctx context.Context, req CreateItemRequest) (Item, error)
	GetItem(ctx context.Context, id string) (Item, error)
	ListItems(ctx context.Context, filter ItemFilter) ([]Item, error)
	UpdateItem(ctx context.Context, req UpdateItemRequest) (Item, error)

	// DeleteItem removes an item together with its movements
	DeleteItem(ctx context.Context, id string) error

	// AddStock increases the quantity and appends an "in" movement
	AddStock(ctx context.Context, itemID string, quantity decimal.Decimal, refType, refID, notes string) (Item, error)

	// ReduceStock decreases the quantity, floored at zero, and appends an "out" movement
	// with the quantity actually removed
	ReduceStock(ctx context.Context, itemID string, quantity decimal.Decimal, refType, refID, notes string) (Item, error)

	// FindMatch returns the first item matching the criteria, or nil
	FindMatch(ctx context.Context, criteria MatchCriteria) (*Item, error)

	ListMovements(ctx context.Context, itemID string) ([]Movement, error)
	LowStock(ctx context.Context) ([]Item, error)

	// Reconcile compares an item quantity with its ledger
	Reconcile(ctx context.Context, itemID string) (Discrepancy, error)

	// ReconcileAll checks every item and returns a ConsistencyError listing the drifted ones
	ReconcileAll(ctx context.Context) ([]Discrepancy, error)
}
