package inventory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/nalaaircon/nala-backend/internal/domain/inventory"
	"github.com/nalaaircon/nala-backend/internal/pkg/recordstore"
)

type InventoryServiceImpl struct {
	tx           recordstore.Transactor
	itemRepo     inventory.ItemRepository
	movementRepo inventory.MovementRepository
}

func NewInventoryService(
	tx recordstore.Transactor,
	itemRepo inventory.ItemRepository,
	movementRepo inventory.MovementRepository,
) inventory.InventoryService {
	return &InventoryServiceImpl{
		tx:           tx,
		itemRepo:     itemRepo,
		movementRepo: movementRepo,
	}
}

// CreateItem implements inventory.InventoryService.
// An opening quantity is booked as an "initial" movement so the ledger
// starts balanced.
func (s *InventoryServiceImpl) CreateItem(ctx context.Context, req inventory.CreateItemRequest) (inventory.Item, error) {
	if err := req.Validate(); err != nil {
		return inventory.Item{}, err
	}

	var item inventory.Item
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		item, err = s.itemRepo.Create(ctx, inventory.Item{
			Name:      req.Name,
			Category:  inventory.Category(req.Category),
			Type:      req.Type,
			Brand:     req.Brand,
			Size:      req.Size,
			Capacity:  req.Capacity,
			Quantity:  decimal.Zero,
			Unit:      req.Unit,
			MinStock:  req.MinStock,
			UnitPrice: req.UnitPrice,
			Location:  req.Location,
		})
		if err != nil {
			return fmt.Errorf("failed to create inventory item: %w", err)
		}
		if req.Quantity.IsPositive() {
			item, err = s.AddStock(ctx, item.ID, req.Quantity, inventory.RefInitial, item.ID, "Stok awal")
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return inventory.Item{}, err
	}
	return item, nil
}

// GetItem implements inventory.InventoryService.
func (s *InventoryServiceImpl) GetItem(ctx context.Context, id string) (inventory.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return inventory.Item{}, fmt.Errorf("failed to get inventory item: %w", err)
	}
	return item, nil
}

// ListItems implements inventory.InventoryService.
func (s *InventoryServiceImpl) ListItems(ctx context.Context, filter inventory.ItemFilter) ([]inventory.Item, error) {
	items, err := s.itemRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}
	return items, nil
}

// UpdateItem implements inventory.InventoryService.
func (s *InventoryServiceImpl) UpdateItem(ctx context.Context, req inventory.UpdateItemRequest) (inventory.Item, error) {
	if err := req.Validate(); err != nil {
		return inventory.Item{}, err
	}

	item, err := s.itemRepo.GetByID(ctx, req.ID)
	if err != nil {
		return inventory.Item{}, fmt.Errorf("failed to get inventory item: %w", err)
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Type != nil {
		item.Type = *req.Type
	}
	if req.Brand != nil {
		item.Brand = *req.Brand
	}
	if req.Size != nil {
		item.Size = *req.Size
	}
	if req.Capacity != nil {
		item.Capacity = *req.Capacity
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.MinStock != nil {
		item.MinStock = *req.MinStock
	}
	if req.UnitPrice != nil {
		item.UnitPrice = *req.UnitPrice
	}
	if req.Location != nil {
		item.Location = *req.Location
	}

	updated, err := s.itemRepo.Update(ctx, item)
	if err != nil {
		return inventory.Item{}, fmt.Errorf("failed to update inventory item: %w", err)
	}
	return updated, nil
}

// DeleteItem implements inventory.InventoryService.
func (s *InventoryServiceImpl) DeleteItem(ctx context.Context, id string) error {
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.itemRepo.GetByID(ctx, id); err != nil {
			return fmt.Errorf("failed to get inventory item: %w", err)
		}
		movements, err := s.movementRepo.ListByItem(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to list movements: %w", err)
		}
		for _, m := range movements {
			if err := s.movementRepo.Delete(ctx, m.ID); err != nil {
				return fmt.Errorf("failed to delete movement %s: %w", m.ID, err)
			}
		}
		if err := s.itemRepo.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete inventory item: %w", err)
		}
		return nil
	})
}

// AddStock implements inventory.InventoryService.
func (s *InventoryServiceImpl) AddStock(ctx context.Context, itemID string, quantity decimal.Decimal, refType, refID, notes string) (inventory.Item, error) {
	if !quantity.IsPositive() {
		return inventory.Item{}, inventory.ErrInvalidQuantity
	}

	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return inventory.Item{}, fmt.Errorf("failed to get inventory item: %w", err)
	}

	item.Quantity = item.Quantity.Add(quantity)
	if err := s.itemRepo.UpdateQuantity(ctx, item.ID, item.Quantity); err != nil {
		return inventory.Item{}, fmt.Errorf("failed to update stock: %w", err)
	}

	s.recordMovement(ctx, inventory.Movement{
		InventoryID:   item.ID,
		Type:          inventory.MovementIn,
		Quantity:      quantity,
		ReferenceType: refType,
		ReferenceID:   refID,
		Notes:         notes,
	})
	return item, nil
}

// ReduceStock implements inventory.InventoryService.
func (s *InventoryServiceImpl) ReduceStock(ctx context.Context, itemID string, quantity decimal.Decimal, refType, refID, notes string) (inventory.Item, error) {
	if !quantity.IsPositive() {
		return inventory.Item{}, inventory.ErrInvalidQuantity
	}

	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return inventory.Item{}, fmt.Errorf("failed to get inventory item: %w", err)
	}

	applied := decimal.Max(decimal.Min(quantity, item.Quantity), decimal.Zero)
	if applied.LessThan(quantity) {
		slog.Info("stock-out floored at zero",
			"inventory_id", item.ID, "requested", quantity.String(), "applied", applied.String())
	}
	if applied.IsZero() {
		return item, nil
	}

	item.Quantity = item.Quantity.Sub(applied)
	if err := s.itemRepo.UpdateQuantity(ctx, item.ID, item.Quantity); err != nil {
		return inventory.Item{}, fmt.Errorf("failed to update stock: %w", err)
	}

	s.recordMovement(ctx, inventory.Movement{
		InventoryID:   item.ID,
		Type:          inventory.MovementOut,
		Quantity:      applied,
		ReferenceType: refType,
		ReferenceID:   refID,
		Notes:         notes,
	})
	return item, nil
}

// recordMovement appends a ledger row inside a savepoint. The quantity
// update is the primary effect; a failed append is logged and dropped.
func (s *InventoryServiceImpl) recordMovement(ctx context.Context, m inventory.Movement) {
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		_, err := s.movementRepo.Create(ctx, m)
		return err
	})
	if err != nil {
		slog.Warn("inventory movement not recorded",
			"inventory_id", m.InventoryID,
			"type", m.Type,
			"quantity", m.Quantity.String(),
			"reference_type", m.ReferenceType,
			"reference_id", m.ReferenceID,
			"error", err,
		)
	}
}

// FindMatch implements inventory.InventoryService.
func (s *InventoryServiceImpl) FindMatch(ctx context.Context, criteria inventory.MatchCriteria) (*inventory.Item, error) {
	items, err := s.itemRepo.List(ctx, inventory.ItemFilter{Category: string(criteria.Category)})
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}
	for i := range items {
		if criteria.Matches(items[i]) {
			return &items[i], nil
		}
	}
	return nil, nil
}

// ListMovements implements inventory.InventoryService.
func (s *InventoryServiceImpl) ListMovements(ctx context.Context, itemID string) ([]inventory.Movement, error) {
	if _, err := s.itemRepo.GetByID(ctx, itemID); err != nil {
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}
	movements, err := s.movementRepo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	return movements, nil
}

// LowStock implements inventory.InventoryService.
func (s *InventoryServiceImpl) LowStock(ctx context.Context) ([]inventory.Item, error) {
	items, err := s.itemRepo.List(ctx, inventory.ItemFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}
	low := make([]inventory.Item, 0)
	for _, item := range items {
		if item.IsLowStock() {
			low = append(low, item)
		}
	}
	return low, nil
}

// Reconcile implements inventory.InventoryService.
func (s *InventoryServiceImpl) Reconcile(ctx context.Context, itemID string) (inventory.Discrepancy, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return inventory.Discrepancy{}, fmt.Errorf("failed to get inventory item: %w", err)
	}
	movements, err := s.movementRepo.ListByItem(ctx, itemID)
	if err != nil {
		return inventory.Discrepancy{}, fmt.Errorf("failed to list movements: %w", err)
	}

	d := discrepancy(item, movements)
	if !d.Balanced() {
		return d, &inventory.ConsistencyError{Discrepancies: []inventory.Discrepancy{d}}
	}
	return d, nil
}

// ReconcileAll implements inventory.InventoryService.
func (s *InventoryServiceImpl) ReconcileAll(ctx context.Context) ([]inventory.Discrepancy, error) {
	items, err := s.itemRepo.List(ctx, inventory.ItemFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}
	movements, err := s.movementRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}

	byItem := make(map[string][]inventory.Movement, len(items))
	for _, m := range movements {
		byItem[m.InventoryID] = append(byItem[m.InventoryID], m)
	}

	drifted := make([]inventory.Discrepancy, 0)
	for _, item := range items {
		if d := discrepancy(item, byItem[item.ID]); !d.Balanced() {
			drifted = append(drifted, d)
		}
	}
	if len(drifted) > 0 {
		return drifted, &inventory.ConsistencyError{Discrepancies: drifted}
	}
	return drifted, nil
}

func discrepancy(item inventory.Item, movements []inventory.Movement) inventory.Discrepancy {
	sum := decimal.Zero
	for _, m := range movements {
		sum = sum.Add(m.Signed())
	}
	return inventory.Discrepancy{
		InventoryID: item.ID,
		Name:        item.Name,
		Quantity:    item.Quantity,
		LedgerSum:   sum,
		Drift:       item.Quantity.Sub(sum),
	}
}
