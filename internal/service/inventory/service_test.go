package inventory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nalaaircon/nala-backend/internal/domain/inventory"
	"github.com/nalaaircon/nala-backend/internal/pkg/recordstore"
	"github.com/nalaaircon/nala-backend/internal/pkg/recordstore/recordstoretest"
	"github.com/nalaaircon/nala-backend/internal/repository/record"
)

func newTestService(store recordstore.Store) inventory.InventoryService {
	return NewInventoryService(store, record.NewItemRepository(store), record.NewMovementRepository(store))
}

func createItem(t *testing.T, svc inventory.InventoryService, req inventory.CreateItemRequest) inventory.Item {
	t.Helper()
	if req.Unit == "" {
		req.Unit = "meter"
	}
	if req.Category == "" {
		req.Category = string(inventory.CategoryMaterial)
	}
	item, err := svc.CreateItem(context.Background(), req)
	require.NoError(t, err)
	return item
}

func TestInventoryService_CreateItemBooksOpeningStock(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(recordstore.NewMemoryStore())

	item := createItem(t, svc, inventory.CreateItemRequest{Name: "Pipa AC", Type: "pipa", Quantity: decimal.NewFromInt(25)})
	assert.Equal(t, "25", item.Quantity.String())

	movements, err := svc.ListMovements(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, inventory.RefInitial, movements[0].ReferenceType)

	d, err := svc.Reconcile(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, d.Balanced())
}

func TestInventoryService_AddThenReduceRestoresQuantity(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(recordstore.NewMemoryStore())
	item := createItem(t, svc, inventory.CreateItemRequest{Name: "Freon", Unit: "kg", Quantity: decimal.NewFromInt(4)})

	for _, n := range []string{"1", "3", "10", "0.75"} {
		qty := decimal.RequireFromString(n)
		_, err := svc.AddStock(ctx, item.ID, qty, inventory.RefPurchase, "exp", "")
		require.NoError(t, err)
		after, err := svc.ReduceStock(ctx, item.ID, qty, inventory.RefProject, "job", "")
		require.NoError(t, err)
		assert.Equal(t, "4", after.Quantity.String(), "qty=%s", n)
	}

	_, err := svc.Reconcile(ctx, item.ID)
	assert.NoError(t, err)
}

func TestInventoryService_ReduceStockFloorsAtZero(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(recordstore.NewMemoryStore())
	item := createItem(t, svc, inventory.CreateItemRequest{Name: "Bracket", Unit: "pcs", Quantity: decimal.NewFromInt(3)})

	after, err := svc.ReduceStock(ctx, item.ID, decimal.NewFromInt(5), inventory.RefProject, "job-1", "")
	require.NoError(t, err)
	assert.Equal(t, "0", after.Quantity.String())

	movements, err := svc.ListMovements(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, movements, 2)
	assert.Equal(t, inventory.MovementOut, movements[0].Type)
	assert.Equal(t, "3", movements[0].Quantity.String())

	// Nothing left to remove: no movement is written.
	_, err = svc.ReduceStock(ctx, item.ID, decimal.NewFromInt(2), inventory.RefProject, "job-2", "")
	require.NoError(t, err)
	movements, err = svc.ListMovements(ctx, item.ID)
	require.NoError(t, err)
	assert.Len(t, movements, 2)

	_, err = svc.Reconcile(ctx, item.ID)
	assert.NoError(t, err)
}

func TestInventoryService_RejectsInvalidStockChanges(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(recordstore.NewMemoryStore())

	_, err := svc.AddStock(ctx, "missing", decimal.NewFromInt(1), inventory.RefPurchase, "x", "")
	assert.ErrorIs(t, err, inventory.ErrItemNotFound)

	_, err = svc.ReduceStock(ctx, "missing", decimal.NewFromInt(0), inventory.RefProject, "x", "")
	assert.ErrorIs(t, err, inventory.ErrInvalidQuantity)
}

func TestInventoryService_MovementFailureKeepsQuantity(t *testing.T) {
	ctx := context.Background()
	store := recordstoretest.NewFlakyStore()
	svc := newTestService(store)
	item := createItem(t, svc, inventory.CreateItemRequest{Name: "Kabel", Quantity: decimal.NewFromInt(0)})

	store.FailOn(recordstoretest.OpCreate, recordstore.InventoryMovements, 1)
	after, err := svc.AddStock(ctx, item.ID, decimal.NewFromInt(7), inventory.RefPurchase, "exp-1", "")
	require.NoError(t, err)
	assert.Equal(t, "7", after.Quantity.String())

	stored, err := svc.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "7", stored.Quantity.String())

	d, err := svc.Reconcile(ctx, item.ID)
	assert.ErrorIs(t, err, inventory.ErrConsistencyViolation)
	assert.Equal(t, "7", d.Drift.String())

	drifted, err := svc.ReconcileAll(ctx)
	assert.ErrorIs(t, err, inventory.ErrConsistencyViolation)
	require.Len(t, drifted, 1)
	assert.Equal(t, item.ID, drifted[0].InventoryID)
}

func TestInventoryService_FindMatchTreatsEmptyAttributesAsWildcards(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(recordstore.NewMemoryStore())
	createItem(t, svc, inventory.CreateItemRequest{Name: "Pipa AC 1/4", Type: "pipa", Size: "1/4"})
	daikin := createItem(t, svc, inventory.CreateItemRequest{
		Name: "AC Daikin 1PK Split", Category: string(inventory.CategoryACUnit), Unit: "unit",
		Brand: "Daikin", Type: "Split", Capacity: "1PK",
	})

	found, err := svc.FindMatch(ctx, inventory.MatchCriteria{Category: inventory.CategoryMaterial, Type: "pipa"})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "1/4", found.Size)

	found, err = svc.FindMatch(ctx, inventory.MatchCriteria{Category: inventory.CategoryACUnit, Brand: "Daikin"})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, daikin.ID, found.ID)

	found, err = svc.FindMatch(ctx, inventory.MatchCriteria{Category: inventory.CategoryMaterial, Type: "pipa", Size: "3/8"})
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestInventoryService_LowStockAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(recordstore.NewMemoryStore())
	low := createItem(t, svc, inventory.CreateItemRequest{Name: "Ducktape", Unit: "roll", Quantity: decimal.NewFromInt(2), MinStock: decimal.NewFromInt(5)})
	createItem(t, svc, inventory.CreateItemRequest{Name: "Isolasi", Unit: "roll", Quantity: decimal.NewFromInt(20), MinStock: decimal.NewFromInt(5),
		UnitPrice: decimal.NewFromInt(15000)})

	items, err := svc.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, low.ID, items[0].ID)

	require.NoError(t, svc.DeleteItem(ctx, low.ID))
	_, err = svc.GetItem(ctx, low.ID)
	assert.ErrorIs(t, err, inventory.ErrItemNotFound)

	drifted, err := svc.ReconcileAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, drifted)
}
