package expense

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nalaaircon/nala-backend/internal/config"
	"github.com/nalaaircon/nala-backend/internal/domain/expense"
	"github.com/nalaaircon/nala-backend/internal/domain/inventory"
	"github.com/nalaaircon/nala-backend/internal/domain/kasbon"
	"github.com/nalaaircon/nala-backend/internal/pkg/recordstore"
	"github.com/nalaaircon/nala-backend/internal/pkg/validator"
)

type ExpenseServiceImpl struct {
	tx               recordstore.Transactor
	expenseRepo      expense.ExpenseRepository
	itemRepo         inventory.ItemRepository
	movementRepo     inventory.MovementRepository
	inventoryService inventory.InventoryService
	kasbonRepo       kasbon.KasbonRepository
	kasbonService    kasbon.KasbonService
	rules            config.Rules
}

func NewExpenseService(
	tx recordstore.Transactor,
	expenseRepo expense.ExpenseRepository,
	itemRepo inventory.ItemRepository,
	movementRepo inventory.MovementRepository,
	inventoryService inventory.InventoryService,
	kasbonRepo kasbon.KasbonRepository,
	kasbonService kasbon.KasbonService,
	rules config.Rules,
) expense.ExpenseService {
	return &ExpenseServiceImpl{
		tx:               tx,
		expenseRepo:      expenseRepo,
		itemRepo:         itemRepo,
		movementRepo:     movementRepo,
		inventoryService: inventoryService,
		kasbonRepo:       kasbonRepo,
		kasbonService:    kasbonService,
		rules:            rules,
	}
}

// CreateWithInventorySync implements expense.ExpenseService.
func (s *ExpenseServiceImpl) CreateWithInventorySync(ctx context.Context, req expense.CreateExpenseRequest) (expense.Expense, error) {
	if err := req.Validate(); err != nil {
		return expense.Expense{}, err
	}

	var created expense.Expense
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.expenseRepo.Create(ctx, req.ToExpense())
		if err != nil {
			return fmt.Errorf("failed to create expense: %w", err)
		}

		switch created.Category {
		case expense.CategoryMaterial, expense.CategoryUnitAC:
			return s.syncToInventory(ctx, &created)
		case expense.CategoryKasbon:
			return s.syncToKasbon(ctx, &created)
		}
		return nil
	})
	if err != nil {
		return expense.Expense{}, err
	}
	return created, nil
}

// SyncToInventory implements expense.ExpenseService.
func (s *ExpenseServiceImpl) SyncToInventory(ctx context.Context, expenseID string) (expense.Expense, error) {
	var e expense.Expense
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		e, err = s.expenseRepo.GetByID(ctx, expenseID)
		if err != nil {
			return fmt.Errorf("failed to get expense: %w", err)
		}
		return s.syncToInventory(ctx, &e)
	})
	if err != nil {
		return expense.Expense{}, err
	}
	return e, nil
}

// stockTarget describes the inventory item an expense buys.
type stockTarget struct {
	criteria inventory.MatchCriteria
	name     string
	unit     string
	minStock decimal.Decimal
}

// target returns false for expenses that do not buy stock or lack the
// attributes needed to identify the item.
func (s *ExpenseServiceImpl) target(e expense.Expense) (stockTarget, bool) {
	if !e.Quantity.IsPositive() {
		return stockTarget{}, false
	}

	switch e.Category {
	case expense.CategoryMaterial:
		if e.MaterialType == "" {
			return stockTarget{}, false
		}
		name, unit := e.MaterialType, "pcs"
		if m, ok := s.rules.Material(e.MaterialType); ok {
			name, unit = m.Name, m.Unit
		}
		return stockTarget{
			criteria: inventory.MatchCriteria{
				Category: inventory.CategoryMaterial,
				Type:     e.MaterialType,
				Brand:    e.MaterialBrand,
				Size:     e.MaterialSize,
			},
			name:     joinName(name, e.MaterialBrand, e.MaterialSize),
			unit:     unit,
			minStock: decimal.NewFromInt(inventory.DefaultMinStockMaterial),
		}, true

	case expense.CategoryUnitAC:
		if e.ACBrand == "" {
			return stockTarget{}, false
		}
		return stockTarget{
			criteria: inventory.MatchCriteria{
				Category: inventory.CategoryACUnit,
				Brand:    e.ACBrand,
				Type:     e.ACType,
				Capacity: e.ACCapacity,
			},
			name:     joinName("AC", e.ACBrand, e.ACCapacity, e.ACType),
			unit:     "unit",
			minStock: decimal.NewFromInt(inventory.DefaultMinStockACUnit),
		}, true
	}
	return stockTarget{}, false
}

func joinName(parts ...string) string {
	nonEmpty := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}

// UnitPrice is the purchase price of one unit, zero without a quantity. It
// keeps full precision; callers round when they display it.
func UnitPrice(amount, quantity decimal.Decimal) decimal.Decimal {
	if !quantity.IsPositive() {
		return decimal.Zero
	}
	return amount.Div(quantity)
}

// syncToInventory books the purchase into stock. It must run inside a
// transaction. A purchase already on the ledger is never booked twice.
func (s *ExpenseServiceImpl) syncToInventory(ctx context.Context, e *expense.Expense) error {
	target, ok := s.target(*e)
	if !ok {
		slog.Debug("expense not synced to inventory", "expense_id", e.ID, "category", e.Category)
		return nil
	}
	unitPrice := UnitPrice(e.Amount, e.Quantity)

	itemID, err := s.bookedItem(ctx, *e)
	if err != nil {
		return err
	}
	if itemID != "" {
		item, err := s.itemRepo.GetByID(ctx, itemID)
		if err != nil {
			return fmt.Errorf("failed to get synced inventory item: %w", err)
		}
		item.UnitPrice = unitPrice
		if _, err := s.itemRepo.Update(ctx, item); err != nil {
			return fmt.Errorf("failed to update unit price: %w", err)
		}
		return s.markSynced(ctx, e, expense.SyncedToInventory, item.ID)
	}

	item, err := s.inventoryService.FindMatch(ctx, target.criteria)
	if err != nil {
		return err
	}
	if item == nil {
		location := e.Branch
		if location == "" {
			location = s.rules.DefaultBranch
		}
		created, err := s.itemRepo.Create(ctx, inventory.Item{
			Name:      target.name,
			Category:  target.criteria.Category,
			Type:      target.criteria.Type,
			Brand:     target.criteria.Brand,
			Size:      target.criteria.Size,
			Capacity:  target.criteria.Capacity,
			Quantity:  decimal.Zero,
			Unit:      target.unit,
			MinStock:  target.minStock,
			UnitPrice: unitPrice,
			Location:  location,
		})
		if err != nil {
			return fmt.Errorf("failed to create inventory item: %w", err)
		}
		item = &created
		slog.Info("inventory item created from expense", "expense_id", e.ID, "inventory_id", item.ID, "name", item.Name)
	} else {
		item.UnitPrice = unitPrice
		if _, err := s.itemRepo.Update(ctx, *item); err != nil {
			return fmt.Errorf("failed to update unit price: %w", err)
		}
	}

	notes := "Pembelian dari Financing"
	if e.Description != "" {
		notes += ": " + e.Description
	}
	if _, err := s.inventoryService.AddStock(ctx, item.ID, e.Quantity, inventory.RefPurchase, e.ID, notes); err != nil {
		return err
	}
	return s.markSynced(ctx, e, expense.SyncedToInventory, item.ID)
}

// bookedItem returns the item a purchase was already booked into, or "".
func (s *ExpenseServiceImpl) bookedItem(ctx context.Context, e expense.Expense) (string, error) {
	movements, err := s.movementRepo.ListByReference(ctx, inventory.RefPurchase, e.ID, inventory.MovementIn)
	if err != nil {
		return "", fmt.Errorf("failed to list purchase movements: %w", err)
	}
	if len(movements) > 0 {
		return movements[0].InventoryID, nil
	}
	if e.IsSynced(expense.SyncedToInventory) {
		_, err := s.itemRepo.GetByID(ctx, e.SyncedID)
		if errors.Is(err, inventory.ErrItemNotFound) {
			return "", nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to get synced inventory item: %w", err)
		}
		return e.SyncedID, nil
	}
	return "", nil
}

func (s *ExpenseServiceImpl) markSynced(ctx context.Context, e *expense.Expense, target, id string) error {
	if err := s.expenseRepo.MarkSynced(ctx, e.ID, target, id); err != nil {
		return fmt.Errorf("failed to mark expense synced: %w", err)
	}
	e.SyncedTo = target
	e.SyncedID = id
	return nil
}

// syncToKasbon turns a kasbon expense into an active advance.
func (s *ExpenseServiceImpl) syncToKasbon(ctx context.Context, e *expense.Expense) error {
	k, err := s.kasbonService.Create(ctx, kasbon.CreateKasbonRequest{
		EmployeeID: e.EmployeeID,
		Amount:     e.Amount,
		Notes:      e.Description,
		ExpenseID:  e.ID,
	})
	if err != nil {
		return err
	}
	return s.markSynced(ctx, e, expense.SyncedToKasbon, k.ID)
}

// DeleteWithInventorySync implements expense.ExpenseService.
func (s *ExpenseServiceImpl) DeleteWithInventorySync(ctx context.Context, id string) error {
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		e, err := s.expenseRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get expense: %w", err)
		}

		if err := s.reverseStock(ctx, e); err != nil {
			return err
		}
		if err := s.reverseKasbon(ctx, e); err != nil {
			return err
		}

		if err := s.expenseRepo.Delete(ctx, e.ID); err != nil {
			return fmt.Errorf("failed to delete expense: %w", err)
		}
		return nil
	})
}

// reverseStock undoes the stock-in of a purchase. Quantities are floored at
// zero; the part of a reversal absorbed by the floor is booked back as an
// adjustment so the ledger keeps reconciling.
func (s *ExpenseServiceImpl) reverseStock(ctx context.Context, e expense.Expense) error {
	movements, err := s.movementRepo.ListByReference(ctx, inventory.RefPurchase, e.ID, inventory.MovementIn)
	if err != nil {
		return fmt.Errorf("failed to list purchase movements: %w", err)
	}
	if len(movements) == 0 {
		if !e.IsSynced(expense.SyncedToInventory) || !e.Quantity.IsPositive() {
			return nil
		}
		// Ledger row was never written; reverse from the expense itself.
		slog.Warn("reversing expense without ledger rows", "expense_id", e.ID, "inventory_id", e.SyncedID)
		movements = []inventory.Movement{{InventoryID: e.SyncedID, Quantity: e.Quantity}}
	}

	for _, m := range movements {
		item, err := s.itemRepo.GetByID(ctx, m.InventoryID)
		if errors.Is(err, inventory.ErrItemNotFound) {
			slog.Warn("purchase reversal skipped, item no longer exists", "expense_id", e.ID, "inventory_id", m.InventoryID)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to get inventory item: %w", err)
		}

		applied := decimal.Max(decimal.Min(m.Quantity, item.Quantity), decimal.Zero)
		if err := s.itemRepo.UpdateQuantity(ctx, item.ID, item.Quantity.Sub(applied)); err != nil {
			return fmt.Errorf("failed to update stock: %w", err)
		}

		if m.ID == "" {
			continue
		}
		if err := s.movementRepo.Delete(ctx, m.ID); err != nil {
			return fmt.Errorf("failed to delete movement: %w", err)
		}
		if shortfall := m.Quantity.Sub(applied); shortfall.IsPositive() {
			_, err := s.movementRepo.Create(ctx, inventory.Movement{
				InventoryID:   item.ID,
				Type:          inventory.MovementIn,
				Quantity:      shortfall,
				ReferenceType: inventory.RefAdjustment,
				ReferenceID:   e.ID,
				Notes:         "Koreksi pembatalan pembelian",
			})
			if err != nil {
				return fmt.Errorf("failed to record reversal adjustment: %w", err)
			}
		}
	}
	return nil
}

func (s *ExpenseServiceImpl) reverseKasbon(ctx context.Context, e expense.Expense) error {
	if e.Category != expense.CategoryKasbon {
		return nil
	}
	k, err := s.kasbonRepo.GetByExpense(ctx, e.ID)
	if err != nil {
		return fmt.Errorf("failed to get kasbon of expense: %w", err)
	}
	if k == nil {
		return nil
	}
	if k.Status != kasbon.StatusActive {
		slog.Info("kasbon already settled, keeping it", "expense_id", e.ID, "kasbon_id", k.ID)
		return nil
	}
	if err := s.kasbonRepo.Delete(ctx, k.ID); err != nil {
		return fmt.Errorf("failed to delete kasbon: %w", err)
	}
	return nil
}

// GetExpense implements expense.ExpenseService.
func (s *ExpenseServiceImpl) GetExpense(ctx context.Context, id string) (expense.Expense, error) {
	e, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return expense.Expense{}, fmt.Errorf("failed to get expense: %w", err)
	}
	return e, nil
}

// ListExpenses implements expense.ExpenseService.
func (s *ExpenseServiceImpl) ListExpenses(ctx context.Context, filter expense.ExpenseFilter) ([]expense.Expense, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	items, err := s.expenseRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return items, nil
}

// Summary implements expense.ExpenseService.
func (s *ExpenseServiceImpl) Summary(ctx context.Context, period string) (expense.Summary, error) {
	from, to, err := validator.PeriodRange(period)
	if err != nil {
		return expense.Summary{}, validator.ValidationErrors{{Field: "period", Message: "must be in YYYY-MM format"}}
	}

	items, err := s.expenseRepo.List(ctx, expense.ExpenseFilter{From: from, To: to})
	if err != nil {
		return expense.Summary{}, fmt.Errorf("failed to list expenses: %w", err)
	}

	summary := expense.Summary{
		Period:     period,
		Total:      decimal.Zero,
		ByCategory: make(map[expense.Category]decimal.Decimal),
		ByBranch:   make(map[string]decimal.Decimal),
	}
	for _, e := range items {
		summary.Total = summary.Total.Add(e.Amount)
		summary.Count++
		summary.ByCategory[e.Category] = summary.ByCategory[e.Category].Add(e.Amount)
		branch := e.Branch
		if branch == "" {
			branch = s.rules.DefaultBranch
		}
		summary.ByBranch[branch] = summary.ByBranch[branch].Add(e.Amount)
	}
	return summary, nil
}
