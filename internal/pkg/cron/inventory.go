package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nalaaircon/nala-backend/internal/domain/inventory"
	"github.com/nalaaircon/nala-backend/internal/pkg/notifier"
)

// InventoryJobs checks the stock ledger and warns about items that run low.
type InventoryJobs struct {
	inventoryService inventory.InventoryService
	notifier         notifier.Notifier
	loc              *time.Location
}

func NewInventoryJobs(inventoryService inventory.InventoryService, n notifier.Notifier, loc *time.Location) *InventoryJobs {
	return &InventoryJobs{inventoryService: inventoryService, notifier: n, loc: loc}
}

// RegisterJobs schedules reconciliation and the low-stock alert once a day
// at the given company-time hours.
func (j *InventoryJobs) RegisterJobs(scheduler *Scheduler, reconcileHour, lowStockHour int) {
	scheduler.AddDailyJob("reconcile_inventory", reconcileHour, j.loc, j.ReconcileInventory)
	scheduler.AddDailyJob("low_stock_alert", lowStockHour, j.loc, j.LowStockAlert)
}

// ReconcileInventory compares every item with its ledger. Drift is reported
// and returned; nothing is corrected automatically.
func (j *InventoryJobs) ReconcileInventory(ctx context.Context) error {
	drifted, err := j.inventoryService.ReconcileAll(ctx)
	if err == nil {
		slog.Info("inventory reconciled")
		return nil
	}

	var consistency *inventory.ConsistencyError
	if !errors.As(err, &consistency) {
		return fmt.Errorf("failed to reconcile inventory: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Selisih stok pada %d barang:\n", len(drifted))
	for _, d := range drifted {
		fmt.Fprintf(&b, "- %s: stok %s, riwayat %s (selisih %s)\n", d.Name, d.Quantity, d.LedgerSum, d.Drift)
	}
	if nerr := j.notifier.Notify(ctx, b.String()); nerr != nil {
		slog.Warn("failed to send reconciliation alert", "error", nerr)
	}
	return err
}

// LowStockAlert sends one message listing every item at or below its
// minimum stock.
func (j *InventoryJobs) LowStockAlert(ctx context.Context) error {
	items, err := j.inventoryService.LowStock(ctx)
	if err != nil {
		return fmt.Errorf("failed to list low stock: %w", err)
	}
	if len(items) == 0 {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Stok menipis (%d barang):\n", len(items))
	for _, item := range items {
		fmt.Fprintf(&b, "- %s (%s): %s %s, minimum %s\n", item.Name, item.Location, item.Quantity, item.Unit, item.MinStock)
	}
	if err := j.notifier.Notify(ctx, b.String()); err != nil {
		return fmt.Errorf("failed to send low stock alert: %w", err)
	}
	slog.Info("low stock alert sent", "items", len(items))
	return nil
}
