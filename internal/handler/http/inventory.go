package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nalaaircon/nala-backend/internal/domain/inventory"
	"github.com/nalaaircon/nala-backend/internal/handler/http/response"
)

type InventoryHandler interface {
	ListItems(w http.ResponseWriter, r *http.Request)
	GetItem(w http.ResponseWriter, r *http.Request)
	CreateItem(w http.ResponseWriter, r *http.Request)
	UpdateItem(w http.ResponseWriter, r *http.Request)
	DeleteItem(w http.ResponseWriter, r *http.Request)
	StockIn(w http.ResponseWriter, r *http.Request)
	StockOut(w http.ResponseWriter, r *http.Request)
	ListMovements(w http.ResponseWriter, r *http.Request)
	LowStock(w http.ResponseWriter, r *http.Request)
	Reconcile(w http.ResponseWriter, r *http.Request)
	ReconcileAll(w http.ResponseWriter, r *http.Request)
}

type inventoryHandlerImpl struct {
	inventoryService inventory.InventoryService
}

func NewInventoryHandler(inventoryService inventory.InventoryService) InventoryHandler {
	return &inventoryHandlerImpl{inventoryService: inventoryService}
}

// ListItems handles GET /inventory
func (h *inventoryHandlerImpl) ListItems(w http.ResponseWriter, r *http.Request) {
	filter := inventory.ItemFilter{
		Category: r.URL.Query().Get("category"),
		Location: r.URL.Query().Get("location"),
	}

	items, err := h.inventoryService.ListItems(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, items, len(items))
}

// GetItem handles GET /inventory/{id}
func (h *inventoryHandlerImpl) GetItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.inventoryService.GetItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, item)
}

// CreateItem handles POST /inventory
func (h *inventoryHandlerImpl) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req inventory.CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateItem decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	item, err := h.inventoryService.CreateItem(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Inventory item created successfully", item)
}

// UpdateItem handles PUT /inventory/{id}. Quantity only changes through stock movements.
func (h *inventoryHandlerImpl) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req inventory.UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateItem decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	item, err := h.inventoryService.UpdateItem(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Inventory item updated successfully", item)
}

// DeleteItem handles DELETE /inventory/{id}
func (h *inventoryHandlerImpl) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.inventoryService.DeleteItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Inventory item deleted successfully", nil)
}

func (h *inventoryHandlerImpl) decodeStock(w http.ResponseWriter, r *http.Request, op string) (inventory.StockRequest, bool) {
	var req inventory.StockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error(op+" decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return req, false
	}
	req.InventoryID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return req, false
	}
	return req, true
}

// StockIn handles POST /inventory/{id}/stock-in
func (h *inventoryHandlerImpl) StockIn(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeStock(w, r, "StockIn")
	if !ok {
		return
	}

	item, err := h.inventoryService.AddStock(r.Context(), req.InventoryID, req.Quantity, inventory.RefAdjustment, "", req.Notes)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Stock added", item)
}

// StockOut handles POST /inventory/{id}/stock-out
func (h *inventoryHandlerImpl) StockOut(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeStock(w, r, "StockOut")
	if !ok {
		return
	}

	item, err := h.inventoryService.ReduceStock(r.Context(), req.InventoryID, req.Quantity, inventory.RefAdjustment, "", req.Notes)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Stock reduced", item)
}

// ListMovements handles GET /inventory/{id}/movements
func (h *inventoryHandlerImpl) ListMovements(w http.ResponseWriter, r *http.Request) {
	movements, err := h.inventoryService.ListMovements(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, movements, len(movements))
}

// LowStock handles GET /inventory/low-stock
func (h *inventoryHandlerImpl) LowStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventoryService.LowStock(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, items, len(items))
}

// Reconcile handles GET /inventory/{id}/reconcile
func (h *inventoryHandlerImpl) Reconcile(w http.ResponseWriter, r *http.Request) {
	result, err := h.inventoryService.Reconcile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ReconcileAll handles GET /inventory/reconcile. Drifted items are reported
// as a 409 listing every discrepancy.
func (h *inventoryHandlerImpl) ReconcileAll(w http.ResponseWriter, r *http.Request) {
	results, err := h.inventoryService.ReconcileAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, results, len(results))
}
