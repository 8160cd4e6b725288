package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nalaaircon/nala-backend/internal/domain/records"
	"github.com/nalaaircon/nala-backend/internal/handler/http/response"
)

// RecordHandler serves customers, projects and bookings under /records/{collection}.
type RecordHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type recordHandlerImpl struct {
	recordService records.RecordService
}

func NewRecordHandler(recordService records.RecordService) RecordHandler {
	return &recordHandlerImpl{recordService: recordService}
}

// List implements RecordHandler. ?filter matches the collection's filter
// field, ?date the service date of bookings.
func (h *recordHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := records.Filter{
		Value: r.URL.Query().Get("filter"),
		Date:  r.URL.Query().Get("date"),
	}

	docs, err := h.recordService.List(r.Context(), chi.URLParam(r, "collection"), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, docs, len(docs))
}

// Get implements RecordHandler.
func (h *recordHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	doc, err := h.recordService.Get(r.Context(), chi.URLParam(r, "collection"), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, doc)
}

// Create implements RecordHandler.
func (h *recordHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var doc records.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		slog.Error("Create record decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.recordService.Create(r.Context(), chi.URLParam(r, "collection"), doc)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Record created successfully", created)
}

// Update implements RecordHandler.
func (h *recordHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var fields records.Document
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		slog.Error("Update record decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.recordService.Update(r.Context(), chi.URLParam(r, "collection"), chi.URLParam(r, "id"), fields)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Record updated successfully", updated)
}

// Delete implements RecordHandler.
func (h *recordHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.recordService.Delete(r.Context(), chi.URLParam(r, "collection"), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Record deleted successfully", nil)
}
