package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nalaaircon/nala-backend/internal/domain/kasbon"
	"github.com/nalaaircon/nala-backend/internal/handler/http/response"
)

type KasbonHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Limit(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
}

type kasbonHandlerImpl struct {
	kasbonService kasbon.KasbonService
}

func NewKasbonHandler(kasbonService kasbon.KasbonService) KasbonHandler {
	return &kasbonHandlerImpl{kasbonService: kasbonService}
}

// List handles GET /kasbon. Technicians only see their own advances.
func (h *kasbonHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	filter := kasbon.KasbonFilter{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Status:     r.URL.Query().Get("status"),
	}
	if !seesEveryone(session) {
		filter.EmployeeID = session.EmployeeID
	}

	items, err := h.kasbonService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, items, len(items))
}

// Create handles POST /kasbon
func (h *kasbonHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req kasbon.CreateKasbonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create kasbon decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.kasbonService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Kasbon recorded successfully", result)
}

// Limit handles GET /kasbon/limit/{employeeID}
func (h *kasbonHandlerImpl) Limit(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	if employeeID != session.EmployeeID && !seesEveryone(session) {
		response.Forbidden(w, "Insufficient permissions to read this kasbon limit")
		return
	}

	limit, err := h.kasbonService.Limit(r.Context(), employeeID, r.URL.Query().Get("period"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, limit)
}

// MarkPaid handles POST /kasbon/{id}/paid
func (h *kasbonHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	result, err := h.kasbonService.MarkPaid(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Kasbon marked as paid", result)
}
