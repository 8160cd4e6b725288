package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nalaaircon/nala-backend/internal/domain/payroll"
	"github.com/nalaaircon/nala-backend/internal/handler/http/response"
	payrollsvc "github.com/nalaaircon/nala-backend/internal/service/payroll"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type PayrollHandler interface {
	Preview(w http.ResponseWriter, r *http.Request)
	GenerateSlip(w http.ResponseWriter, r *http.Request)
	GetSlip(w http.ResponseWriter, r *http.Request)
	ListSlips(w http.ResponseWriter, r *http.Request)
	ExportSlips(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
	calc           *payrollsvc.Calculator
}

func NewPayrollHandler(payrollService payroll.PayrollService, calc *payrollsvc.Calculator) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService, calc: calc}
}

// Preview handles POST /payroll/preview; nothing is stored.
func (h *payrollHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	var req payroll.PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Preview decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.Preview(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GenerateSlip handles POST /payroll/slips
func (h *payrollHandlerImpl) GenerateSlip(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req payroll.GenerateSlipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("GenerateSlip decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.GeneratedBy = session.EmployeeID

	slip, err := h.payrollService.GenerateSlip(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary slip generated successfully", slip)
}

// GetSlip handles GET /payroll/slips/{id}
func (h *payrollHandlerImpl) GetSlip(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	slip, err := h.payrollService.GetSlip(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if slip.EmployeeID != session.EmployeeID && !seesEveryone(session) {
		response.HandleError(w, payroll.ErrSalarySlipNotFound)
		return
	}

	response.Success(w, slip)
}

// ListSlips handles GET /payroll/slips. Technicians only see their own slips.
func (h *payrollHandlerImpl) ListSlips(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	filter := payroll.SlipFilter{
		Period:     r.URL.Query().Get("period"),
		EmployeeID: r.URL.Query().Get("employee_id"),
	}
	if !seesEveryone(session) {
		filter.EmployeeID = session.EmployeeID
	}

	slips, err := h.payrollService.ListSlips(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, slips, len(slips))
}

// ExportSlips handles GET /payroll/slips/export and sends an xlsx workbook.
func (h *payrollHandlerImpl) ExportSlips(w http.ResponseWriter, r *http.Request) {
	period := periodParam(r, h.calc)

	body, err := h.payrollService.ExportSlips(r.Context(), period)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, "slip-gaji-"+period+".xlsx", xlsxContentType, body)
}
