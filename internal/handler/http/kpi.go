package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nalaaircon/nala-backend/internal/domain/kpi"
	"github.com/nalaaircon/nala-backend/internal/handler/http/response"
	"github.com/nalaaircon/nala-backend/internal/service/payroll"
)

type KPIHandler interface {
	Summaries(w http.ResponseWriter, r *http.Request)
	GetRecord(w http.ResponseWriter, r *http.Request)
	Upsert(w http.ResponseWriter, r *http.Request)
	RecordJob(w http.ResponseWriter, r *http.Request)
	ReverseJob(w http.ResponseWriter, r *http.Request)
}

type kpiHandlerImpl struct {
	kpiService kpi.KPIService
	calc       *payroll.Calculator
}

func NewKPIHandler(kpiService kpi.KPIService, calc *payroll.Calculator) KPIHandler {
	return &kpiHandlerImpl{kpiService: kpiService, calc: calc}
}

// Summaries handles GET /kpi
func (h *kpiHandlerImpl) Summaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.kpiService.Summaries(r.Context(), periodParam(r, h.calc))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, summaries, len(summaries))
}

// GetRecord handles GET /kpi/{employeeID}
func (h *kpiHandlerImpl) GetRecord(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	if employeeID != session.EmployeeID && !seesEveryone(session) {
		response.Forbidden(w, "Insufficient permissions to read this KPI record")
		return
	}

	record, err := h.kpiService.GetRecord(r.Context(), employeeID, periodParam(r, h.calc))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, record)
}

// Upsert handles PUT /kpi/{employeeID}
func (h *kpiHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	var req kpi.UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Upsert KPI decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeID")

	record, err := h.kpiService.Upsert(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "KPI record saved", record)
}

// RecordJob handles POST /kpi/jobs
func (h *kpiHandlerImpl) RecordJob(w http.ResponseWriter, r *http.Request) {
	var req kpi.JobCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RecordJob decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.kpiService.RecordJobCompletion(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Job completion recorded", result)
}

// ReverseJob handles POST /kpi/jobs/reverse
func (h *kpiHandlerImpl) ReverseJob(w http.ResponseWriter, r *http.Request) {
	var req kpi.ReverseJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ReverseJob decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	record, err := h.kpiService.ReverseJobCompletion(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Job completion reversed", record)
}
