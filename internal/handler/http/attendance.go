package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/nalaaircon/nala-backend/internal/domain/attendance"
	"github.com/nalaaircon/nala-backend/internal/handler/http/response"
	"github.com/nalaaircon/nala-backend/internal/pkg/geo"
	"github.com/nalaaircon/nala-backend/internal/service/payroll"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	calc              *payroll.Calculator
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, calc *payroll.Calculator) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		calc:              calc,
	}
}

// ClockIn handles POST /attendance/check-in. The body is the device's
// geolocation report: coordinates or the error code of its GPS API.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	var report geo.Report
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		slog.Error("ClockIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.ClockIn(r.Context(), attendance.ClockInRequest{
		EmployeeID: session.EmployeeID,
		Locator:    report,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in successfully", result)
}

// ClockOut handles POST /attendance/check-out. The location is optional.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	req := attendance.ClockOutRequest{EmployeeID: session.EmployeeID}

	var report geo.Report
	switch err := json.NewDecoder(r.Body).Decode(&report); {
	case err == nil:
		req.Locator = report
	case errors.Is(err, io.EOF):
	default:
		slog.Error("ClockOut decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.ClockOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out successfully", result)
}

// Today handles GET /attendance/today
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.Today(r.Context(), session.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyAttendance handles GET /attendance/me
func (h *attendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	filter := attendance.MyAttendanceFilter{
		EmployeeID: session.EmployeeID,
		From:       r.URL.Query().Get("from"),
		To:         r.URL.Query().Get("to"),
	}

	records, err := h.attendanceService.GetMyAttendance(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, records, len(records))
}

// List handles GET /attendance
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter attendance.AttendanceFilter
	filter.Date = r.URL.Query().Get("date")
	filter.Branch = r.URL.Query().Get("branch")

	records, err := h.attendanceService.ListAttendance(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, records, len(records))
}

// Summary handles GET /attendance/summary. Callers without approval rights
// only see their own period.
func (h *attendanceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	employeeID := session.EmployeeID
	if id := r.URL.Query().Get("employee_id"); id != "" && seesEveryone(session) {
		employeeID = id
	}

	summary, err := h.attendanceService.Summarize(r.Context(), employeeID, periodParam(r, h.calc))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}
