package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nalaaircon/nala-backend/internal/domain/leave"
	"github.com/nalaaircon/nala-backend/internal/domain/user"
	"github.com/nalaaircon/nala-backend/internal/handler/http/response"
	"github.com/nalaaircon/nala-backend/internal/service/file"
)

type LeaveHandler interface {
	ListRequests(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	CreateRequest(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
	UploadProof(w http.ResponseWriter, r *http.Request)
	ServeProof(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
	fileService  file.FileService
}

func NewLeaveHandler(leaveService leave.LeaveService, fileService file.FileService) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService: leaveService,
		fileService:  fileService,
	}
}

// ListRequests implements LeaveHandler. Approvers see every request, anyone
// else only their own.
func (l *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	filter := leave.LeaveRequestFilter{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Status:     r.URL.Query().Get("status"),
	}
	if !session.Can(user.PermissionApprove) {
		filter.EmployeeID = session.EmployeeID
	}

	requests, err := l.leaveService.ListLeaveRequest(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, requests, len(requests))
}

// GetRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	request, err := l.leaveService.GetLeaveRequest(r.Context(), requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if request.EmployeeID != session.EmployeeID && !session.Can(user.PermissionApprove) {
		response.HandleError(w, leave.ErrLeaveRequestNotFound)
		return
	}

	response.Success(w, request)
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req leave.CreateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = session.EmployeeID

	request, err := l.leaveService.CreateLeaveRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", request)
}

// ApproveRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	request, err := l.leaveService.ApproveLeaveRequest(r.Context(), chi.URLParam(r, "id"), session.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved", request)
}

// RejectRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req leave.RejectRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RejectRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RequestID = chi.URLParam(r, "id")
	req.DecidedBy = session.EmployeeID

	request, err := l.leaveService.RejectLeaveRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected", request)
}

// UploadProof implements LeaveHandler. The returned URL goes into proof_url
// of a new leave request.
func (l *LeaveHandlerImpl) UploadProof(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, file.MaxProofSize+1<<20)
	if err := r.ParseMultipartForm(file.MaxProofSize); err != nil {
		slog.Error("UploadProof parse error", "error", err)
		response.BadRequest(w, "Invalid multipart form or file too large", nil)
		return
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "File is required", map[string]string{"file": "is required"})
		return
	}
	defer f.Close()

	upload, err := l.fileService.UploadLeaveProof(r.Context(), session.EmployeeID, f, header.Filename)
	if err != nil {
		if errors.Is(err, file.ErrInvalidFileType) || errors.Is(err, file.ErrFileTooLarge) {
			response.BadRequest(w, err.Error(), nil)
			return
		}
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Proof uploaded successfully", upload)
}

// ServeProof implements LeaveHandler. A proof is visible to the employee who
// uploaded it and to approvers; anyone else gets the same 404 as a missing file.
func (l *LeaveHandlerImpl) ServeProof(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	path := chi.URLParam(r, "*")
	owner, ok := file.ProofOwner(path)
	if !ok || (owner != session.EmployeeID && !session.Can(user.PermissionApprove)) {
		response.NotFound(w, "File not found")
		return
	}

	proof, err := l.fileService.OpenLeaveProof(r.Context(), path)
	if err != nil {
		if errors.Is(err, file.ErrFileNotFound) {
			response.NotFound(w, "File not found")
			return
		}
		response.HandleError(w, err)
		return
	}
	defer proof.Content.Close()

	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "private, no-store")
	http.ServeContent(w, r, proof.Name, proof.ModTime, proof.Content)
}
