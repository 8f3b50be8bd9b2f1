package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/correction"
	"github.com/hrmsuite/time-management-backend-go/internal/handler/http/response"
)

type CorrectionHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
	Escalate(w http.ResponseWriter, r *http.Request)
	Resolve(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
}

type CorrectionHandlerImpl struct {
	correctionService correction.Service
}

func NewCorrectionHandler(correctionService correction.Service) CorrectionHandler {
	return &CorrectionHandlerImpl{correctionService: correctionService}
}

// Submit implements CorrectionHandler.
func (h *CorrectionHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req correction.SubmitRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Submit decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if req.EmployeeID == "" {
		if employeeID, ok := claimString(r, "employee_id"); ok {
			req.EmployeeID = employeeID
		}
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.correctionService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Correction request submitted successfully", resp)
}

// Review implements CorrectionHandler.
func (h *CorrectionHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	resp, err := h.correctionService.Review(r.Context(), correction.RequestID(requestID))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Escalate implements CorrectionHandler.
func (h *CorrectionHandlerImpl) Escalate(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	resp, err := h.correctionService.Escalate(r.Context(), correction.RequestID(requestID))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Resolve implements CorrectionHandler.
func (h *CorrectionHandlerImpl) Resolve(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	var req correction.ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Resolve decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.correctionService.Resolve(r.Context(), correction.RequestID(requestID), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// GetRequest implements CorrectionHandler.
func (h *CorrectionHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	resp, err := h.correctionService.GetRequest(r.Context(), correction.RequestID(requestID))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// ListRequests implements CorrectionHandler.
func (h *CorrectionHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	filter := correction.ListFilter{
		EmployeeID:         r.URL.Query().Get("employee_id"),
		AttendanceRecordID: r.URL.Query().Get("attendance_record_id"),
		Status:             r.URL.Query().Get("status"),
		Page:               queryInt(r, "page"),
		Limit:              queryInt(r, "limit"),
	}

	resp, err := h.correctionService.ListRequests(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
