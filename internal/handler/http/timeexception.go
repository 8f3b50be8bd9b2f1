package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/timeexception"
	"github.com/hrmsuite/time-management-backend-go/internal/handler/http/response"
)

type TimeExceptionHandler interface {
	Transition(w http.ResponseWriter, r *http.Request)
	CreateManual(w http.ResponseWriter, r *http.Request)
	GetException(w http.ResponseWriter, r *http.Request)
	ListExceptions(w http.ResponseWriter, r *http.Request)
}

type TimeExceptionHandlerImpl struct {
	exceptionService timeexception.Service
}

func NewTimeExceptionHandler(exceptionService timeexception.Service) TimeExceptionHandler {
	return &TimeExceptionHandlerImpl{exceptionService: exceptionService}
}

// Transition implements TimeExceptionHandler.
func (h *TimeExceptionHandlerImpl) Transition(w http.ResponseWriter, r *http.Request) {
	exceptionID := chi.URLParam(r, "id")
	if exceptionID == "" {
		response.BadRequest(w, "Exception ID is required", nil)
		return
	}

	var req timeexception.TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Transition decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// The acting reviewer defaults to the authenticated account.
	if req.ActorID == "" {
		if actorID, ok := claimString(r, "employee_id"); ok {
			req.ActorID = actorID
		}
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.exceptionService.Transition(r.Context(), timeexception.ExceptionID(exceptionID), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// CreateManual implements TimeExceptionHandler.
func (h *TimeExceptionHandlerImpl) CreateManual(w http.ResponseWriter, r *http.Request) {
	var req timeexception.CreateManualRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateManual decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.exceptionService.CreateManual(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Time exception created successfully", resp)
}

// GetException implements TimeExceptionHandler.
func (h *TimeExceptionHandlerImpl) GetException(w http.ResponseWriter, r *http.Request) {
	exceptionID := chi.URLParam(r, "id")
	if exceptionID == "" {
		response.BadRequest(w, "Exception ID is required", nil)
		return
	}

	resp, err := h.exceptionService.GetException(r.Context(), timeexception.ExceptionID(exceptionID))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// ListExceptions implements TimeExceptionHandler.
func (h *TimeExceptionHandlerImpl) ListExceptions(w http.ResponseWriter, r *http.Request) {
	filter := timeexception.ListFilter{
		EmployeeID:         r.URL.Query().Get("employee_id"),
		AssignedTo:         r.URL.Query().Get("assigned_to"),
		Status:             r.URL.Query().Get("status"),
		Kind:               r.URL.Query().Get("kind"),
		AttendanceRecordID: r.URL.Query().Get("attendance_record_id"),
		Page:               queryInt(r, "page"),
		Limit:              queryInt(r, "limit"),
	}

	resp, err := h.exceptionService.ListExceptions(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
