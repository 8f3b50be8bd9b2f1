package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hrmsuite/time-management-backend-go/internal/domain/shift"
	"github.com/hrmsuite/time-management-backend-go/internal/handler/http/response"
)

type ShiftHandler interface {
	CreateAssignment(w http.ResponseWriter, r *http.Request)
	ApproveAssignment(w http.ResponseWriter, r *http.Request)
	CancelAssignment(w http.ResponseWriter, r *http.Request)
	ExpireAssignment(w http.ResponseWriter, r *http.Request)
	ScanExpiring(w http.ResponseWriter, r *http.Request)
	NotifyExpiring(w http.ResponseWriter, r *http.Request)
	GetAssignment(w http.ResponseWriter, r *http.Request)
	ListAssignments(w http.ResponseWriter, r *http.Request)
}

type ShiftHandlerImpl struct {
	shiftService shift.Service
}

func NewShiftHandler(shiftService shift.Service) ShiftHandler {
	return &ShiftHandlerImpl{shiftService: shiftService}
}

// CreateAssignment implements ShiftHandler.
func (h *ShiftHandlerImpl) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req shift.CreateAssignmentRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateAssignment decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.shiftService.CreateAssignment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift assignment created successfully", resp)
}

// ApproveAssignment implements ShiftHandler.
func (h *ShiftHandlerImpl) ApproveAssignment(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.shiftService.Approve)
}

// CancelAssignment implements ShiftHandler.
func (h *ShiftHandlerImpl) CancelAssignment(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.shiftService.Cancel)
}

// ExpireAssignment implements ShiftHandler.
func (h *ShiftHandlerImpl) ExpireAssignment(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.shiftService.MarkExpired)
}

func (h *ShiftHandlerImpl) transition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id shift.AssignmentID) (shift.AssignmentResponse, error)) {
	assignmentID := chi.URLParam(r, "id")
	if assignmentID == "" {
		response.BadRequest(w, "Assignment ID is required", nil)
		return
	}

	resp, err := fn(r.Context(), shift.AssignmentID(assignmentID))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// ScanExpiring implements ShiftHandler.
func (h *ShiftHandlerImpl) ScanExpiring(w http.ResponseWriter, r *http.Request) {
	req := shift.ScanExpiringRequest{DaysBeforeExpiry: queryInt(r, "days")}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.shiftService.ScanExpiring(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// NotifyExpiring implements ShiftHandler.
func (h *ShiftHandlerImpl) NotifyExpiring(w http.ResponseWriter, r *http.Request) {
	req := shift.ScanExpiringRequest{DaysBeforeExpiry: queryInt(r, "days")}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.shiftService.NotifyExpiring(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Expiry notifications dispatched", resp)
}

// GetAssignment implements ShiftHandler.
func (h *ShiftHandlerImpl) GetAssignment(w http.ResponseWriter, r *http.Request) {
	assignmentID := chi.URLParam(r, "id")
	if assignmentID == "" {
		response.BadRequest(w, "Assignment ID is required", nil)
		return
	}

	resp, err := h.shiftService.GetAssignment(r.Context(), shift.AssignmentID(assignmentID))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// ListAssignments implements ShiftHandler.
func (h *ShiftHandlerImpl) ListAssignments(w http.ResponseWriter, r *http.Request) {
	filter := shift.ListFilter{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Status:     r.URL.Query().Get("status"),
		ShiftID:    r.URL.Query().Get("shift_id"),
		Page:       queryInt(r, "page"),
		Limit:      queryInt(r, "limit"),
	}

	resp, err := h.shiftService.ListAssignments(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
