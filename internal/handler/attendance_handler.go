package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrms-portal/internal/model"
)

type attendanceService interface {
	List(ctx context.Context) ([]model.Attendance, error)
	ListFor(ctx context.Context, employeeID string) ([]model.Attendance, error)
	Request(ctx context.Context, actor model.AuditActor, employeeID string, req model.RegularizationRequest) (model.Attendance, error)
	Approve(ctx context.Context, actor model.AuditActor, id string) (string, error)
	Reject(ctx context.Context, actor model.AuditActor, id string, req model.RejectRequest) (string, error)
}

type AttendanceHandler struct {
	service attendanceService
}

func NewAttendanceHandler(service attendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: service}
}

// List returns every request to reviewers and only the caller's own
// requests to everyone else.
func (h *AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		items []model.Attendance
		err   error
	)
	if hasRole(r, model.RoleAdmin, model.RoleHR, model.RoleManager) {
		items, err = h.service.List(r.Context())
	} else {
		items, err = h.service.ListFor(r.Context(), employeeOf(r))
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *AttendanceHandler) Request(w http.ResponseWriter, r *http.Request) {
	var payload model.RegularizationRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	created, err := h.service.Request(r.Context(), actorFromRequest(r), employeeOf(r), payload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *AttendanceHandler) Approve(w http.ResponseWriter, r *http.Request) {
	msg, err := h.service.Approve(r.Context(), actorFromRequest(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeText(w, http.StatusOK, msg)
}

func (h *AttendanceHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var payload model.RejectRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	msg, err := h.service.Reject(r.Context(), actorFromRequest(r), chi.URLParam(r, "id"), payload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeText(w, http.StatusOK, msg)
}
