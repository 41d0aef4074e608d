package handler

import (
	"context"
	"net/http"

	"hrms-portal/internal/model"
)

type clockService interface {
	Status(ctx context.Context, employeeID string) (model.ClockStatus, error)
	ClockIn(ctx context.Context, actor model.AuditActor, employeeID string, req model.ClockInRequest) (string, error)
	ClockOut(ctx context.Context, actor model.AuditActor, employeeID string) (string, error)
}

// ClockHandler serves the caller's own daily clock-in and clock-out.
type ClockHandler struct {
	service clockService
}

func NewClockHandler(service clockService) *ClockHandler {
	return &ClockHandler{service: service}
}

func (h *ClockHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Status(r.Context(), employeeOf(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *ClockHandler) ClockIn(w http.ResponseWriter, r *http.Request) {
	var payload model.ClockInRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	msg, err := h.service.ClockIn(r.Context(), actorFromRequest(r), employeeOf(r), payload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeText(w, http.StatusCreated, msg)
}

func (h *ClockHandler) ClockOut(w http.ResponseWriter, r *http.Request) {
	msg, err := h.service.ClockOut(r.Context(), actorFromRequest(r), employeeOf(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeText(w, http.StatusOK, msg)
}
