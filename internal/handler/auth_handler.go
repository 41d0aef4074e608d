package handler

import (
	"context"
	"net/http"

	"hrms-portal/internal/model"
)

type authService interface {
	Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error)
	Register(ctx context.Context, req model.RegisterRequest) (model.RegisteredUser, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

type AuthHandler struct {
	service authService
	audit   auditLogger
}

func NewAuthHandler(service authService, audit auditLogger) *AuthHandler {
	return &AuthHandler{service: service, audit: audit}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload model.LoginRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	resp, err := h.service.Login(r.Context(), payload)
	actor := model.AuditActor{UserID: resp.UserID, Username: payload.Username, Role: resp.Role, IP: clientIP(r)}
	h.audit.Outcome(r.Context(), "auth.login", actor, "user/"+payload.Username, nil, nil, err)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload model.RegisterRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	user, err := h.service.Register(r.Context(), payload)
	h.audit.Outcome(r.Context(), "auth.register", actorFromRequest(r), "user/"+payload.Username, nil, user.User, err)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}
