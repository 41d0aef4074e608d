package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrms-portal/internal/model"
)

type recordService[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, actor model.AuditActor, rec T) (T, error)
	Update(ctx context.Context, actor model.AuditActor, id string, rec T) (T, error)
	Delete(ctx context.Context, actor model.AuditActor, id string) error
}

// RecordHandler serves the plain CRUD collections: benefits, compliances,
// departments and leave types.
type RecordHandler[T any] struct {
	service recordService[T]
}

func NewRecordHandler[T any](service recordService[T]) *RecordHandler[T] {
	return &RecordHandler[T]{service: service}
}

func (h *RecordHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *RecordHandler[T]) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *RecordHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	var payload T
	if !decodeJSON(w, r, &payload) {
		return
	}

	created, err := h.service.Create(r.Context(), actorFromRequest(r), payload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *RecordHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	var payload T
	if !decodeJSON(w, r, &payload) {
		return
	}

	updated, err := h.service.Update(r.Context(), actorFromRequest(r), chi.URLParam(r, "id"), payload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete answers 204 with no body.
func (h *RecordHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), actorFromRequest(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
