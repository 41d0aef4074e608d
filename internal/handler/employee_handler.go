package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrms-portal/internal/model"
	"hrms-portal/internal/service"
	"hrms-portal/pkg/apierror"
)

type employeeService interface {
	List(ctx context.Context) ([]model.Employee, error)
	Get(ctx context.Context, id string) (model.Employee, error)
	Create(ctx context.Context, actor model.AuditActor, emp model.Employee, photo *service.Upload) (model.Employee, error)
	Update(ctx context.Context, actor model.AuditActor, id string, emp model.Employee) (model.Employee, error)
	Delete(ctx context.Context, actor model.AuditActor, id string) error
	Photo(id string) (*os.File, os.FileInfo, error)
}

type EmployeeHandler struct {
	service       employeeService
	maxUploadSize int64
}

func NewEmployeeHandler(service employeeService, maxUploadSize int64) *EmployeeHandler {
	return &EmployeeHandler{service: service, maxUploadSize: maxUploadSize}
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	emp, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, emp)
}

// Create reads a multipart body: the employee JSON in the "employee" part
// and the picture in the "photo" part.
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+maxJSONBody)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, apierror.New("PAYLOAD_TOO_LARGE", "Photo exceeds the maximum upload size", "", http.StatusRequestEntityTooLarge))
			return
		}
		writeError(w, r, apierror.Invalid("Expected a multipart body with employee and photo parts"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	raw := r.FormValue("employee")
	if strings.TrimSpace(raw) == "" {
		writeError(w, r, apierror.Invalid("employee part is required"))
		return
	}
	var emp model.Employee
	if err := json.Unmarshal([]byte(raw), &emp); err != nil {
		writeError(w, r, apierror.Invalid("Invalid employee JSON"))
		return
	}

	var upload *service.Upload
	if file, header, err := r.FormFile("photo"); err == nil {
		defer file.Close()
		upload = &service.Upload{Filename: header.Filename, Body: file}
	}

	created, err := h.service.Create(r.Context(), actorFromRequest(r), emp, upload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload model.Employee
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

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), actorFromRequest(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EmployeeHandler) Photo(w http.ResponseWriter, r *http.Request) {
	file, info, err := h.service.Photo(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "private, max-age=300")
	http.ServeContent(w, r, info.Name(), info.ModTime(), file)
}
