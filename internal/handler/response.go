package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"hrms-portal/internal/model"
	"hrms-portal/pkg/apierror"
)

const maxJSONBody = 1 << 20

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeText answers with a bare string, as the review endpoints do.
func writeText(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, message)
}

// writeError renders err in the shape the portal expects for its status:
// plain text for not found, the dated customMessage body for validation
// and conflicts, {"message"} otherwise.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := classify(err)

	switch apiErr.Shape {
	case apierror.ShapeText:
		writeText(w, apiErr.HTTPStatus, apiErr.Message)
	case apierror.ShapeCustom:
		now := time.Now()
		writeJSON(w, apiErr.HTTPStatus, model.CustomResponse{
			Date:          now.Format(time.DateOnly),
			Time:          now.Format(time.TimeOnly),
			StatusCode:    apiErr.HTTPStatus,
			Status:        http.StatusText(apiErr.HTTPStatus),
			CustomMessage: apiErr.Message,
			Path:          r.URL.Path,
		})
	default:
		writeJSON(w, apiErr.HTTPStatus, model.MessageResponse{Message: apiErr.Message})
	}
}

func classify(err error) *apierror.APIError {
	var apiErr *apierror.APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.Is(err, model.ErrUnauthorized):
		return apierror.New("UNAUTHORIZED", "Authentication required", "", http.StatusUnauthorized)
	case errors.Is(err, model.ErrForbidden):
		return apierror.New("FORBIDDEN", "Access denied", "", http.StatusForbidden)
	case errors.Is(err, model.ErrUserNotFound):
		return apierror.NotFound("User not found")
	case errors.Is(err, model.ErrRecordNotFound):
		return apierror.NotFound("Record not found")
	case errors.Is(err, model.ErrDuplicateRecord), errors.Is(err, model.ErrUserAlreadyExists):
		return apierror.Conflict("Record already exists")
	case errors.Is(err, model.ErrInvalidInput):
		return apierror.Invalid("Invalid input")
	}

	// Unclassified errors only reach the log.
	slog.Error("unhandled error in writeError", "error", err.Error())
	return apierror.New("INTERNAL_ERROR", "Unexpected server error", "", http.StatusInternalServerError)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	defer r.Body.Close()

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(dst); err != nil {
		writeError(w, r, apierror.Invalid("Invalid JSON body"))
		return false
	}
	return true
}

func parseIntOrDefault(raw string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return value
}
