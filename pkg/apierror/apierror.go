package apierror

import (
	"fmt"
	"net/http"
)

// Shape selects how an error is rendered on the wire.
type Shape int

const (
	// ShapeMessage renders {"message": ...}.
	ShapeMessage Shape = iota
	// ShapeText renders the message as a plain text body.
	ShapeText
	// ShapeCustom renders the dated validation body with customMessage.
	ShapeCustom
)

type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	HTTPStatus int    `json:"-"`
	Shape      Shape  `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New builds an error whose shape follows its status: 404 as plain text, 400
// as a custom validation body, anything else as a message object.
func New(code string, message string, details string, status int) *APIError {
	shape := ShapeMessage
	switch status {
	case http.StatusNotFound:
		shape = ShapeText
	case http.StatusBadRequest:
		shape = ShapeCustom
	}
	return &APIError{Code: code, Message: message, Details: details, HTTPStatus: status, Shape: shape}
}

// WithShape returns a copy rendered with s.
func (e *APIError) WithShape(s Shape) *APIError {
	cp := *e
	cp.Shape = s
	return &cp
}

func NotFound(message string) *APIError {
	return New("NOT_FOUND", message, "", http.StatusNotFound)
}

func Invalid(message string) *APIError {
	return New("VALIDATION_ERROR", message, "", http.StatusBadRequest)
}

func Conflict(message string) *APIError {
	return New("CONFLICT", message, "", http.StatusConflict).WithShape(ShapeCustom)
}
