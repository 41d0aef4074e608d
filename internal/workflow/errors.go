package workflow

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

var (
	ErrIncomplete     = errors.New("form is incomplete")
	ErrSubmitInFlight = errors.New("submit already in flight")
	ErrDeclined       = errors.New("confirmation declined")
	ErrNotInitialized = errors.New("controller not initialized")
)

// ValidationError is a local failure: the form or its attachment did not
// satisfy the predicates, and nothing was sent.
type ValidationError struct {
	Fields            map[string][]string
	MissingAttachment string
}

func (e *ValidationError) Error() string {
	names := slices.Sorted(maps.Keys(e.Fields))
	if e.MissingAttachment != "" {
		names = append(names, e.MissingAttachment+" (attachment)")
	}
	return fmt.Sprintf("form is incomplete: %s", strings.Join(names, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrIncomplete
}

// BackendError is a structured rejection from the backend.
type BackendError struct {
	Op      string
	Status  int
	Payload ErrorPayload
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s rejected with status %d: %s", e.Op, e.Status, e.Payload.Message("no message"))
}

// TransportError means no structured payload arrived (network, timeout,
// undecodable response).
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ErrorPayload is the loosely structured body of a rejected request.
type ErrorPayload struct {
	Raw []byte
}

// Message extracts the most specific human-readable text, in order: a plain
// string body, customMessage, message, error.message, error. Anything else
// yields fallback.
func (p ErrorPayload) Message(fallback string) string {
	raw := bytes.TrimSpace(p.Raw)
	if len(raw) == 0 {
		return fallback
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		// Non-JSON bodies are plain text unless they look like markup.
		if raw[0] == '<' {
			return fallback
		}
		return string(raw)
	}

	switch v := decoded.(type) {
	case string:
		if strings.TrimSpace(v) != "" {
			return v
		}
	case map[string]any:
		if s := stringField(v, "customMessage"); s != "" {
			return s
		}
		if s := stringField(v, "message"); s != "" {
			return s
		}
		if nested, ok := v["error"].(map[string]any); ok {
			if s := stringField(nested, "message"); s != "" {
				return s
			}
		}
		if s := stringField(v, "error"); s != "" {
			return s
		}
	}

	return fallback
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}

// Describe turns any error from a backend call into user-facing text.
func Describe(err error, fallback string) string {
	var be *BackendError
	if errors.As(err, &be) {
		return be.Payload.Message(fallback)
	}
	return fallback
}
