package workflow

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorPayloadMessage(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", "fallback"},
		{"plain text", "Employee not found", "Employee not found"},
		{"json string", `"Leave type already available"`, "Leave type already available"},
		{"custom beats message", `{"customMessage":"X","message":"Y"}`, "X"},
		{"message", `{"message":"Y"}`, "Y"},
		{"envelope", `{"success":false,"error":{"code":"NOT_FOUND","message":"gone"}}`, "gone"},
		{"error string", `{"error":"Bad Request"}`, "Bad Request"},
		{"blank custom falls through", `{"customMessage":"  ","message":"Y"}`, "Y"},
		{"unknown shape", `{"status":500}`, "fallback"},
		{"array", `[1,2]`, "fallback"},
		{"html", "<html><body>502</body></html>", "fallback"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ErrorPayload{Raw: []byte(tc.raw)}.Message("fallback"))
		})
	}
}

func TestDescribe(t *testing.T) {
	be := &BackendError{Op: "create", Status: 400, Payload: ErrorPayload{Raw: []byte(`{"message":"duplicate"}`)}}

	assert.Equal(t, "duplicate", Describe(be, "fallback"))
	assert.Equal(t, "duplicate", Describe(fmt.Errorf("wrapped: %w", be), "fallback"))
	assert.Equal(t, "fallback", Describe(&TransportError{Op: "create", Err: context.DeadlineExceeded}, "fallback"))
	assert.Equal(t, "fallback", Describe(errors.New("boom"), "fallback"))
}

func TestTransportErrorUnwraps(t *testing.T) {
	err := &TransportError{Op: "list", Err: context.DeadlineExceeded}
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestValidationErrorIsIncomplete(t *testing.T) {
	err := &ValidationError{MissingAttachment: "photo"}
	assert.ErrorIs(t, err, ErrIncomplete)
	assert.Contains(t, err.Error(), "photo")
}

func TestValidationErrorListsFieldsInOrder(t *testing.T) {
	err := &ValidationError{
		Fields:            map[string][]string{"lastName": {"required"}, "dob": {"future"}, "firstName": {"required"}},
		MissingAttachment: "photo",
	}
	for range 5 {
		assert.Equal(t, "form is incomplete: dob, firstName, lastName, photo (attachment)", err.Error())
	}
}
