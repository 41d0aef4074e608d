package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms-portal/internal/model"
)

type staticValidator map[string]*model.AuthClaims

func (v staticValidator) ValidateToken(token string) (*model.AuthClaims, error) {
	if c, ok := v[token]; ok {
		return c, nil
	}
	return nil, errors.New("bad token")
}

func TestRequireAuthAndRoles(t *testing.T) {
	auth := NewAuthMiddleware(staticValidator{
		"hr":  {UserID: "u1", Role: "HR"},
		"emp": {UserID: "u2", Role: "EMPLOYEE"},
	})

	var seen *model.AuthClaims
	h := auth.RequireAuth(auth.RequireRoles("admin", "hr")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})))

	call := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/benefits/b1", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	rec := call("")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Missing or invalid authorization header"}`, rec.Body.String())

	assert.Equal(t, http.StatusUnauthorized, call("Bearer nope").Code)

	rec = call("Bearer emp")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"message":"Access denied"}`, rec.Body.String())

	rec = call("bearer hr")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "u1", seen.UserID)
}

func TestWebsocketQueryToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ws?token=abc", nil)
	assert.Empty(t, bearerToken(req))

	req.Header.Set("Upgrade", "websocket")
	assert.Equal(t, "abc", bearerToken(req))
}

func TestRecoveryWritesMessage(t *testing.T) {
	h := Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Unexpected server error"}`, rec.Body.String())
}
