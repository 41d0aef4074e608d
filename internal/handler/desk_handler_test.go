package handler

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hrms-portal/internal/model"
	"hrms-portal/internal/service"
	"hrms-portal/pkg/apierror"
)

func multipartEmployee(t *testing.T, employee string, photo []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if employee != "" {
		require.NoError(t, mw.WriteField("employee", employee))
	}
	if photo != nil {
		part, err := mw.CreateFormFile("photo", "me.png")
		require.NoError(t, err)
		_, err = part.Write(photo)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestEmployeeCreateMultipart(t *testing.T) {
	svc := &mockEmployees{}
	svc.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(e model.Employee) bool {
		return e.FirstName == "Asha" && e.EmployeeCode == "E001"
	}), mock.MatchedBy(func(u *service.Upload) bool {
		if u == nil || u.Filename != "me.png" {
			return false
		}
		b, _ := io.ReadAll(u.Body)
		return string(b) == "png-bytes"
	})).Return(model.Employee{ID: "e-1", FirstName: "Asha", PhotoURL: "/api/v1/employees/e-1/photo"}, nil)

	h := NewEmployeeHandler(svc, 1<<20)
	routes := newRouter(hrClaims(), func(r chi.Router) { r.Post("/employees", h.Create) })

	body, contentType := multipartEmployee(t, `{"employeeCode":"E001","firstName":"Asha"}`, []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/employees", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"photoUrl":"/api/v1/employees/e-1/photo"`)
	svc.AssertExpectations(t)
}

func TestEmployeeCreateRequiresEmployeePart(t *testing.T) {
	svc := &mockEmployees{}
	h := NewEmployeeHandler(svc, 1<<20)
	routes := newRouter(hrClaims(), func(r chi.Router) { r.Post("/employees", h.Create) })

	body, contentType := multipartEmployee(t, "", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/employees", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "employee part is required")

	rec = httptest.NewRecorder()
	routes.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEmployeePhotoServesThumbnail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thumb.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpeg-bytes"), 0o644))
	f, err := os.Open(path)
	require.NoError(t, err)

	svc := &mockEmployees{photo: f}
	svc.On("Photo", "e-1").Return(nil)
	h := NewEmployeeHandler(svc, 1<<20)
	routes := newRouter(employeeClaims("e-9"), func(r chi.Router) { r.Get("/employees/{id}/photo", h.Photo) })

	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employees/e-1/photo", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, "jpeg-bytes", rec.Body.String())
}

func TestAttendanceListScopesByRole(t *testing.T) {
	svc := &mockAttendance{}
	svc.On("List", mock.Anything).Return([]model.Attendance{{ID: "a-1"}, {ID: "a-2"}}, nil)
	svc.On("ListFor", mock.Anything, "e-7").Return([]model.Attendance{{ID: "a-2"}}, nil)
	h := NewAttendanceHandler(svc)

	rec := httptest.NewRecorder()
	newRouter(hrClaims(), func(r chi.Router) { r.Get("/r", h.List) }).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/r", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "a-1")

	rec = httptest.NewRecorder()
	newRouter(employeeClaims("e-7"), func(r chi.Router) { r.Get("/r", h.List) }).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/r", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "a-1")
	svc.AssertExpectations(t)
}

func TestAttendanceReviewAnswersText(t *testing.T) {
	svc := &mockAttendance{}
	svc.On("Approve", mock.Anything, mock.Anything, "a-1").Return(service.MsgRegularizationApproved, nil)
	svc.On("Reject", mock.Anything, mock.Anything, "a-2", model.RejectRequest{Reason: "No proof"}).Return(service.MsgRegularizationRejected, nil)
	svc.On("Request", mock.Anything, mock.Anything, "e-7", model.RegularizationRequest{Date: "2026-03-10", Reason: "Forgot"}).
		Return(model.Attendance{ID: "a-3", Status: model.RegularizationPending}, nil)
	h := NewAttendanceHandler(svc)

	routes := newRouter(employeeClaims("e-7"), func(r chi.Router) {
		r.Post("/r", h.Request)
		r.Put("/r/{id}/approve", h.Approve)
		r.Put("/r/{id}/reject", h.Reject)
	})

	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/r/a-1/approve", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Regularization approved successfully", rec.Body.String())

	rec = httptest.NewRecorder()
	routes.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/r/a-2/reject", strings.NewReader(`{"reason":"No proof"}`)))
	assert.Equal(t, "Regularization rejected successfully", rec.Body.String())

	rec = httptest.NewRecorder()
	routes.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/r", strings.NewReader(`{"date":"2026-03-10","reason":"Forgot"}`)))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"PENDING"`)
	svc.AssertExpectations(t)
}

func TestClockInOutForCaller(t *testing.T) {
	svc := &mockClock{}
	in := model.ClockInRequest{WorkFrom: "OFFICE", Mode: "WEB"}
	svc.On("ClockIn", mock.Anything, mock.Anything, "e-7", in).Return(service.MsgClockedIn, nil).Once()
	svc.On("ClockIn", mock.Anything, mock.Anything, "e-7", in).Return("", apierror.Conflict(service.MsgAlreadyClockedIn)).Once()
	svc.On("Status", mock.Anything, "e-7").
		Return(model.ClockStatus{ClockedIn: true, Entry: &model.ClockEntry{EmployeeID: "e-7", Date: "2026-03-15", ClockInTime: "09:00:00"}}, nil)
	svc.On("ClockOut", mock.Anything, mock.Anything, "e-7").Return(service.MsgClockedOut, nil)
	h := NewClockHandler(svc)

	routes := newRouter(employeeClaims("e-7"), func(r chi.Router) {
		r.Get("/status", h.Status)
		r.Post("/clock-in", h.ClockIn)
		r.Post("/clock-out", h.ClockOut)
	})

	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/clock-in", strings.NewReader(`{"workFrom":"OFFICE","mode":"WEB"}`)))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Clocked in", rec.Body.String())

	rec = httptest.NewRecorder()
	routes.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/clock-in", strings.NewReader(`{"workFrom":"OFFICE","mode":"WEB"}`)))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), `"customMessage":"Clock-in failed, you are already clocked in today"`)

	rec = httptest.NewRecorder()
	routes.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"clockedIn":true`)
	assert.Contains(t, rec.Body.String(), `"clockInTime":"09:00:00"`)

	rec = httptest.NewRecorder()
	routes.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/clock-out", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "You clocked out", rec.Body.String())
	svc.AssertExpectations(t)
}

func TestPayrollViewIsPinnedForEmployees(t *testing.T) {
	svc := &mockPayroll{}
	own := model.PayrollRequest{EmployeeID: "e-7", Month: "Feb", Year: 2026}
	svc.On("View", mock.Anything, own).Return(model.Payroll{ID: "p-1", EmployeeID: "e-7"}, nil)
	h := NewPayrollHandler(svc)
	routes := newRouter(employeeClaims("e-7"), func(r chi.Router) { r.Get("/payroll", h.View) })

	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/payroll?month=Feb&year=2026", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "p-1")

	rec = httptest.NewRecorder()
	routes.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/payroll?employeeId=e-8&month=Feb&year=2026", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"message":"You can only view your own payroll"}`, rec.Body.String())
	svc.AssertNumberOfCalls(t, "View", 1)
}

func TestPayrollViewForFinance(t *testing.T) {
	svc := &mockPayroll{}
	req := model.PayrollRequest{EmployeeID: "e-8", Month: "Mar", Year: 2026}
	svc.On("View", mock.Anything, req).Return(model.Payroll{ID: "p-2"}, nil)
	h := NewPayrollHandler(svc)
	finance := &model.AuthClaims{UserID: "u-fin", Username: "fin", Role: model.RoleFinance}

	rec := httptest.NewRecorder()
	newRouter(finance, func(r chi.Router) { r.Get("/payroll", h.View) }).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/payroll?employeeId=e-8&month=Mar&year=2026", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}
