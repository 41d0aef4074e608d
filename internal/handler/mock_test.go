package handler

import (
	"context"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"

	"hrms-portal/internal/middleware"
	"hrms-portal/internal/model"
	"hrms-portal/internal/service"
)

type mockBenefits struct {
	mock.Mock
}

func (m *mockBenefits) List(ctx context.Context) ([]model.Benefit, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]model.Benefit), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBenefits) Get(ctx context.Context, id string) (model.Benefit, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Benefit), args.Error(1)
}

func (m *mockBenefits) Create(ctx context.Context, actor model.AuditActor, rec model.Benefit) (model.Benefit, error) {
	args := m.Called(ctx, actor, rec)
	return args.Get(0).(model.Benefit), args.Error(1)
}

func (m *mockBenefits) Update(ctx context.Context, actor model.AuditActor, id string, rec model.Benefit) (model.Benefit, error) {
	args := m.Called(ctx, actor, id, rec)
	return args.Get(0).(model.Benefit), args.Error(1)
}

func (m *mockBenefits) Delete(ctx context.Context, actor model.AuditActor, id string) error {
	return m.Called(ctx, actor, id).Error(0)
}

type mockEmployees struct {
	mock.Mock
	photo *os.File
}

func (m *mockEmployees) List(ctx context.Context) ([]model.Employee, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Employee), args.Error(1)
}

func (m *mockEmployees) Get(ctx context.Context, id string) (model.Employee, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Employee), args.Error(1)
}

func (m *mockEmployees) Create(ctx context.Context, actor model.AuditActor, emp model.Employee, photo *service.Upload) (model.Employee, error) {
	args := m.Called(ctx, actor, emp, photo)
	return args.Get(0).(model.Employee), args.Error(1)
}

func (m *mockEmployees) Update(ctx context.Context, actor model.AuditActor, id string, emp model.Employee) (model.Employee, error) {
	args := m.Called(ctx, actor, id, emp)
	return args.Get(0).(model.Employee), args.Error(1)
}

func (m *mockEmployees) Delete(ctx context.Context, actor model.AuditActor, id string) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *mockEmployees) Photo(id string) (*os.File, os.FileInfo, error) {
	args := m.Called(id)
	if err := args.Error(0); err != nil {
		return nil, nil, err
	}
	info, err := m.photo.Stat()
	return m.photo, info, err
}

type mockAttendance struct {
	mock.Mock
}

func (m *mockAttendance) List(ctx context.Context) ([]model.Attendance, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Attendance), args.Error(1)
}

func (m *mockAttendance) ListFor(ctx context.Context, employeeID string) ([]model.Attendance, error) {
	args := m.Called(ctx, employeeID)
	return args.Get(0).([]model.Attendance), args.Error(1)
}

func (m *mockAttendance) Request(ctx context.Context, actor model.AuditActor, employeeID string, req model.RegularizationRequest) (model.Attendance, error) {
	args := m.Called(ctx, actor, employeeID, req)
	return args.Get(0).(model.Attendance), args.Error(1)
}

func (m *mockAttendance) Approve(ctx context.Context, actor model.AuditActor, id string) (string, error) {
	args := m.Called(ctx, actor, id)
	return args.String(0), args.Error(1)
}

func (m *mockAttendance) Reject(ctx context.Context, actor model.AuditActor, id string, req model.RejectRequest) (string, error) {
	args := m.Called(ctx, actor, id, req)
	return args.String(0), args.Error(1)
}

type mockClock struct {
	mock.Mock
}

func (m *mockClock) Status(ctx context.Context, employeeID string) (model.ClockStatus, error) {
	args := m.Called(ctx, employeeID)
	return args.Get(0).(model.ClockStatus), args.Error(1)
}

func (m *mockClock) ClockIn(ctx context.Context, actor model.AuditActor, employeeID string, req model.ClockInRequest) (string, error) {
	args := m.Called(ctx, actor, employeeID, req)
	return args.String(0), args.Error(1)
}

func (m *mockClock) ClockOut(ctx context.Context, actor model.AuditActor, employeeID string) (string, error) {
	args := m.Called(ctx, actor, employeeID)
	return args.String(0), args.Error(1)
}

type mockPayroll struct {
	mock.Mock
}

func (m *mockPayroll) Generate(ctx context.Context, actor model.AuditActor, req model.PayrollRequest) (model.Payroll, error) {
	args := m.Called(ctx, actor, req)
	return args.Get(0).(model.Payroll), args.Error(1)
}

func (m *mockPayroll) View(ctx context.Context, req model.PayrollRequest) (model.Payroll, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(model.Payroll), args.Error(1)
}

// as signs requests in with claims, the way RequireAuth would.
func as(claims *model.AuthClaims, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims != nil {
			r = r.WithContext(middleware.WithClaims(r.Context(), claims))
		}
		next.ServeHTTP(w, r)
	})
}

func hrClaims() *model.AuthClaims {
	return &model.AuthClaims{UserID: "u-hr", Username: "hr1", Role: model.RoleHR}
}

func employeeClaims(employeeID string) *model.AuthClaims {
	return &model.AuthClaims{UserID: "u-emp", Username: "emp1", Role: model.RoleEmployee, EmployeeID: employeeID}
}

func newRouter(claims *model.AuthClaims, mount func(chi.Router)) http.Handler {
	r := chi.NewRouter()
	mount(r)
	return as(claims, r)
}
