package entity

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hrms-portal/internal/form"
	"hrms-portal/internal/model"
	"hrms-portal/internal/notify"
	"hrms-portal/internal/workflow"
)

var catalog = Catalog{Now: func() time.Time { return time.Date(2025, time.June, 15, 9, 0, 0, 0, time.UTC) }}

type employeeBackend struct {
	mock.Mock
}

func (m *employeeBackend) Create(ctx context.Context, e model.Employee, a []workflow.Attachment) (model.Employee, error) {
	args := m.Called(ctx, e, a)
	return args.Get(0).(model.Employee), args.Error(1)
}

func (m *employeeBackend) Update(ctx context.Context, id string, e model.Employee) (model.Employee, error) {
	args := m.Called(ctx, id, e)
	return args.Get(0).(model.Employee), args.Error(1)
}

func (m *employeeBackend) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *employeeBackend) List(ctx context.Context) ([]model.Employee, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Employee), args.Error(1)
}

func validEmployee() map[string]string {
	return map[string]string{
		"userId":           "u-1",
		"employeeCode":     "EMP-001",
		"firstName":        "Jane",
		"lastName":         "Doe",
		"email":            "jane.doe@example.com",
		"contactNumber":    "9876543210",
		"gender":           "FEMALE",
		"dob":              "1990-04-01",
		"emergencyContact": "9123456780",
		"joiningDate":      "2025-01-10",
		"designation":      "Engineer",
		"location":         "Pune",
		"departmentId":     "d-1",
		"basicSalary":      "50000",
		"allowances":       "5000.50",
		"deductions":       "2000",
	}
}

func TestEmployeeCreateScenario(t *testing.T) {
	b := &employeeBackend{}
	rec := &notify.Recorder{}

	b.On("Create", mock.Anything, mock.MatchedBy(func(e model.Employee) bool {
		return e.FirstName == "Jane" && e.ProbationEndDate == "2025-04-10" && e.Compensation != nil &&
			e.Compensation.Allowances.Equal(decimal.RequireFromString("5000.5"))
	}), mock.Anything).Return(model.Employee{ID: "e-1", FirstName: "Jane", LastName: "Doe"}, nil).Once()
	b.On("List", mock.Anything).Return([]model.Employee{{ID: "e-1"}}, nil)

	c, err := workflow.New(catalog.Employee(), b, workflow.WithNotifier(rec))
	require.NoError(t, err)
	require.NoError(t, c.Initialize(context.Background(), form.ModeCreate))

	for name, v := range validEmployee() {
		ok, err := c.ValidateField(name, v)
		require.NoError(t, err)
		require.True(t, ok, name)
	}

	require.ErrorIs(t, c.Submit(context.Background()), workflow.ErrIncomplete)
	last, _ := rec.Last()
	assert.Equal(t, "Please fill all required fields correctly and upload a photo.", last.Detail)

	c.Attach(workflow.Attachment{Field: Photo, Filename: "jane.jpg", Open: func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader("jpg")), nil
	}})
	require.NoError(t, c.Submit(context.Background()))

	last, _ = rec.Last()
	assert.Equal(t, workflow.SeveritySuccess, last.Severity)
	assert.Equal(t, "Employee Jane Doe created successfully!", last.Detail)
	assert.Equal(t, "ACTIVE", c.Values()["status"])
	assert.Equal(t, "FULL_TIME", c.Values()["jobType"])
	assert.Equal(t, "", c.Values()["firstName"])
	b.AssertNumberOfCalls(t, "Create", 1)
}

func TestEmployeeFieldRules(t *testing.T) {
	st := catalog.EmployeeSchema().New(form.ModeCreate)

	ok, _ := st.Set("dob", "2025-06-16")
	assert.False(t, ok, "future dob")
	ok, _ = st.Set("dob", "12025-01-01")
	assert.False(t, ok, "five digit year")
	f, _ := st.Field("dob")
	assert.Contains(t, f.Errors, "Year cannot exceed 4 digits.")

	ok, _ = st.Set("employeeCode", "EMP_1")
	assert.False(t, ok)
	assert.True(t, st.Accepts("employeeCode", '-'))
	assert.False(t, st.Accepts("firstName", ' '))

	ok, _ = st.Set("basicSalary", "-1")
	assert.False(t, ok)
	ok, _ = st.Set("basicSalary", "10.555")
	assert.False(t, ok)
	ok, _ = st.Set("basicSalary", "10.55")
	assert.True(t, ok)
}

func TestEmployeeDecodeRoundTrip(t *testing.T) {
	e := model.Employee{
		ID: "e-1", FirstName: "Jane", LastName: "Doe", Status: "ACTIVE",
		Compensation: &model.Compensation{BasicSalary: decimal.NewFromInt(100), Allowances: decimal.Zero, Deductions: decimal.Zero},
	}
	out := decodeEmployee(e)
	assert.Equal(t, "100.00", out["basicSalary"])

	back, err := encodeEmployee(form.Values(out))
	require.NoError(t, err)
	assert.True(t, back.Compensation.BasicSalary.Equal(decimal.NewFromInt(100)))

	noComp, err := encodeEmployee(form.Values{"firstName": "Jane"})
	require.NoError(t, err)
	assert.Nil(t, noComp.Compensation)
}

func TestComplianceRules(t *testing.T) {
	def := catalog.Compliance()
	assert.True(t, def.ConfirmSubmit)

	st := def.Schema.New(form.ModeCreate)
	ok, _ := st.Set("dueDate", "2025-06-14")
	assert.False(t, ok)
	f, _ := st.Field("dueDate")
	assert.Contains(t, f.Errors, "Past dates are not allowed.")

	ok, _ = st.Set("dueDate", "2025-06-15")
	assert.True(t, ok)

	ok, _ = st.Set("penalty", "123456")
	assert.False(t, ok)
	assert.False(t, st.Accepts("penalty", 'x'))

	isActive, _ := st.Field("isActive")
	assert.Equal(t, "true", isActive.Value)

	st.Patch(map[string]string{"name": "Labour Law", "description": "d", "type": "STATUTORY", "frequency": "YEARLY", "penalty": "500"})
	c, err := def.Encode(st.Values())
	require.NoError(t, err)
	assert.Equal(t, 500, c.Penalty)
	assert.True(t, c.IsActive)
}

func TestLeaveTypeRules(t *testing.T) {
	def := catalog.LeaveType()
	st := def.Schema.New(form.ModeCreate)

	ok, _ := st.Set("maxDaysPerYear", "-1")
	assert.False(t, ok)
	ok, _ = st.Set("name", "VACATION")
	assert.False(t, ok)

	st.Patch(map[string]string{"name": "SICK_LEAVE", "description": "Sick", "maxDaysPerYear": "12", "approvalFlow": "  MANAGER  "})
	require.True(t, st.Valid())
	lt, err := def.Encode(st.Values())
	require.NoError(t, err)
	assert.Equal(t, 12, lt.MaxDaysPerYear)
	assert.Equal(t, "MANAGER", lt.ApprovalFlow)
}

func TestBenefitDecodeIgnoresUnknown(t *testing.T) {
	def := catalog.Benefit()
	st := def.Schema.New(form.ModeEdit)
	st.Patch(def.Decode(model.Benefit{ID: "b1", Name: "Meal Card", Description: "Food", Type: "MONETARY", IsTaxable: true}))

	assert.True(t, st.Valid())
	assert.Equal(t, "true", st.Values()["isTaxable"])
	assert.NotContains(t, st.Values(), "benefitId")
}

func TestDepartmentHeads(t *testing.T) {
	managers := []model.Employee{{ID: "m1"}, {ID: "m2"}, {ID: "m3"}}
	departments := []model.Department{{ID: "d1", DepartmentHeadID: "m1"}, {ID: "d2", DepartmentHeadID: "m2"}}

	ids := func(es []model.Employee) []string {
		var out []string
		for _, e := range es {
			out = append(out, e.ID)
		}
		return out
	}

	assert.Equal(t, []string{"m3"}, ids(AvailableHeads(managers, departments, "")))
	assert.Equal(t, []string{"m2", "m3"}, ids(AvailableHeads(managers, departments, "d2")))

	st := catalog.Department().Schema.New(form.ModeCreate)
	assert.False(t, st.Accepts("departmentCode", '-'))
	_, _ = st.Set("departmentCode", "ABCDEFGH")
	assert.False(t, st.Accepts("departmentCode", 'I'))
}

func TestRegisterSanitizes(t *testing.T) {
	assert.Equal(t, "janedoe42", SanitizeUsername("Jane.Doe_42"))
	assert.Equal(t, "jane@example.com", SanitizeEmail(" Jane@Example.com "))

	def := catalog.Register()
	u, err := def.Encode(form.Values{"username": "JaneDoe", "email": "JANE@X.IO", "role": "HR"})
	require.NoError(t, err)
	assert.Equal(t, "janedoe", u.Username)
	assert.Equal(t, "jane@x.io", u.Email)

	st := def.Schema.New(form.ModeCreate)
	ok, _ := st.Set("role", "ADMIN")
	assert.False(t, ok)
	assert.False(t, st.Accepts("email", 'A'))
}
