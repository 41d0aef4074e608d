package service

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms-portal/internal/event"
	"hrms-portal/internal/model"
	"hrms-portal/internal/storage"
)

var fixedNow = func() time.Time { return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC) }

type fixture struct {
	store   *memStore
	audit   *memAudit
	bus     *event.InMemoryBus
	records *Records
	actor   model.AuditActor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store: newMemStore(),
		audit: &memAudit{},
		bus:   event.NewBus(nil),
		actor: model.AuditActor{UserID: "u-hr", Username: "hr1", Role: model.RoleHR},
	}
	f.records = NewRecords(f.store, NewValidator(fixedNow), NewAuditService(f.audit, nil), f.bus, nil, fixedNow)
	return f
}

func validBenefit() model.Benefit {
	return model.Benefit{Name: "Gym Membership", Description: "Monthly gym", Type: "REIMBURSEMENT"}
}

func TestRecordLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	events, unsubscribe := f.bus.Subscribe()
	defer unsubscribe()

	created, err := f.records.Benefits.Create(ctx, f.actor, validBenefit())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, event.TypeRecordCreated, (<-events).Type)

	created.Description = "Gym and pool"
	updated, err := f.records.Benefits.Update(ctx, f.actor, created.ID, created)
	require.NoError(t, err)
	assert.Equal(t, "Gym and pool", updated.Description)
	assert.Equal(t, event.TypeRecordUpdated, (<-events).Type)

	list, err := f.records.Benefits.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, f.records.Benefits.Delete(ctx, f.actor, created.ID))
	e := <-events
	assert.Equal(t, event.TypeRecordDeleted, e.Type)
	assert.Equal(t, created.ID, e.Record.ID)

	err = f.records.Benefits.Delete(ctx, f.actor, created.ID)
	requireAPIError(t, err, http.StatusNotFound, "Benefit not found")

	assert.Equal(t, []string{
		"benefit.create:success",
		"benefit.update:success",
		"benefit.delete:success",
		"benefit.delete:failure",
	}, f.audit.actions())
}

func TestRecordValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	b := validBenefit()
	b.Name = "Gym 24x7"
	_, err := f.records.Benefits.Create(ctx, f.actor, b)
	requireAPIError(t, err, http.StatusBadRequest, "name must contain letters only")

	b = validBenefit()
	b.Type = "CASH"
	_, err = f.records.Benefits.Create(ctx, f.actor, b)
	requireAPIError(t, err, http.StatusBadRequest, "type must be one of: REIMBURSEMENT MONETARY NON_MONETARY")
	assert.Zero(t, f.store.count("benefit"))
}

func TestUpdateUnknownRecord(t *testing.T) {
	f := newFixture(t)
	_, err := f.records.Benefits.Update(context.Background(), f.actor, "missing", validBenefit())
	requireAPIError(t, err, http.StatusNotFound, "Benefit not found")
}

func TestDepartmentHeadIsUnique(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	eng, err := f.records.Departments.Create(ctx, f.actor, model.Department{DepartmentCode: "ENG", Name: "Engineering", DepartmentHeadID: "m-1"})
	require.NoError(t, err)

	_, err = f.records.Departments.Create(ctx, f.actor, model.Department{DepartmentCode: "OPS", Name: "Operations", DepartmentHeadID: "m-1"})
	requireAPIError(t, err, http.StatusConflict, "Department head is already assigned to another department")

	eng.Location = "Pune"
	_, err = f.records.Departments.Update(ctx, f.actor, eng.ID, eng)
	require.NoError(t, err, "a department keeps its own head")
}

func TestLeaveTypeNameIsUnique(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.records.LeaveTypes.Create(ctx, f.actor, model.LeaveType{Name: "SICK_LEAVE", Description: "Sick", MaxDaysPerYear: 12})
	require.NoError(t, err)

	_, err = f.records.LeaveTypes.Create(ctx, f.actor, model.LeaveType{Name: "SICK_LEAVE", Description: "Again", MaxDaysPerYear: 5})
	requireAPIError(t, err, http.StatusConflict, "Leave type already available")
}

func TestComplianceDueDateNotPast(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := model.Compliance{Name: "PF Filing", Description: "Provident fund", Type: "STATUTORY", Frequency: "MONTHLY", DueDate: "2026-03-01"}

	_, err := f.records.Compliances.Create(ctx, f.actor, c)
	requireAPIError(t, err, http.StatusBadRequest, "Past dates are not allowed.")

	c.DueDate = "2026-04-01"
	_, err = f.records.Compliances.Create(ctx, f.actor, c)
	require.NoError(t, err)
}

func validEmployee() model.Employee {
	return model.Employee{
		EmployeeCode:     "EMP001",
		FirstName:        "Asha",
		LastName:         "Rao",
		Email:            "asha@corp.com",
		ContactNumber:    "9876543210",
		Gender:           "FEMALE",
		DOB:              "1994-05-01",
		EmergencyContact: "9123456780",
		JoiningDate:      "2026-01-10",
		ProbationEndDate: "2026-04-10",
		Status:           "ACTIVE",
		Designation:      "Engineer",
		JobType:          "FULL_TIME",
		Location:         "Pune",
		DepartmentID:     "d-1",
		Compensation: &model.Compensation{
			BasicSalary: decimal.RequireFromString("50000.00"),
			Allowances:  decimal.RequireFromString("5000.50"),
			Deductions:  decimal.RequireFromString("2500.25"),
		},
	}
}

type fakePhotos struct {
	saved   map[string]string
	fail    error
	removed []string
}

func (p *fakePhotos) Save(employeeID, filename string, r io.Reader) (storage.Photo, error) {
	if p.fail != nil {
		return storage.Photo{}, p.fail
	}
	data, _ := io.ReadAll(r)
	if p.saved == nil {
		p.saved = map[string]string{}
	}
	p.saved[employeeID] = string(data)
	return storage.Photo{EmployeeID: employeeID, Filename: filename, Size: int64(len(data))}, nil
}

func (p *fakePhotos) OpenThumbnail(string) (*os.File, os.FileInfo, error) {
	return nil, nil, os.ErrNotExist
}

func (p *fakePhotos) Remove(employeeID string) error {
	p.removed = append(p.removed, employeeID)
	return nil
}

func TestEmployeeRequiresPhoto(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewEmployeeService(f.records.Employees, &fakePhotos{}, f.bus, nil)

	_, err := svc.Create(ctx, f.actor, validEmployee(), nil)
	requireAPIError(t, err, http.StatusBadRequest, "Photo is required")
	assert.Zero(t, f.store.count("employee"))
}

func TestEmployeeCreateStoresPhoto(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	photos := &fakePhotos{}
	svc := NewEmployeeService(f.records.Employees, photos, f.bus, nil)

	emp, err := svc.Create(ctx, f.actor, validEmployee(), &Upload{Filename: "face.png", Body: strings.NewReader("img")})
	require.NoError(t, err)
	assert.Equal(t, PhotoURL(emp.ID), emp.PhotoURL)
	assert.Equal(t, "img", photos.saved[emp.ID])

	stored, err := svc.Get(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, emp.PhotoURL, stored.PhotoURL)

	emp.PhotoURL = "http://elsewhere"
	emp.Designation = "Lead"
	updated, err := svc.Update(ctx, f.actor, emp.ID, emp)
	require.NoError(t, err)
	assert.Equal(t, PhotoURL(emp.ID), updated.PhotoURL)

	require.NoError(t, svc.Delete(ctx, f.actor, emp.ID))
	assert.Equal(t, []string{emp.ID}, photos.removed)
}

func TestEmployeePhotoFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewEmployeeService(f.records.Employees, &fakePhotos{fail: os.ErrPermission}, f.bus, nil)

	_, err := svc.Create(ctx, f.actor, validEmployee(), &Upload{Filename: "face.png", Body: strings.NewReader("img")})
	require.ErrorIs(t, err, os.ErrPermission)
	assert.Zero(t, f.store.count("employee"))
}

func TestEmployeeUniqueCode(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewEmployeeService(f.records.Employees, &fakePhotos{}, nil, nil)

	_, err := svc.Create(ctx, f.actor, validEmployee(), &Upload{Filename: "a.png", Body: strings.NewReader("a")})
	require.NoError(t, err)

	dup := validEmployee()
	dup.Email = "other@corp.com"
	_, err = svc.Create(ctx, f.actor, dup, &Upload{Filename: "b.png", Body: strings.NewReader("b")})
	requireAPIError(t, err, http.StatusConflict, "Employee code already exists")
}

func TestEmployeeDOBNotFuture(t *testing.T) {
	f := newFixture(t)
	emp := validEmployee()
	emp.DOB = "2026-03-16"
	_, err := f.records.Employees.Create(context.Background(), f.actor, emp)
	requireAPIError(t, err, http.StatusBadRequest, "dob cannot be in the future")
}
