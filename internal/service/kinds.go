package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"hrms-portal/internal/event"
	"hrms-portal/internal/model"
	"hrms-portal/pkg/apierror"
)

// Records groups the record services of every HR kind.
type Records struct {
	Employees   *RecordService[model.Employee]
	Benefits    *RecordService[model.Benefit]
	Compliances *RecordService[model.Compliance]
	Departments *RecordService[model.Department]
	LeaveTypes  *RecordService[model.LeaveType]
	Attendance  *RecordService[model.Attendance]
	Payrolls    *RecordService[model.Payroll]
	Clock       *RecordService[model.ClockEntry]
}

func NewRecords(store RecordStore, validate *validator.Validate, audit *AuditService, bus event.Bus, log *slog.Logger, now func() time.Time) *Records {
	if now == nil {
		now = time.Now
	}
	return &Records{
		Employees: NewRecordService(Kind[model.Employee]{
			Kind:  model.KindEmployee,
			Label: "Employee",
			ID:    func(e *model.Employee) *string { return &e.ID },
			Check: checkEmployee,
		}, store, validate, audit, bus, log),
		Benefits: NewRecordService(Kind[model.Benefit]{
			Kind:  model.KindBenefit,
			Label: "Benefit",
			ID:    func(b *model.Benefit) *string { return &b.ID },
		}, store, validate, audit, bus, log),
		Compliances: NewRecordService(Kind[model.Compliance]{
			Kind:  model.KindCompliance,
			Label: "Compliance",
			ID:    func(c *model.Compliance) *string { return &c.ID },
			Check: checkCompliance(now),
		}, store, validate, audit, bus, log),
		Departments: NewRecordService(Kind[model.Department]{
			Kind:  model.KindDepartment,
			Label: "Department",
			ID:    func(d *model.Department) *string { return &d.ID },
			Check: checkDepartment,
		}, store, validate, audit, bus, log),
		LeaveTypes: NewRecordService(Kind[model.LeaveType]{
			Kind:  model.KindLeaveType,
			Label: "Leave type",
			ID:    func(l *model.LeaveType) *string { return &l.ID },
			Check: checkLeaveType,
		}, store, validate, audit, bus, log),
		Attendance: NewRecordService(Kind[model.Attendance]{
			Kind:  model.KindAttendance,
			Label: "Regularization request",
			ID:    func(a *model.Attendance) *string { return &a.ID },
		}, store, validate, audit, bus, log),
		Payrolls: NewRecordService(Kind[model.Payroll]{
			Kind:    model.KindPayroll,
			Label:   "Payroll",
			ID:      func(p *model.Payroll) *string { return &p.ID },
			Created: event.TypePayrollCreated,
		}, store, validate, audit, bus, log),
		Clock: NewRecordService(Kind[model.ClockEntry]{
			Kind:    model.KindClock,
			Label:   "Attendance",
			ID:      func(c *model.ClockEntry) *string { return &c.ID },
			Created: event.TypeClockedIn,
		}, store, validate, audit, bus, log),
	}
}

func checkEmployee(ctx context.Context, store RecordStore, e model.Employee, id string) error {
	kind := string(model.KindEmployee)
	if err := unique(ctx, store, kind, "employeeCode", e.EmployeeCode, id, "Employee code already exists"); err != nil {
		return err
	}
	if err := unique(ctx, store, kind, "email", e.Email, id, "Employee email already exists"); err != nil {
		return err
	}
	if e.JoiningDate != "" && e.ProbationEndDate != "" && e.ProbationEndDate < e.JoiningDate {
		return apierror.Invalid("probationEndDate cannot be before joiningDate")
	}
	if c := e.Compensation; c != nil && (c.BasicSalary.IsNegative() || c.Allowances.IsNegative() || c.Deductions.IsNegative()) {
		return apierror.Invalid("compensation amounts cannot be negative")
	}
	return nil
}

func checkCompliance(now func() time.Time) func(context.Context, RecordStore, model.Compliance, string) error {
	return func(_ context.Context, _ RecordStore, c model.Compliance, id string) error {
		if id == "" && c.DueDate < now().Format(time.DateOnly) {
			return apierror.Invalid("Past dates are not allowed.")
		}
		return nil
	}
}

// Department heads are unique: one manager heads at most one department.
func checkDepartment(ctx context.Context, store RecordStore, d model.Department, id string) error {
	kind := string(model.KindDepartment)
	if err := unique(ctx, store, kind, "departmentCode", d.DepartmentCode, id, "Department code already exists"); err != nil {
		return err
	}
	return unique(ctx, store, kind, "departmentHeadId", d.DepartmentHeadID, id, "Department head is already assigned to another department")
}

func checkLeaveType(ctx context.Context, store RecordStore, l model.LeaveType, id string) error {
	return unique(ctx, store, string(model.KindLeaveType), "name", l.Name, id, "Leave type already available")
}
