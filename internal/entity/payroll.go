package entity

import (
	"context"
	"fmt"
	"sync"

	"hrms-portal/internal/form"
	"hrms-portal/internal/model"
	"hrms-portal/internal/session"
	"hrms-portal/internal/workflow"
)

type PayrollBackend interface {
	Generate(ctx context.Context, req model.PayrollRequest) (model.Payroll, error)
	View(ctx context.Context, req model.PayrollRequest) (model.Payroll, error)
}

// PayrollDesk generates and views monthly payroll. Sessions that cannot
// modify master data are pinned to their own employee id.
type PayrollDesk struct {
	sess     session.Session
	backend  PayrollBackend
	notifier workflow.Notifier
	pinned   bool

	mu      sync.Mutex
	form    *form.State
	current *model.Payroll
}

func (c Catalog) PayrollDesk(sess session.Session, backend PayrollBackend, notifier workflow.Notifier) *PayrollDesk {
	now := c.now()
	s := form.NewSchema()
	s.Field("employeeId").Validate(form.Required())
	s.Field("month").Validate(form.Required(), form.OneOf(model.Months...))
	s.Field("year").
		Default(formatInt(now().Year())).
		Validate(form.Required(), form.Check("year", "Select a year between 2000 and this year.", func(v string) bool {
			y, err := form.Values{"y": v}.Int("y")
			return err == nil && y >= 2000 && y <= now().Year()
		})).
		Filter(form.All(form.Digits(), form.MaxRunes(4)))

	d := &PayrollDesk{sess: sess, backend: backend, notifier: notifier, form: s.New(form.ModeCreate)}
	if !sess.CanModify() {
		d.pinned = true
		_, _ = d.form.Set("employeeId", sess.EmployeeID)
	}
	return d
}

// Ready reports whether the desk can be used; a pinned session without an
// employee record cannot.
func (d *PayrollDesk) Ready() bool {
	return !d.pinned || d.sess.EmployeeID != ""
}

func (d *PayrollDesk) Set(name, value string) (bool, error) {
	if d.pinned && name == "employeeId" {
		return false, ErrNotPermitted
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.form.Set(name, value)
}

func (d *PayrollDesk) Payroll() (model.Payroll, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.current == nil {
		return model.Payroll{}, false
	}
	return *d.current, true
}

func (d *PayrollDesk) Generate(ctx context.Context) (model.Payroll, error) {
	if !d.sess.CanRunPayroll() {
		d.notify(workflow.SeverityError, "Error", "You are not allowed to generate payroll")
		return model.Payroll{}, ErrNotPermitted
	}
	return d.run(ctx, "Error generating payroll", d.backend.Generate)
}

func (d *PayrollDesk) View(ctx context.Context) (model.Payroll, error) {
	return d.run(ctx, "Error fetching payroll", d.backend.View)
}

func (d *PayrollDesk) run(ctx context.Context, fallback string, call func(context.Context, model.PayrollRequest) (model.Payroll, error)) (model.Payroll, error) {
	if !d.Ready() {
		d.notify(workflow.SeverityError, "Error", "Employee record not found.")
		return model.Payroll{}, model.ErrRecordNotFound
	}

	d.mu.Lock()
	if !d.form.Touch() {
		verr := &workflow.ValidationError{Fields: d.form.Invalid()}
		d.mu.Unlock()
		d.notify(workflow.SeverityWarn, "Incomplete", "Please fill all fields correctly.")
		return model.Payroll{}, verr
	}
	v := d.form.Values()
	d.mu.Unlock()

	year, _ := v.Int("year")
	req := model.PayrollRequest{EmployeeID: v.Trimmed("employeeId"), Month: v.Get("month"), Year: year}

	p, err := call(ctx, req)
	if err != nil {
		d.mu.Lock()
		d.current = nil
		d.mu.Unlock()
		d.notify(workflow.SeverityError, "Error", workflow.Describe(err, fallback))
		return model.Payroll{}, err
	}

	d.mu.Lock()
	d.current = &p
	d.mu.Unlock()
	d.notify(workflow.SeveritySuccess, "Payroll", fmt.Sprintf("Net salary for %s %d: %s", p.Month, p.Year, p.NetSalary.StringFixed(2)))
	return p, nil
}

func (d *PayrollDesk) notify(sev workflow.Severity, summary, detail string) {
	d.notifier.Notify(workflow.Notification{Severity: sev, Summary: summary, Detail: detail})
}
