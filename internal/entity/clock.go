package entity

import (
	"context"
	"sync"
	"time"

	"hrms-portal/internal/form"
	"hrms-portal/internal/model"
	"hrms-portal/internal/workflow"
)

// ClockBackend is the daily clock-in API.
type ClockBackend interface {
	ClockStatus(ctx context.Context) (model.ClockStatus, error)
	ClockIn(ctx context.Context, req model.ClockInRequest) (string, error)
	ClockOut(ctx context.Context) (string, error)
}

// ClockDesk records the signed-in employee's working day. Location is an
// optional free-text place name; coordinates are not captured.
type ClockDesk struct {
	backend  ClockBackend
	notifier workflow.Notifier
	now      func() time.Time

	mu     sync.Mutex
	form   *form.State
	status model.ClockStatus
}

func (c Catalog) ClockDesk(backend ClockBackend, notifier workflow.Notifier) *ClockDesk {
	s := form.NewSchema()
	s.Field("workFrom").Validate(form.Required(), form.OneOf(model.WorkFromOptions...))
	s.Field("mode").Default("WEB").Validate(form.Required(), form.OneOf(model.ClockModes...))
	s.Field("location").
		Validate(form.Pattern(`^[a-zA-Z]{0,12}$`)).
		Filter(form.All(form.Letters(), form.MaxRunes(12)))

	return &ClockDesk{backend: backend, notifier: notifier, now: c.now(), form: s.New(form.ModeCreate)}
}

func (d *ClockDesk) Set(name, value string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.form.Set(name, value)
}

func (d *ClockDesk) Status() model.ClockStatus {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

// Load fetches today's entry.
func (d *ClockDesk) Load(ctx context.Context) (model.ClockStatus, error) {
	status, err := d.backend.ClockStatus(ctx)
	if err != nil {
		d.notify(workflow.SeverityError, "Error", workflow.Describe(err, "Failed to fetch attendance status"))
		return model.ClockStatus{}, err
	}
	d.mu.Lock()
	d.status = status
	d.mu.Unlock()
	return status, nil
}

func (d *ClockDesk) ClockIn(ctx context.Context) error {
	d.mu.Lock()
	if !d.form.Touch() {
		verr := &workflow.ValidationError{Fields: d.form.Invalid()}
		d.mu.Unlock()
		d.notify(workflow.SeverityWarn, "Form Invalid", "Fill all required fields.")
		return verr
	}
	v := d.form.Values()
	d.mu.Unlock()

	msg, err := d.backend.ClockIn(ctx, model.ClockInRequest{
		WorkFrom: v.Get("workFrom"),
		Mode:     v.Get("mode"),
		Location: v.Trimmed("location"),
	})
	if err != nil {
		d.notify(workflow.SeverityError, "Error", workflow.Describe(err, "Clock-in failed, you are already clocked in today"))
		return err
	}

	d.mu.Lock()
	d.form.Reset()
	d.mu.Unlock()
	d.notify(workflow.SeveritySuccess, "Clock-in Successful", nonEmpty(msg, "Clocked in")+" at "+d.now().Format("15:04"))
	_, _ = d.Load(ctx)
	return nil
}

func (d *ClockDesk) ClockOut(ctx context.Context) error {
	msg, err := d.backend.ClockOut(ctx)
	if err != nil {
		d.notify(workflow.SeverityError, "Error", workflow.Describe(err, "Clock-out failed"))
		return err
	}
	d.notify(workflow.SeveritySuccess, "Clock-out Successful", nonEmpty(msg, "You clocked out")+" at "+d.now().Format("15:04"))
	_, _ = d.Load(ctx)
	return nil
}

func (d *ClockDesk) notify(sev workflow.Severity, summary, detail string) {
	d.notifier.Notify(workflow.Notification{Severity: sev, Summary: summary, Detail: detail})
}
