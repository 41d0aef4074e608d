package entity

import (
	"context"
	"slices"
	"strings"
	"sync"

	"hrms-portal/internal/form"
	"hrms-portal/internal/model"
	"hrms-portal/internal/session"
	"hrms-portal/internal/workflow"
)

// RegularizationBackend is the attendance regularization API.
type RegularizationBackend interface {
	ListRegularizations(ctx context.Context) ([]model.Attendance, error)
	RequestRegularization(ctx context.Context, req model.RegularizationRequest) (model.Attendance, error)
	Approve(ctx context.Context, id string) (string, error)
	Reject(ctx context.Context, id string, reason string) (string, error)
}

// ReviewDesk lists regularization requests and lets reviewers approve or
// reject them. Employees use it to file new requests.
type ReviewDesk struct {
	sess      session.Session
	backend   RegularizationBackend
	notifier  workflow.Notifier
	confirmer workflow.Confirmer

	mu       sync.Mutex
	form     *form.State
	requests []model.Attendance
}

func (c Catalog) ReviewDesk(sess session.Session, backend RegularizationBackend, notifier workflow.Notifier, confirmer workflow.Confirmer) *ReviewDesk {
	s := form.NewSchema()
	s.Field("date").
		Validate(form.Required(), form.Date(), form.NotBeforeYearStart(c.now()), form.NotFuture(c.now())).
		Filter(form.DateKeys())
	s.Field("reason").
		Validate(form.Required(), form.Pattern(`^[a-zA-Z0-9,. ]+$`), form.MaxLength(50)).
		Filter(form.All(form.Alphanumeric(',', '.', ' '), form.MaxRunes(50)))

	return &ReviewDesk{
		sess:      sess,
		backend:   backend,
		notifier:  notifier,
		confirmer: confirmer,
		form:      s.New(form.ModeCreate),
	}
}

func (d *ReviewDesk) Requests() []model.Attendance {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.requests)
}

func (d *ReviewDesk) Load(ctx context.Context) error {
	list, err := d.backend.ListRegularizations(ctx)
	if err != nil {
		d.notify(workflow.SeverityError, "Error", workflow.Describe(err, "Failed to load regularization requests"))
		return err
	}
	d.mu.Lock()
	d.requests = list
	d.mu.Unlock()
	return nil
}

func (d *ReviewDesk) Set(name, value string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.form.Set(name, value)
}

// Type feeds one keystroke through the field's filter.
func (d *ReviewDesk) Type(name string, r rune) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.form.Type(name, r)
}

// Request files a regularization for the signed-in employee.
func (d *ReviewDesk) Request(ctx context.Context) (model.Attendance, error) {
	d.mu.Lock()
	if !d.form.Touch() {
		verr := &workflow.ValidationError{Fields: d.form.Invalid()}
		d.mu.Unlock()
		d.notify(workflow.SeverityWarn, "Incomplete", "Please provide a date and a reason.")
		return model.Attendance{}, verr
	}
	v := d.form.Values()
	d.mu.Unlock()

	att, err := d.backend.RequestRegularization(ctx, model.RegularizationRequest{Date: v.Trimmed("date"), Reason: v.Trimmed("reason")})
	if err != nil {
		d.notify(workflow.SeverityError, "Error", workflow.Describe(err, "Failed to submit regularization request"))
		return model.Attendance{}, err
	}

	d.mu.Lock()
	d.form.Reset()
	d.mu.Unlock()
	d.notify(workflow.SeveritySuccess, "Submitted", "Regularization request submitted")
	return att, nil
}

// Approve approves a pending request and shows the backend's confirmation.
func (d *ReviewDesk) Approve(ctx context.Context, id string) error {
	if !d.sess.CanReview() {
		d.notify(workflow.SeverityError, "Error", "You are not allowed to review requests")
		return ErrNotPermitted
	}

	msg, err := d.backend.Approve(ctx, id)
	if err != nil {
		d.notify(workflow.SeverityError, "Error", workflow.Describe(err, "Approval failed"))
		return err
	}
	d.notify(workflow.SeveritySuccess, "Approved", nonEmpty(msg, "Regularization approved successfully"))
	_ = d.Load(ctx)
	return nil
}

// Reject asks for a reason and rejects the request. A declined prompt or a
// blank reason makes no call.
func (d *ReviewDesk) Reject(ctx context.Context, id string) error {
	if !d.sess.CanReview() {
		d.notify(workflow.SeverityError, "Error", "You are not allowed to review requests")
		return ErrNotPermitted
	}

	decision := d.confirmer.Confirm(ctx, workflow.Prompt{
		Header:        "Reject Regularization",
		Message:       "Enter rejection reason:",
		RequireReason: true,
	})
	reason := strings.TrimSpace(decision.Reason)
	if !decision.Confirmed || reason == "" {
		d.notify(workflow.SeverityWarn, "Cancelled", "Rejection reason required")
		return workflow.ErrDeclined
	}

	msg, err := d.backend.Reject(ctx, id, reason)
	if err != nil {
		d.notify(workflow.SeverityError, "Error", workflow.Describe(err, "Failed to reject request"))
		return err
	}
	d.notify(workflow.SeveritySuccess, "Rejected", nonEmpty(msg, "Regularization rejected"))
	_ = d.Load(ctx)
	return nil
}

func (d *ReviewDesk) notify(sev workflow.Severity, summary, detail string) {
	d.notifier.Notify(workflow.Notification{Severity: sev, Summary: summary, Detail: detail})
}

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
