package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"hrms-portal/internal/event"
	"hrms-portal/internal/model"
	"hrms-portal/pkg/apierror"
)

const (
	MsgRegularizationApproved = "Regularization approved successfully"
	MsgRegularizationRejected = "Regularization rejected successfully"
)

// AttendanceService handles attendance regularization requests and their
// review.
type AttendanceService struct {
	records  *RecordService[model.Attendance]
	validate *validator.Validate
	now      func() time.Time
}

func NewAttendanceService(records *RecordService[model.Attendance], validate *validator.Validate, now func() time.Time) *AttendanceService {
	if now == nil {
		now = time.Now
	}
	return &AttendanceService{records: records, validate: validate, now: now}
}

func (s *AttendanceService) List(ctx context.Context) ([]model.Attendance, error) {
	return s.records.List(ctx)
}

// ListFor returns the requests filed by one employee.
func (s *AttendanceService) ListFor(ctx context.Context, employeeID string) ([]model.Attendance, error) {
	return s.records.Match(ctx, map[string]any{"employeeId": employeeID})
}

func (s *AttendanceService) Request(ctx context.Context, actor model.AuditActor, employeeID string, req model.RegularizationRequest) (model.Attendance, error) {
	if strings.TrimSpace(employeeID) == "" {
		return model.Attendance{}, apierror.Invalid("Your account is not linked to an employee")
	}
	if err := s.validate.StructCtx(ctx, req); err != nil {
		return model.Attendance{}, validationError(err)
	}

	now := s.now().UTC()
	return s.records.Create(ctx, actor, model.Attendance{
		EmployeeID: employeeID,
		Date:       req.Date,
		Reason:     strings.TrimSpace(req.Reason),
		Status:     model.RegularizationPending,
		CreatedAt:  &now,
	})
}

func (s *AttendanceService) Approve(ctx context.Context, actor model.AuditActor, id string) (string, error) {
	if err := s.review(ctx, actor, id, model.RegularizationApproved, ""); err != nil {
		return "", err
	}
	return MsgRegularizationApproved, nil
}

// Reject requires a reason; the portal asks for it before calling.
func (s *AttendanceService) Reject(ctx context.Context, actor model.AuditActor, id string, req model.RejectRequest) (string, error) {
	req.Reason = strings.TrimSpace(req.Reason)
	if err := s.validate.StructCtx(ctx, req); err != nil {
		return "", apierror.Invalid("Rejection reason required")
	}
	if err := s.review(ctx, actor, id, model.RegularizationRejected, req.Reason); err != nil {
		return "", err
	}
	return MsgRegularizationRejected, nil
}

func (s *AttendanceService) review(ctx context.Context, actor model.AuditActor, id, status, reason string) error {
	rec, err := s.records.Get(ctx, id)
	if err != nil {
		return err
	}
	if rec.Status != model.RegularizationPending {
		return apierror.Conflict("Request already " + strings.ToLower(rec.Status))
	}

	now := s.now().UTC()
	rec.Status = status
	rec.RejectionReason = reason
	rec.ReviewedBy = actor.Username
	rec.ReviewedAt = &now
	return s.records.Save(ctx, actor, strings.ToLower(status), event.TypeRegularized, rec)
}
