package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"hrms-portal/internal/event"
	"hrms-portal/internal/model"
	"hrms-portal/pkg/apierror"
)

const (
	MsgClockedIn  = "Clocked in"
	MsgClockedOut = "You clocked out"

	MsgAlreadyClockedIn  = "Clock-in failed, you are already clocked in today"
	MsgNotClockedIn      = "You have not clocked in today"
	MsgAlreadyClockedOut = "You already clocked out today"
)

const clockLayout = "15:04:05"

// ClockService records daily clock-in and clock-out. An employee gets one
// entry per calendar day (UTC).
type ClockService struct {
	entries  *RecordService[model.ClockEntry]
	validate *validator.Validate
	now      func() time.Time
}

func NewClockService(entries *RecordService[model.ClockEntry], validate *validator.Validate, now func() time.Time) *ClockService {
	if now == nil {
		now = time.Now
	}
	return &ClockService{entries: entries, validate: validate, now: now}
}

func (s *ClockService) today(ctx context.Context, employeeID string) (*model.ClockEntry, error) {
	found, err := s.entries.Match(ctx, map[string]any{
		"employeeId": employeeID,
		"date":       s.now().UTC().Format(time.DateOnly),
	})
	if err != nil || len(found) == 0 {
		return nil, err
	}
	return &found[0], nil
}

func requireEmployee(employeeID string) error {
	if strings.TrimSpace(employeeID) == "" {
		return apierror.Invalid("Your account is not linked to an employee")
	}
	return nil
}

// Status returns today's entry of the employee, if any.
func (s *ClockService) Status(ctx context.Context, employeeID string) (model.ClockStatus, error) {
	if err := requireEmployee(employeeID); err != nil {
		return model.ClockStatus{}, err
	}
	entry, err := s.today(ctx, employeeID)
	if err != nil {
		return model.ClockStatus{}, err
	}
	if entry == nil {
		return model.ClockStatus{}, nil
	}
	return model.ClockStatus{ClockedIn: entry.ClockedIn(), Entry: entry}, nil
}

func (s *ClockService) ClockIn(ctx context.Context, actor model.AuditActor, employeeID string, req model.ClockInRequest) (string, error) {
	if err := requireEmployee(employeeID); err != nil {
		return "", err
	}
	if err := s.validate.StructCtx(ctx, req); err != nil {
		return "", validationError(err)
	}

	existing, err := s.today(ctx, employeeID)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", apierror.Conflict(MsgAlreadyClockedIn)
	}

	now := s.now().UTC()
	_, err = s.entries.Create(ctx, actor, model.ClockEntry{
		EmployeeID:  employeeID,
		Date:        now.Format(time.DateOnly),
		WorkFrom:    req.WorkFrom,
		Mode:        req.Mode,
		Location:    req.Location,
		ClockInTime: now.Format(clockLayout),
	})
	// A concurrent clock-in loses on the unique index.
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatus == http.StatusConflict {
		return "", apierror.Conflict(MsgAlreadyClockedIn)
	}
	if err != nil {
		return "", err
	}
	return MsgClockedIn, nil
}

func (s *ClockService) ClockOut(ctx context.Context, actor model.AuditActor, employeeID string) (string, error) {
	if err := requireEmployee(employeeID); err != nil {
		return "", err
	}
	entry, err := s.today(ctx, employeeID)
	if err != nil {
		return "", err
	}
	if entry == nil {
		return "", apierror.Conflict(MsgNotClockedIn)
	}
	if !entry.ClockedIn() {
		return "", apierror.Conflict(MsgAlreadyClockedOut)
	}

	now := s.now().UTC()
	entry.ClockOutTime = now.Format(clockLayout)
	if in, err := time.Parse(time.DateOnly+" "+clockLayout, entry.Date+" "+entry.ClockInTime); err == nil {
		entry.WorkedMinutes = int(now.Sub(in).Minutes())
	}
	if err := s.entries.Save(ctx, actor, "clock_out", event.TypeClockedOut, *entry); err != nil {
		return "", err
	}
	return MsgClockedOut, nil
}
