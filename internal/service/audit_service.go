package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"hrms-portal/internal/model"
	"hrms-portal/pkg/apierror"
)

const (
	AuditSuccess = "success"
	AuditFailure = "failure"
)

type AuditService struct {
	store AuditStore
	log   *slog.Logger
}

func NewAuditService(store AuditStore, log *slog.Logger) *AuditService {
	if log == nil {
		log = slog.Default()
	}
	return &AuditService{store: store, log: log.With("component", "audit")}
}

// Log records an action. Failures to persist are logged, never returned:
// the audited operation has already happened.
func (s *AuditService) Log(ctx context.Context, action string, actor model.AuditActor, status string, resource string, before any, after any, errText string) {
	if s == nil || s.store == nil {
		return
	}

	entry := model.AuditEntry{
		Action:     action,
		OccurredAt: time.Now().UTC().Format(time.RFC3339Nano),
		Actor:      actor,
		Status:     status,
		Resource:   resource,
		Before:     before,
		After:      after,
		Error:      errText,
	}

	if err := s.store.Log(context.WithoutCancel(ctx), entry); err != nil {
		s.log.Error("audit write failed", "action", action, "resource", resource, "error", err)
	}
}

// Outcome logs success when err is nil and failure otherwise.
func (s *AuditService) Outcome(ctx context.Context, action string, actor model.AuditActor, resource string, before, after any, err error) {
	if err != nil {
		s.Log(ctx, action, actor, AuditFailure, resource, before, nil, err.Error())
		return
	}
	s.Log(ctx, action, actor, AuditSuccess, resource, before, after, "")
}

func (s *AuditService) Query(ctx context.Context, query model.AuditQuery) ([]model.AuditEntry, model.Meta, error) {
	if _, err := parseOptionalAuditTime(query.From); err != nil {
		return nil, model.Meta{}, apierror.Invalid("invalid 'from' datetime format")
	}
	if _, err := parseOptionalAuditTime(query.To); err != nil {
		return nil, model.Meta{}, apierror.Invalid("invalid 'to' datetime format")
	}
	return s.store.Query(ctx, query)
}

func parseOptionalAuditTime(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, nil
	}

	if value, err := time.Parse(time.RFC3339Nano, trimmed); err == nil {
		return value.UTC(), nil
	}
	value, err := time.Parse(time.RFC3339, trimmed)
	if err != nil {
		return time.Time{}, err
	}
	return value.UTC(), nil
}
