package service

import (
	"context"
	"encoding/json"
	"time"

	"hrms-portal/internal/model"
)

// UserStore is implemented by repository.UserRepository.
type UserStore interface {
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
	Exists(ctx context.Context, username, email string) (bool, error)
	Create(ctx context.Context, u model.User) error
	TouchLogin(ctx context.Context, id string, at time.Time) error
	List(ctx context.Context) ([]model.User, error)
	CountByRole(ctx context.Context, role string) (int, error)
}

// RecordStore is implemented by repository.RecordRepository.
type RecordStore interface {
	Insert(ctx context.Context, kind, id string, body json.RawMessage, createdBy string) error
	Replace(ctx context.Context, kind, id string, body json.RawMessage) error
	Delete(ctx context.Context, kind, id string) error
	Get(ctx context.Context, kind, id string) (json.RawMessage, error)
	List(ctx context.Context, kind string) ([]json.RawMessage, error)
	Match(ctx context.Context, kind string, filter map[string]any) ([]json.RawMessage, error)
	ExistsField(ctx context.Context, kind, field, value, exceptID string) (bool, error)
}

// AuditStore is implemented by repository.AuditRepository.
type AuditStore interface {
	Log(ctx context.Context, entry model.AuditEntry) error
	Query(ctx context.Context, query model.AuditQuery) ([]model.AuditEntry, model.Meta, error)
}
