package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"hrms-portal/internal/event"
	"hrms-portal/internal/model"
	"hrms-portal/pkg/apierror"
)

// Kind describes how one record type is stored.
type Kind[T any] struct {
	Kind model.Kind
	// Label names the record in messages, e.g. "Benefit".
	Label string
	ID    func(*T) *string
	// Created is the event published on create; record.created when empty.
	Created event.Type
	// Check runs after struct validation, before the write. id is empty on
	// create.
	Check func(ctx context.Context, store RecordStore, rec T, id string) error
}

// RecordService is the create/update/delete/list flow shared by every HR
// record kind: validate, write the JSONB body, audit, publish.
type RecordService[T any] struct {
	kind     Kind[T]
	name     string
	store    RecordStore
	validate *validator.Validate
	audit    *AuditService
	bus      event.Bus
	log      *slog.Logger
}

func NewRecordService[T any](kind Kind[T], store RecordStore, validate *validator.Validate, audit *AuditService, bus event.Bus, log *slog.Logger) *RecordService[T] {
	if log == nil {
		log = slog.Default()
	}
	return &RecordService[T]{
		kind:     kind,
		name:     string(kind.Kind),
		store:    store,
		validate: validate,
		audit:    audit,
		bus:      bus,
		log:      log.With("component", "records", "kind", string(kind.Kind)),
	}
}

func (s *RecordService[T]) Kind() model.Kind {
	return s.kind.Kind
}

func (s *RecordService[T]) List(ctx context.Context) ([]T, error) {
	rows, err := s.store.List(ctx, s.name)
	if err != nil {
		return nil, err
	}
	return decodeAll[T](rows)
}

func (s *RecordService[T]) Get(ctx context.Context, id string) (T, error) {
	var rec T
	body, err := s.store.Get(ctx, s.name, id)
	if errors.Is(err, model.ErrRecordNotFound) {
		return rec, apierror.NotFound(s.kind.Label + " not found")
	}
	if err != nil {
		return rec, err
	}
	if err := json.Unmarshal(body, &rec); err != nil {
		return rec, fmt.Errorf("decode %s: %w", s.name, err)
	}
	return rec, nil
}

// Match returns the records whose JSON body contains filter.
func (s *RecordService[T]) Match(ctx context.Context, filter map[string]any) ([]T, error) {
	rows, err := s.store.Match(ctx, s.name, filter)
	if err != nil {
		return nil, err
	}
	return decodeAll[T](rows)
}

func (s *RecordService[T]) Create(ctx context.Context, actor model.AuditActor, rec T) (T, error) {
	*s.kind.ID(&rec) = ""
	if err := s.check(ctx, rec, ""); err != nil {
		return rec, err
	}

	id := uuid.NewString()
	*s.kind.ID(&rec) = id

	err := s.write(ctx, rec, func(body json.RawMessage) error {
		return s.store.Insert(ctx, s.name, id, body, actor.UserID)
	})
	s.audit.Outcome(ctx, s.name+".create", actor, s.name+"/"+id, nil, rec, err)
	if err != nil {
		return rec, err
	}

	created := s.kind.Created
	if created == "" {
		created = event.TypeRecordCreated
	}
	s.publish(created, id, rec, actor)
	return rec, nil
}

func (s *RecordService[T]) Update(ctx context.Context, actor model.AuditActor, id string, rec T) (T, error) {
	before, err := s.Get(ctx, id)
	if err != nil {
		return rec, err
	}

	*s.kind.ID(&rec) = id
	if err := s.check(ctx, rec, id); err != nil {
		return rec, err
	}

	err = s.write(ctx, rec, func(body json.RawMessage) error {
		return s.store.Replace(ctx, s.name, id, body)
	})
	s.audit.Outcome(ctx, s.name+".update", actor, s.name+"/"+id, before, rec, err)
	if err != nil {
		return rec, err
	}

	s.publish(event.TypeRecordUpdated, id, rec, actor)
	return rec, nil
}

// Save replaces a record without running validation. Services use it for
// fields they own, such as a review status or a photo URL.
func (s *RecordService[T]) Save(ctx context.Context, actor model.AuditActor, action string, t event.Type, rec T) error {
	id := *s.kind.ID(&rec)
	err := s.write(ctx, rec, func(body json.RawMessage) error {
		return s.store.Replace(ctx, s.name, id, body)
	})
	s.audit.Outcome(ctx, s.name+"."+action, actor, s.name+"/"+id, nil, rec, err)
	if err != nil {
		return err
	}
	s.publish(t, id, rec, actor)
	return nil
}

func (s *RecordService[T]) Delete(ctx context.Context, actor model.AuditActor, id string) error {
	err := s.store.Delete(ctx, s.name, id)
	if errors.Is(err, model.ErrRecordNotFound) {
		err = apierror.NotFound(s.kind.Label + " not found")
	}
	s.audit.Outcome(ctx, s.name+".delete", actor, s.name+"/"+id, nil, nil, err)
	if err != nil {
		return err
	}

	s.publish(event.TypeRecordDeleted, id, nil, actor)
	return nil
}

func (s *RecordService[T]) check(ctx context.Context, rec T, id string) error {
	if err := s.validate.StructCtx(ctx, rec); err != nil {
		return validationError(err)
	}
	if s.kind.Check != nil {
		return s.kind.Check(ctx, s.store, rec, id)
	}
	return nil
}

func (s *RecordService[T]) write(ctx context.Context, rec T, fn func(json.RawMessage) error) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.name, err)
	}
	err = fn(body)
	switch {
	case errors.Is(err, model.ErrRecordNotFound):
		return apierror.NotFound(s.kind.Label + " not found")
	case errors.Is(err, model.ErrDuplicateRecord):
		return apierror.Conflict(s.kind.Label + " already exists")
	}
	return err
}

func (s *RecordService[T]) publish(t event.Type, id string, rec any, actor model.AuditActor) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(event.New(t, s.name, id, rec, actor.UserID))
	s.log.Debug("record event published", "type", t, "id", id)
}

func decodeAll[T any](rows []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, raw := range rows {
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// unique rejects rec when another record of the kind already uses value
// for field.
func unique(ctx context.Context, store RecordStore, kind, field, value, exceptID, message string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	taken, err := store.ExistsField(ctx, kind, field, value, exceptID)
	if err != nil {
		return err
	}
	if taken {
		return apierror.Conflict(message)
	}
	return nil
}
