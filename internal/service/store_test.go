package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"hrms-portal/internal/model"
)

// memStore is an in-memory RecordStore with the same semantics as the
// JSONB repository.
type memStore struct {
	mu    sync.Mutex
	order []string
	rows  map[string]json.RawMessage
}

func newMemStore() *memStore {
	return &memStore{rows: map[string]json.RawMessage{}}
}

func key(kind, id string) string { return kind + "/" + id }

func (m *memStore) Insert(_ context.Context, kind, id string, body json.RawMessage, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := key(kind, id)
	if _, ok := m.rows[k]; ok {
		return model.ErrDuplicateRecord
	}
	m.rows[k] = body
	m.order = append(m.order, k)
	return nil
}

func (m *memStore) Replace(_ context.Context, kind, id string, body json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := key(kind, id)
	if _, ok := m.rows[k]; !ok {
		return model.ErrRecordNotFound
	}
	m.rows[k] = body
	return nil
}

func (m *memStore) Delete(_ context.Context, kind, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := key(kind, id)
	if _, ok := m.rows[k]; !ok {
		return model.ErrRecordNotFound
	}
	delete(m.rows, k)
	return nil
}

func (m *memStore) Get(_ context.Context, kind, id string) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	body, ok := m.rows[key(kind, id)]
	if !ok {
		return nil, model.ErrRecordNotFound
	}
	return body, nil
}

func (m *memStore) List(ctx context.Context, kind string) ([]json.RawMessage, error) {
	return m.Match(ctx, kind, nil)
}

func (m *memStore) Match(_ context.Context, kind string, filter map[string]any) ([]json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []json.RawMessage{}
	for _, k := range m.order {
		body, ok := m.rows[k]
		if !ok || !strings.HasPrefix(k, kind+"/") {
			continue
		}
		fields := decodeFields(body)
		match := true
		for f, v := range filter {
			if fmt.Sprint(fields[f]) != fmt.Sprint(v) {
				match = false
			}
		}
		if match {
			out = append(out, body)
		}
	}
	return out, nil
}

func (m *memStore) ExistsField(_ context.Context, kind, field, value, exceptID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, body := range m.rows {
		if !strings.HasPrefix(k, kind+"/") || k == key(kind, exceptID) {
			continue
		}
		if s, ok := decodeFields(body)[field].(string); ok && strings.EqualFold(s, value) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) count(kind string) int {
	rows, _ := m.List(context.Background(), kind)
	return len(rows)
}

func decodeFields(body json.RawMessage) map[string]any {
	var fields map[string]any
	_ = json.Unmarshal(body, &fields)
	return fields
}

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) FindByID(ctx context.Context, id string) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockUserStore) FindByUsername(ctx context.Context, username string) (model.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockUserStore) Exists(ctx context.Context, username, email string) (bool, error) {
	args := m.Called(ctx, username, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserStore) Create(ctx context.Context, u model.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserStore) TouchLogin(ctx context.Context, id string, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *mockUserStore) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *mockUserStore) CountByRole(ctx context.Context, role string) (int, error) {
	args := m.Called(ctx, role)
	return args.Int(0), args.Error(1)
}

type memAudit struct {
	mu      sync.Mutex
	entries []model.AuditEntry
}

func (a *memAudit) Log(_ context.Context, e model.AuditEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, e)
	return nil
}

func (a *memAudit) Query(context.Context, model.AuditQuery) ([]model.AuditEntry, model.Meta, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]model.AuditEntry(nil), a.entries...), model.Meta{Total: len(a.entries)}, nil
}

func (a *memAudit) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.entries))
	for _, e := range a.entries {
		out = append(out, e.Action+":"+e.Status)
	}
	return out
}
