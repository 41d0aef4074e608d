package workflow

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"hrms-portal/internal/form"
)

type person struct {
	ID        string
	FirstName string
	LastName  string
	Status    string
}

type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) Create(ctx context.Context, payload person, attachments []Attachment) (person, error) {
	args := m.Called(ctx, payload, attachments)
	return args.Get(0).(person), args.Error(1)
}

func (m *mockBackend) Update(ctx context.Context, id string, payload person) (person, error) {
	args := m.Called(ctx, id, payload)
	return args.Get(0).(person), args.Error(1)
}

func (m *mockBackend) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockBackend) List(ctx context.Context) ([]person, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]person), args.Error(1)
	}
	return nil, args.Error(1)
}

type recorder struct {
	mu  sync.Mutex
	all []Notification
}

func (r *recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.all = append(r.all, n)
}

func (r *recorder) list() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.all...)
}

func personSchema() *form.Schema {
	s := form.NewSchema()
	s.Field("firstName").Validate(form.Required(), form.Pattern(`^[A-Za-z]+$`)).Filter(form.Letters())
	s.Field("lastName").Validate(form.Required())
	s.Field("status").Default("ACTIVE").Validate(form.Required(), form.OneOf("ACTIVE", "INACTIVE"))
	s.Field("joiningDate").Validate(form.Date())
	s.Field("probationEndDate").DerivedFrom("joiningDate", form.AddMonths(3))
	return s
}

func personDefinition() Definition[person] {
	return Definition[person]{
		Name:   "Employee",
		Schema: personSchema(),
		Encode: func(v form.Values) (person, error) {
			return person{FirstName: v.Trimmed("firstName"), LastName: v.Trimmed("lastName"), Status: v.Get("status")}, nil
		},
		Decode: func(p person) map[string]string {
			return map[string]string{"firstName": p.FirstName, "lastName": p.LastName, "status": p.Status, "salary": "100"}
		},
		ID:         func(p person) string { return p.ID },
		Attachment: "photo",
		Messages: Messages[person]{
			Created: func(p person) string {
				return "Employee " + p.FirstName + " " + p.LastName + " created successfully!"
			},
		},
	}
}
