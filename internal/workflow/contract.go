package workflow

import (
	"context"
	"io"
)

// Backend is the persistence collaborator for one entity type.
//
// A delete that the server answers with no content must be reported as a nil
// error; implementations never surface success through the error channel.
type Backend[T any] interface {
	Create(ctx context.Context, payload T, attachments []Attachment) (T, error)
	Update(ctx context.Context, id string, payload T) (T, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]T, error)
}

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarn    Severity = "warn"
	SeverityError   Severity = "error"
)

// Notification is a transient user-facing message.
type Notification struct {
	Severity Severity `json:"severity"`
	Summary  string   `json:"summary"`
	Detail   string   `json:"detail"`
}

// Notifier displays notifications. Notify must not block on the user.
type Notifier interface {
	Notify(n Notification)
}

type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// Prompt describes a yes/no gate shown before a destructive or final action.
type Prompt struct {
	Header        string
	Message       string
	RequireReason bool
}

// Decision is the user's answer to a Prompt.
type Decision struct {
	Confirmed bool
	Reason    string
}

type Confirmer interface {
	Confirm(ctx context.Context, p Prompt) Decision
}

type ConfirmerFunc func(ctx context.Context, p Prompt) Decision

func (f ConfirmerFunc) Confirm(ctx context.Context, p Prompt) Decision { return f(ctx, p) }

// AutoConfirm accepts every prompt. Suitable for non-interactive callers.
var AutoConfirm Confirmer = ConfirmerFunc(func(context.Context, Prompt) Decision {
	return Decision{Confirmed: true}
})

// Attachment is a binary part submitted alongside a record, such as an
// employee photo.
type Attachment struct {
	Field       string
	Filename    string
	ContentType string
	Open        func() (io.ReadCloser, error)
}
