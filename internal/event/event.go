package event

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeRecordCreated  Type = "record.created"
	TypeRecordUpdated  Type = "record.updated"
	TypeRecordDeleted  Type = "record.deleted"
	TypePhotoUploaded  Type = "photo.uploaded"
	TypeRegularized    Type = "attendance.reviewed"
	TypeClockedIn      Type = "attendance.clocked_in"
	TypeClockedOut     Type = "attendance.clocked_out"
	TypePayrollCreated Type = "payroll.generated"
	TypeUserRegistered Type = "user.registered"
)

// RecordRef identifies the record an event is about.
type RecordRef struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

type Event struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Record    RecordRef `json:"record"`
	Payload   any       `json:"payload,omitempty"`
	Timestamp string    `json:"timestamp"`
	ActorID   string    `json:"actorId,omitempty"` // Who triggered the event
}

// New stamps an event with a fresh id and the current time.
func New(t Type, kind, id string, payload any, actorID string) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      t,
		Record:    RecordRef{Kind: kind, ID: id},
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		ActorID:   actorID,
	}
}

type Bus interface {
	Publish(e Event)
	Subscribe() (<-chan Event, func()) // Returns channel and unsubscribe function
}
