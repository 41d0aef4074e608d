package notify

import (
	"fmt"
	"strings"

	"hrms-portal/internal/event"
	"hrms-portal/internal/workflow"
)

var eventSummaries = map[event.Type]string{
	event.TypeRecordCreated:  "Created",
	event.TypeRecordUpdated:  "Updated",
	event.TypeRecordDeleted:  "Deleted",
	event.TypePhotoUploaded:  "Photo uploaded",
	event.TypeRegularized:    "Reviewed",
	event.TypeClockedIn:      "Clocked in",
	event.TypeClockedOut:     "Clocked out",
	event.TypePayrollCreated: "Payroll generated",
	event.TypeUserRegistered: "User registered",
}

// FromEvent turns a pushed record event into an info notification, e.g.
// "Deleted: leave type 3f2a".
func FromEvent(e event.Event) workflow.Notification {
	summary, ok := eventSummaries[e.Type]
	if !ok {
		summary = string(e.Type)
	}

	kind := strings.ReplaceAll(e.Record.Kind, "_", " ")
	detail := strings.TrimSpace(kind + " " + e.Record.ID)
	if status := payloadString(e.Payload, "status"); status != "" {
		detail = fmt.Sprintf("%s (%s)", detail, strings.ToLower(status))
	}

	sev := workflow.SeverityInfo
	if e.Type == event.TypeRecordDeleted {
		sev = workflow.SeverityWarn
	}
	return workflow.Notification{Severity: sev, Summary: summary, Detail: detail}
}

// Events forwards every event of ch to sink until ch is closed.
func Events(ch <-chan event.Event, sink workflow.Notifier) {
	for e := range ch {
		sink.Notify(FromEvent(e))
	}
}

func payloadString(payload any, key string) string {
	m, ok := payload.(map[string]any)
	if !ok {
		return ""
	}
	s, _ := m[key].(string)
	return s
}
