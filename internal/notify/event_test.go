package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hrms-portal/internal/event"
	"hrms-portal/internal/workflow"
)

func TestFromEvent(t *testing.T) {
	n := FromEvent(event.Event{Type: event.TypeRecordDeleted, Record: event.RecordRef{Kind: "leave_type", ID: "lt-1"}})
	assert.Equal(t, workflow.Notification{Severity: workflow.SeverityWarn, Summary: "Deleted", Detail: "leave type lt-1"}, n)

	// Events arrive over the wire with a decoded JSON payload.
	n = FromEvent(event.Event{
		Type:    event.TypeRegularized,
		Record:  event.RecordRef{Kind: "attendance", ID: "a-1"},
		Payload: map[string]any{"status": "APPROVED"},
	})
	assert.Equal(t, workflow.SeverityInfo, n.Severity)
	assert.Equal(t, "Reviewed", n.Summary)
	assert.Equal(t, "attendance a-1 (approved)", n.Detail)

	n = FromEvent(event.Event{Type: "custom.thing", Record: event.RecordRef{Kind: "x", ID: "1"}})
	assert.Equal(t, "custom.thing", n.Summary)
}

func TestEventsDrainsChannel(t *testing.T) {
	ch := make(chan event.Event, 2)
	ch <- event.Event{Type: event.TypeRecordCreated, Record: event.RecordRef{Kind: "benefit", ID: "b-1"}}
	ch <- event.Event{Type: event.TypePayrollCreated, Record: event.RecordRef{Kind: "payroll", ID: "p-1"}}
	close(ch)

	rec := &Recorder{}
	Events(ch, rec)

	all := rec.All()
	assert.Len(t, all, 2)
	assert.Equal(t, "Payroll generated", all[1].Summary)
}
