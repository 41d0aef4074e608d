package notify

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms-portal/internal/workflow"
)

func TestConsolePlain(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf, false).Notify(workflow.Notification{Severity: workflow.SeverityWarn, Summary: "Incomplete", Detail: "Fill the form"})
	assert.Equal(t, "[warn] Incomplete: Fill the form\n", buf.String())
}

func TestConsoleColor(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf, true).Notify(workflow.Notification{Severity: workflow.SeverityError, Summary: "Error", Detail: "x"})
	assert.Contains(t, buf.String(), red)
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	NewLog(log).Notify(workflow.Notification{Severity: workflow.SeverityError, Summary: "Error", Detail: "boom"})

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "detail=boom")
	assert.Contains(t, out, "component=notify")
}

func TestRecorderAndFanout(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	sink := Fanout(a, nil, b)

	sink.Notify(workflow.Notification{Severity: workflow.SeveritySuccess, Summary: "Created"})
	sink.Notify(workflow.Notification{Severity: workflow.SeverityWarn, Summary: "Incomplete"})

	assert.Len(t, a.All(), 2)
	assert.Len(t, b.All(), 2)
	assert.Equal(t, 1, a.Count(workflow.SeverityWarn))

	last, ok := b.Last()
	require.True(t, ok)
	assert.Equal(t, "Incomplete", last.Summary)

	a.Clear()
	_, ok = a.Last()
	assert.False(t, ok)
}
