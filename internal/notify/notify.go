// Package notify provides sinks for workflow notifications.
package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"hrms-portal/internal/workflow"
)

const (
	reset  = "\033[0m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	blue   = "\033[34m"
)

// Console prints notifications as single lines, colored by severity.
type Console struct {
	mu    sync.Mutex
	w     io.Writer
	color bool
}

func NewConsole(w io.Writer, color bool) *Console {
	return &Console{w: w, color: color}
}

func (c *Console) Notify(n workflow.Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.color {
		fmt.Fprintf(c.w, "[%s] %s: %s\n", n.Severity, n.Summary, n.Detail)
		return
	}
	fmt.Fprintf(c.w, "%s[%s]%s %s: %s\n", colorOf(n.Severity), n.Severity, reset, n.Summary, n.Detail)
}

func colorOf(s workflow.Severity) string {
	switch s {
	case workflow.SeveritySuccess:
		return green
	case workflow.SeverityWarn:
		return yellow
	case workflow.SeverityError:
		return red
	default:
		return blue
	}
}

// Log forwards notifications to a structured logger.
type Log struct {
	log *slog.Logger
}

func NewLog(log *slog.Logger) *Log {
	return &Log{log: log.With("component", "notify")}
}

func (l *Log) Notify(n workflow.Notification) {
	l.log.Log(context.Background(), levelOf(n.Severity), n.Summary, "severity", n.Severity, "detail", n.Detail)
}

func levelOf(s workflow.Severity) slog.Level {
	switch s {
	case workflow.SeverityWarn:
		return slog.LevelWarn
	case workflow.SeverityError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Recorder keeps every notification in arrival order.
type Recorder struct {
	mu  sync.Mutex
	all []workflow.Notification
}

func (r *Recorder) Notify(n workflow.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.all = append(r.all, n)
}

func (r *Recorder) All() []workflow.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]workflow.Notification(nil), r.all...)
}

// Last returns the most recent notification.
func (r *Recorder) Last() (workflow.Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.all) == 0 {
		return workflow.Notification{}, false
	}
	return r.all[len(r.all)-1], true
}

func (r *Recorder) Count(sev workflow.Severity) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, x := range r.all {
		if x.Severity == sev {
			n++
		}
	}
	return n
}

func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.all = nil
}

type fanout []workflow.Notifier

func (f fanout) Notify(n workflow.Notification) {
	for _, s := range f {
		s.Notify(n)
	}
}

// Fanout delivers each notification to every sink, in order. Nil sinks are
// skipped.
func Fanout(sinks ...workflow.Notifier) workflow.Notifier {
	out := make(fanout, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}
