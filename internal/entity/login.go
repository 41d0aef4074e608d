package entity

import (
	"context"
	"errors"
	"strings"
	"sync"

	"hrms-portal/internal/form"
	"hrms-portal/internal/session"
	"hrms-portal/internal/workflow"
)

// Authenticator exchanges credentials for a session.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (session.Session, error)
}

var loginMessages = []string{
	"Username and password are incorrect",
	"Username is incorrect",
	"Password is incorrect",
	"Account is INACTIVE",
}

// Login drives the sign-in page.
type Login struct {
	auth     Authenticator
	notifier workflow.Notifier

	mu    sync.Mutex
	state *form.State
}

func NewLogin(auth Authenticator, notifier workflow.Notifier) *Login {
	s := form.NewSchema()
	s.Field("username").Validate(form.Required())
	s.Field("password").Validate(form.Required(), session.PasswordPolicy())
	return &Login{auth: auth, notifier: notifier, state: s.New(form.ModeCreate)}
}

func (l *Login) Set(name, value string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Set(name, value)
}

// Submit signs in and returns the session together with the landing route
// of its role.
func (l *Login) Submit(ctx context.Context) (session.Session, string, error) {
	l.mu.Lock()
	values := l.state.Values()
	l.state.Touch()
	l.mu.Unlock()

	username, password := values.Trimmed("username"), values.Get("password")
	if username == "" || password == "" {
		l.notify(workflow.SeverityWarn, "Validation", "Username and Password is required")
		return session.Session{}, "", workflow.ErrIncomplete
	}
	if err := session.PasswordPolicy()(password, values); err != nil {
		l.notify(workflow.SeverityWarn, "Validation", session.PasswordMessage)
		return session.Session{}, "", &workflow.ValidationError{Fields: map[string][]string{"password": {session.PasswordMessage}}}
	}

	sess, err := l.auth.Login(ctx, username, password)
	if err != nil {
		l.notify(workflow.SeverityError, "Login Failed", loginFailure(err))
		return session.Session{}, "", err
	}

	route, err := session.Dashboard(sess.Role)
	if err != nil {
		l.notify(workflow.SeverityError, "Login", "Unknown user role, cannot navigate to dashboard.")
		return session.Session{}, "", err
	}

	l.mu.Lock()
	l.state.Reset()
	l.mu.Unlock()
	return sess, route, nil
}

// loginFailure maps a backend message onto one of the known login failures.
func loginFailure(err error) string {
	msg := workflow.Describe(err, "Login failed")
	lower := strings.ToLower(msg)
	for _, known := range loginMessages {
		if strings.Contains(lower, strings.ToLower(known)) {
			return known
		}
	}
	var te *workflow.TransportError
	if errors.As(err, &te) {
		return "Unable to reach the server"
	}
	return msg
}

func (l *Login) notify(sev workflow.Severity, summary, detail string) {
	l.notifier.Notify(workflow.Notification{Severity: sev, Summary: summary, Detail: detail})
}
