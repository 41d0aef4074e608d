// Package session carries the signed-in user through page construction.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"hrms-portal/internal/form"
)

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleHR       Role = "HR"
	RoleEmployee Role = "EMPLOYEE"
	RoleManager  Role = "MANAGER"
	RoleFinance  Role = "FINANCE"
)

var ErrUnknownRole = errors.New("unknown user role")

// ParseRole normalizes a role name from the backend.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	switch r {
	case RoleAdmin, RoleHR, RoleEmployee, RoleManager, RoleFinance:
		return r, nil
	}
	return "", ErrUnknownRole
}

var dashboards = map[Role]string{
	RoleAdmin:    "/dashboard",
	RoleHR:       "/hr-dashboard",
	RoleEmployee: "/employees-dashboard",
	RoleManager:  "/manager-dashboard",
	RoleFinance:  "/finance-dashboard",
}

// Dashboard returns the landing route of a role.
func Dashboard(r Role) (string, error) {
	route, ok := dashboards[r]
	if !ok {
		return "", ErrUnknownRole
	}
	return route, nil
}

// Session is the authenticated context passed into each page.
type Session struct {
	UserID     string `json:"userId"`
	Username   string `json:"username"`
	Role       Role   `json:"role"`
	Token      string `json:"token"`
	EmployeeID string `json:"employeeId,omitempty"`
}

func (s Session) Authenticated() bool {
	return s.Token != ""
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// CanModify reports whether the session may create, edit or delete master
// data records.
func (s Session) CanModify() bool {
	return s.Role == RoleAdmin || s.Role == RoleHR
}

// CanReview reports whether the session may approve or reject attendance
// regularizations.
func (s Session) CanReview() bool {
	return s.CanModify() || s.Role == RoleManager
}

// CanRunPayroll reports whether the session may generate payroll.
func (s Session) CanRunPayroll() bool {
	return s.CanModify() || s.Role == RoleFinance
}

// Save writes the session to path with owner-only permissions.
func Save(path string, s Session) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Load reads a session saved by Save.
func Load(path string) (Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Session{}, fmt.Errorf("read session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	return s, nil
}

// PasswordMessage is shown when a password fails the policy.
const PasswordMessage = "Password must be 8-16 characters with at least one uppercase letter, one lowercase letter, one digit, and one special character."

// PasswordPolicy requires 8 to 16 characters with upper, lower, digit and
// special characters.
func PasswordPolicy() form.Validator {
	return form.Check("password", PasswordMessage, func(v string) bool {
		n := len([]rune(v))
		if n < 8 || n > 16 {
			return false
		}
		var upper, lower, digit, special bool
		for _, r := range v {
			switch {
			case r >= 'A' && r <= 'Z':
				upper = true
			case r >= 'a' && r <= 'z':
				lower = true
			case r >= '0' && r <= '9':
				digit = true
			default:
				special = true
			}
		}
		return upper && lower && digit && special
	})
}
