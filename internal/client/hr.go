package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"hrms-portal/internal/model"
	"hrms-portal/internal/session"
	"hrms-portal/internal/workflow"
)

// Backends bundles the per-page collaborators of the HR API.
type Backends struct {
	Employees   *Resource[model.Employee]
	Benefits    *Resource[model.Benefit]
	Compliances *Resource[model.Compliance]
	Departments *Resource[model.Department]
	LeaveTypes  *Resource[model.LeaveType]
	Users       *Users
	Attendance  *Attendance
	Payroll     *Payroll
	Auth        *Auth
}

func NewBackends(c *Client) *Backends {
	return &Backends{
		Employees:   NewResource[model.Employee](c, "/employees").WithPayloadPart("employee"),
		Benefits:    NewResource[model.Benefit](c, "/benefits"),
		Compliances: NewResource[model.Compliance](c, "/compliances"),
		Departments: NewResource[model.Department](c, "/departments"),
		LeaveTypes:  NewResource[model.LeaveType](c, "/leave-types"),
		Users:       &Users{c: c},
		Attendance:  &Attendance{c: c},
		Payroll:     &Payroll{c: c},
		Auth:        &Auth{c: c},
	}
}

type Auth struct {
	c *Client
}

func (a *Auth) Login(ctx context.Context, username, password string) (session.Session, error) {
	req, err := jsonRequest("login", http.MethodPost, "/auth/login", model.LoginRequest{Username: username, Password: password})
	if err != nil {
		return session.Session{}, err
	}

	var resp model.LoginResponse
	if err := a.c.do(ctx, req, &resp); err != nil {
		return session.Session{}, err
	}

	return session.Session{
		UserID:     resp.UserID,
		Username:   resp.Username,
		Role:       session.Role(resp.Role),
		Token:      resp.Token,
		EmployeeID: resp.EmployeeID,
	}, nil
}

// Users is the registration backend. Accounts cannot be edited or removed
// through it.
type Users struct {
	c *Client
}

func (u *Users) Create(ctx context.Context, payload model.RegisteredUser, _ []workflow.Attachment) (model.RegisteredUser, error) {
	var out model.RegisteredUser
	req, err := jsonRequest("register", http.MethodPost, "/auth/register", model.RegisterRequest{
		Username: payload.Username,
		Email:    payload.Email,
		Role:     payload.Role,
	})
	if err != nil {
		return out, err
	}
	err = u.c.do(ctx, req, &out)
	return out, err
}

func (u *Users) Update(context.Context, string, model.RegisteredUser) (model.RegisteredUser, error) {
	return model.RegisteredUser{}, fmt.Errorf("update user: %w", errors.ErrUnsupported)
}

func (u *Users) Delete(context.Context, string) error {
	return fmt.Errorf("delete user: %w", errors.ErrUnsupported)
}

func (u *Users) List(ctx context.Context) ([]model.RegisteredUser, error) {
	var users []model.User
	if err := u.c.do(ctx, request{op: "list users", method: http.MethodGet, path: "/users"}, &users); err != nil {
		return nil, err
	}
	out := make([]model.RegisteredUser, 0, len(users))
	for _, user := range users {
		out = append(out, model.RegisteredUser{User: user})
	}
	return out, nil
}

type Attendance struct {
	c *Client
}

const regularizations = "/attendance/regularizations"

func (a *Attendance) ListRegularizations(ctx context.Context) ([]model.Attendance, error) {
	out := []model.Attendance{}
	err := a.c.do(ctx, request{op: "list regularizations", method: http.MethodGet, path: regularizations}, &out)
	return out, err
}

func (a *Attendance) RequestRegularization(ctx context.Context, r model.RegularizationRequest) (model.Attendance, error) {
	var out model.Attendance
	req, err := jsonRequest("request regularization", http.MethodPost, regularizations, r)
	if err != nil {
		return out, err
	}
	err = a.c.do(ctx, req, &out)
	return out, err
}

func (a *Attendance) Approve(ctx context.Context, id string) (string, error) {
	var msg string
	err := a.c.do(ctx, request{op: "approve regularization", method: http.MethodPut, path: regularizations + "/" + url.PathEscape(id) + "/approve"}, &msg)
	return msg, err
}

func (a *Attendance) Reject(ctx context.Context, id string, reason string) (string, error) {
	var msg string
	req, err := jsonRequest("reject regularization", http.MethodPut, regularizations+"/"+url.PathEscape(id)+"/reject", model.RejectRequest{Reason: reason})
	if err != nil {
		return "", err
	}
	err = a.c.do(ctx, req, &msg)
	return msg, err
}

func (a *Attendance) ClockStatus(ctx context.Context) (model.ClockStatus, error) {
	var out model.ClockStatus
	err := a.c.do(ctx, request{op: "attendance status", method: http.MethodGet, path: "/attendance/status"}, &out)
	return out, err
}

func (a *Attendance) ClockIn(ctx context.Context, r model.ClockInRequest) (string, error) {
	var msg string
	req, err := jsonRequest("clock in", http.MethodPost, "/attendance/clock-in", r)
	if err != nil {
		return "", err
	}
	err = a.c.do(ctx, req, &msg)
	return msg, err
}

func (a *Attendance) ClockOut(ctx context.Context) (string, error) {
	var msg string
	err := a.c.do(ctx, request{op: "clock out", method: http.MethodPost, path: "/attendance/clock-out"}, &msg)
	return msg, err
}

type Payroll struct {
	c *Client
}

func (p *Payroll) Generate(ctx context.Context, r model.PayrollRequest) (model.Payroll, error) {
	var out model.Payroll
	req, err := jsonRequest("generate payroll", http.MethodPost, "/payroll/generate", r)
	if err != nil {
		return out, err
	}
	err = p.c.do(ctx, req, &out)
	return out, err
}

func (p *Payroll) View(ctx context.Context, r model.PayrollRequest) (model.Payroll, error) {
	q := url.Values{}
	q.Set("employeeId", r.EmployeeID)
	q.Set("month", r.Month)
	q.Set("year", strconv.Itoa(r.Year))

	var out model.Payroll
	err := p.c.do(ctx, request{op: "view payroll", method: http.MethodGet, path: "/payroll?" + q.Encode()}, &out)
	return out, err
}
