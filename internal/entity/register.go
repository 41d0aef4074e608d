package entity

import (
	"regexp"
	"strings"

	"hrms-portal/internal/form"
	"hrms-portal/internal/model"
	"hrms-portal/internal/workflow"
)

var nonLowerAlnum = regexp.MustCompile(`[^a-z0-9]`)

// SanitizeUsername lowercases and drops everything outside [a-z0-9].
func SanitizeUsername(s string) string {
	return nonLowerAlnum.ReplaceAllString(strings.ToLower(s), "")
}

func SanitizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Register is the administrator's user registration page.
func (c Catalog) Register() workflow.Definition[model.RegisteredUser] {
	s := form.NewSchema()
	s.Field("username").
		Validate(form.Required(), form.Pattern(`^[a-z0-9]+$`), form.MaxLength(30)).
		Filter(form.LowerAlphanumeric())
	s.Field("email").
		Validate(form.Required(), form.Pattern(`^[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}$`)).
		Filter(form.NoUpper())
	s.Field("role").Validate(form.Required(), form.OneOf(model.RoleHR, model.RoleManager, model.RoleFinance, model.RoleEmployee))

	return workflow.Definition[model.RegisteredUser]{
		Name:   "User",
		Schema: s,
		Encode: func(v form.Values) (model.RegisteredUser, error) {
			return model.RegisteredUser{User: model.User{
				Username: SanitizeUsername(v.Get("username")),
				Email:    SanitizeEmail(v.Get("email")),
				Role:     v.Get("role"),
			}}, nil
		},
		Decode: func(u model.RegisteredUser) map[string]string {
			return map[string]string{"username": u.Username, "email": u.Email, "role": u.Role}
		},
		ID: func(u model.RegisteredUser) string { return u.ID },
		Messages: workflow.Messages[model.RegisteredUser]{
			Created:      func(model.RegisteredUser) string { return "User has been registered successfully!" },
			CreateFailed: "Something went wrong.",
			LoadFailed:   "Failed to load users.",
		},
	}
}
