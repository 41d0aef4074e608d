package model

import "errors"

var (
	// User related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is inactive")

	// Permission/Access related errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Record related errors
	ErrRecordNotFound  = errors.New("record not found")
	ErrDuplicateRecord = errors.New("duplicate record")
	ErrAlreadyReviewed = errors.New("request already reviewed")
	ErrMissingPhoto    = errors.New("photo is required")
	ErrNoCompensation  = errors.New("salary structure not defined")
	ErrPayrollNotFound = errors.New("payroll not found")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
