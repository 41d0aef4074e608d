package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"hrms-portal/pkg/apierror"
)

var (
	codePattern          = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	lettersSpacesPattern = regexp.MustCompile(`^[A-Za-z ]+$`)
	reasonPattern        = regexp.MustCompile(`^[A-Za-z0-9,. ]+$`)
)

// NewValidator returns a validator aware of the HR custom tags: code,
// letters_spaces, reason_text, notfuture and thisyear. now decides what
// "future" and "this year" mean.
func NewValidator(now func() time.Time) *validator.Validate {
	if now == nil {
		now = time.Now
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("code", func(fl validator.FieldLevel) bool {
		return codePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("letters_spaces", func(fl validator.FieldLevel) bool {
		return lettersSpacesPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
		d, err := time.Parse(time.DateOnly, fl.Field().String())
		if err != nil {
			return false
		}
		today := now().Format(time.DateOnly)
		return d.Format(time.DateOnly) <= today
	})
	_ = v.RegisterValidation("thisyear", func(fl validator.FieldLevel) bool {
		d, err := time.Parse(time.DateOnly, fl.Field().String())
		if err != nil {
			return false
		}
		return d.Year() >= now().Year()
	})
	_ = v.RegisterValidation("reason_text", func(fl validator.FieldLevel) bool {
		return reasonPattern.MatchString(fl.Field().String())
	})
	return v
}

// validationError turns the first failed rule into a 400 the portal can
// show as is.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apierror.Invalid("Invalid request payload")
	}

	fe := verrs[0]
	field := fe.Field()
	var msg string
	switch fe.Tag() {
	case "required":
		msg = field + " is required"
	case "max":
		msg = fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "min":
		msg = fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "len":
		msg = fmt.Sprintf("%s must be exactly %s digits", field, fe.Param())
	case "email":
		msg = field + " must be a valid email address"
	case "oneof":
		msg = fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "datetime":
		msg = field + " must be a date in YYYY-MM-DD format"
	case "notfuture":
		msg = field + " cannot be in the future"
	case "thisyear":
		msg = field + " must be in the current year"
	case "reason_text":
		msg = field + " may only contain letters, digits, commas, dots and spaces"
	case "alpha", "letters_spaces":
		msg = field + " must contain letters only"
	case "numeric":
		msg = field + " must contain digits only"
	case "code", "alphanum":
		msg = field + " must be alphanumeric"
	case "lowercase":
		msg = field + " must be lowercase"
	default:
		msg = fmt.Sprintf("%s is invalid", field)
	}

	e := apierror.Invalid(msg)
	e.Details = fe.Namespace()
	return e
}
