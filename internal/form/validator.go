package form

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// DateLayout is the wire and input format of every date field.
const DateLayout = "2006-01-02"

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Violation is a failed predicate on a single field.
type Violation struct {
	Rule    string
	Message string
}

func (v *Violation) Error() string {
	return v.Rule + ": " + v.Message
}

// Validator checks a field value. values holds the rest of the form so that
// cross-field rules can read their peers.
type Validator func(value string, values Values) error

func violation(rule string, format string, args ...any) error {
	return &Violation{Rule: rule, Message: fmt.Sprintf(format, args...)}
}

// Required fails on empty or whitespace-only input. Optional predicates below
// skip empty values so that they compose with Required.
func Required() Validator {
	return func(value string, _ Values) error {
		if strings.TrimSpace(value) == "" {
			return violation("required", "this field is required")
		}
		return nil
	}
}

func Pattern(expr string) Validator {
	re := regexp.MustCompile(expr)
	return func(value string, _ Values) error {
		if value == "" || re.MatchString(value) {
			return nil
		}
		return violation("pattern", "value does not match %s", expr)
	}
}

func MaxLength(n int) Validator {
	return func(value string, _ Values) error {
		if utf8.RuneCountInString(value) > n {
			return violation("maxlength", "must be at most %d characters", n)
		}
		return nil
	}
}

func MinLength(n int) Validator {
	return func(value string, _ Values) error {
		if value != "" && utf8.RuneCountInString(value) < n {
			return violation("minlength", "must be at least %d characters", n)
		}
		return nil
	}
}

func Email() Validator {
	return func(value string, _ Values) error {
		if value == "" || emailPattern.MatchString(value) {
			return nil
		}
		return violation("email", "invalid email address")
	}
}

// Range accepts numbers in [lo, hi].
func Range(lo float64, hi float64) Validator {
	return func(value string, _ Values) error {
		if strings.TrimSpace(value) == "" {
			return nil
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return violation("number", "must be a number")
		}
		if n < lo || n > hi {
			return violation("range", "must be between %g and %g", lo, hi)
		}
		return nil
	}
}

// Min accepts numbers >= lo.
func Min(lo float64) Validator {
	return func(value string, _ Values) error {
		if strings.TrimSpace(value) == "" {
			return nil
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return violation("number", "must be a number")
		}
		if n < lo {
			return violation("min", "must be at least %g", lo)
		}
		return nil
	}
}

func OneOf(options ...string) Validator {
	return func(value string, _ Values) error {
		if value == "" || slices.Contains(options, value) {
			return nil
		}
		return violation("oneof", "must be one of %s", strings.Join(options, ", "))
	}
}

// Date requires a calendar date in DateLayout with a year of at most four
// digits.
func Date() Validator {
	return func(value string, _ Values) error {
		if value == "" {
			return nil
		}
		if year, _, _ := strings.Cut(value, "-"); len(year) > 4 {
			return violation("year", "Year cannot exceed 4 digits.")
		}
		if _, err := time.Parse(DateLayout, value); err != nil {
			return violation("date", "invalid date, expected YYYY-MM-DD")
		}
		return nil
	}
}

// NotFuture rejects dates after today according to now.
func NotFuture(now func() time.Time) Validator {
	return func(value string, _ Values) error {
		d, ok := parseDate(value)
		if !ok {
			return nil
		}
		if d.After(today(now)) {
			return violation("future", "date cannot be in the future")
		}
		return nil
	}
}

// NotPast rejects dates before today according to now.
func NotPast(now func() time.Time) Validator {
	return func(value string, _ Values) error {
		d, ok := parseDate(value)
		if !ok {
			return nil
		}
		if d.Before(today(now)) {
			return violation("past", "Past dates are not allowed.")
		}
		return nil
	}
}

// NotBeforeYearStart rejects dates before January 1 of the current year
// according to now.
func NotBeforeYearStart(now func() time.Time) Validator {
	return func(value string, _ Values) error {
		d, ok := parseDate(value)
		if !ok {
			return nil
		}
		if d.Year() < now().Year() {
			return violation("yearstart", "Please select a date in the current year.")
		}
		return nil
	}
}

// NotBefore requires the date to be on or after the date held by field other.
func NotBefore(other string) Validator {
	return func(value string, values Values) error {
		d, ok := parseDate(value)
		if !ok {
			return nil
		}
		ref, ok := parseDate(values.Get(other))
		if !ok {
			return nil
		}
		if d.Before(ref) {
			return violation("order", "must not be before %s", other)
		}
		return nil
	}
}

// Check adapts an arbitrary predicate.
func Check(rule string, message string, ok func(value string) bool) Validator {
	return func(value string, _ Values) error {
		if value == "" || ok(value) {
			return nil
		}
		return violation(rule, "%s", message)
	}
}

func parseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	d, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

func today(now func() time.Time) time.Time {
	t := now()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
