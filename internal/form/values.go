package form

import (
	"strconv"
	"strings"
)

// Values is a snapshot of field values keyed by field name.
type Values map[string]string

func (v Values) Get(name string) string {
	return v[name]
}

// Trimmed returns the value with surrounding whitespace removed.
func (v Values) Trimmed(name string) string {
	return strings.TrimSpace(v[name])
}

func (v Values) Bool(name string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(v[name]))
	return err == nil && b
}

// Int parses the value as an integer; empty input yields 0.
func (v Values) Int(name string) (int, error) {
	raw := strings.TrimSpace(v[name])
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

// Optional returns nil for empty values so that wire payloads can omit them.
func (v Values) Optional(name string) *string {
	raw := strings.TrimSpace(v[name])
	if raw == "" {
		return nil
	}
	return &raw
}

// FormatBool renders a checkbox value.
func FormatBool(b bool) string {
	return strconv.FormatBool(b)
}
