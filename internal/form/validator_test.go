package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidators(t *testing.T) {
	cases := []struct {
		name  string
		v     Validator
		value string
		ok    bool
	}{
		{"required empty", Required(), "  ", false},
		{"required set", Required(), "x", true},
		{"pattern skips empty", Pattern(`^[0-9]+$`), "", true},
		{"pattern mismatch", Pattern(`^[0-9]+$`), "12a", false},
		{"maxlength counts runes", MaxLength(3), "äöü", true},
		{"maxlength over", MaxLength(3), "abcd", false},
		{"minlength", MinLength(2), "a", false},
		{"email ok", Email(), "jane.doe@example.com", true},
		{"email bad", Email(), "jane@", false},
		{"range in", Range(0, 10), "10", true},
		{"range out", Range(0, 10), "11", false},
		{"range nan", Range(0, 10), "ten", false},
		{"min negative", Min(0), "-1", false},
		{"oneof", OneOf("A", "B"), "C", false},
		{"date ok", Date(), "2024-02-29", true},
		{"date bad", Date(), "2023-02-29", false},
		{"date long year", Date(), "20245-01-01", false},
		{"not future today", NotFuture(fixedNow), "2025-06-15", true},
		{"not future tomorrow", NotFuture(fixedNow), "2025-06-16", false},
		{"not past today", NotPast(fixedNow), "2025-06-15", true},
		{"not past yesterday", NotPast(fixedNow), "2025-06-14", false},
		{"year start first day", NotBeforeYearStart(fixedNow), "2025-01-01", true},
		{"year start last year", NotBeforeYearStart(fixedNow), "2024-12-31", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.v(tc.value, Values{})
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNotBefore(t *testing.T) {
	v := NotBefore("fromDate")

	assert.NoError(t, v("2025-01-02", Values{"fromDate": "2025-01-01"}))
	assert.Error(t, v("2024-12-31", Values{"fromDate": "2025-01-01"}))
	assert.NoError(t, v("2024-12-31", Values{}))
}

func TestYearViolationMessage(t *testing.T) {
	err := Date()("123456-01-01", nil)
	var vi *Violation
	if assert.ErrorAs(t, err, &vi) {
		assert.Equal(t, "Year cannot exceed 4 digits.", vi.Message)
	}
}

func TestKeyFilters(t *testing.T) {
	assert.True(t, Letters()("", 'a'))
	assert.False(t, Letters()("", '1'))
	assert.True(t, Alphanumeric('-')("", '-'))
	assert.False(t, Alphanumeric()("", '-'))
	assert.False(t, LowerAlphanumeric()("", 'A'))
	assert.False(t, NoUpper()("", 'Q'))
	assert.False(t, MaxRunes(2)("ab", 'c'))
	assert.True(t, All(Digits(), MaxRunes(3))("12", '3'))
	assert.False(t, All(Digits(), MaxRunes(3))("123", '4'))

	assert.True(t, DateKeys()("202", '5'))
	assert.False(t, DateKeys()("2025", '1'))
	assert.True(t, DateKeys()("2025-0", '1'))
	assert.False(t, DateKeys()("", 'x'))
}
