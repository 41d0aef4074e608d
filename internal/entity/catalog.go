// Package entity declares the field tables, wire encoding and messages of
// each HR page, plus the review and payroll desks that do not follow the
// plain create/edit/delete flow.
package entity

import (
	"errors"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"hrms-portal/internal/form"
)

var ErrNotPermitted = errors.New("not permitted for this role")

// Catalog builds entity definitions. Now drives date predicates such as
// not-in-future; nil means time.Now.
type Catalog struct {
	Now func() time.Time
}

func (c Catalog) now() func() time.Time {
	if c.Now != nil {
		return c.Now
	}
	return time.Now
}

// Amount accepts a non-negative decimal with at most two fraction digits.
func Amount() form.Validator {
	return form.Check("amount", "Enter a non-negative amount with up to 2 decimals.", func(v string) bool {
		d, err := decimal.NewFromString(v)
		if err != nil || d.IsNegative() {
			return false
		}
		return d.Exponent() >= -2
	})
}

func parseAmount(v form.Values, name string) (decimal.Decimal, error) {
	raw := v.Trimmed(name)
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}

func formatInt(n int) string {
	return strconv.Itoa(n)
}
