package form

// Derivation computes a target field from the value of its source field.
type Derivation func(source string) string

// AddMonths derives a date n months after the source date. An empty or
// unparseable source clears the target. Day overflow normalizes the same way
// time.AddDate does (Nov 30 + 3 months = Mar 2).
func AddMonths(n int) Derivation {
	return func(source string) string {
		d, ok := parseDate(source)
		if !ok {
			return ""
		}
		return d.AddDate(0, n, 0).Format(DateLayout)
	}
}
