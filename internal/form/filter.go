package form

import (
	"unicode"
	"unicode/utf8"
)

// KeyFilter decides whether rune r may be typed into a field currently
// holding current. Filters are an input affordance only; every constraint a
// filter enforces must also be expressed as a Validator, since paste and
// programmatic input bypass keystrokes.
type KeyFilter func(current string, r rune) bool

func Letters() KeyFilter {
	return func(_ string, r rune) bool {
		return isASCIILetter(r)
	}
}

func LettersAndSpaces() KeyFilter {
	return func(_ string, r rune) bool {
		return isASCIILetter(r) || r == ' '
	}
}

func Digits() KeyFilter {
	return func(_ string, r rune) bool {
		return r >= '0' && r <= '9'
	}
}

// Alphanumeric allows ASCII letters and digits, plus any extra runes given.
func Alphanumeric(extra ...rune) KeyFilter {
	return func(_ string, r rune) bool {
		if isASCIILetter(r) || (r >= '0' && r <= '9') {
			return true
		}
		for _, e := range extra {
			if r == e {
				return true
			}
		}
		return false
	}
}

func LowerAlphanumeric() KeyFilter {
	return func(_ string, r rune) bool {
		return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
	}
}

// NoUpper blocks uppercase letters.
func NoUpper() KeyFilter {
	return func(_ string, r rune) bool {
		return !unicode.IsUpper(r)
	}
}

// DateKeys allows digits and dashes and stops the year part at four digits.
func DateKeys() KeyFilter {
	return func(current string, r rune) bool {
		if r != '-' && (r < '0' || r > '9') {
			return false
		}
		if r == '-' {
			return true
		}
		year := 0
		for _, c := range current {
			if c == '-' {
				return true
			}
			year++
		}
		return year < 4
	}
}

// MaxRunes stops input once the field holds n runes.
func MaxRunes(n int) KeyFilter {
	return func(current string, _ rune) bool {
		return utf8.RuneCountInString(current) < n
	}
}

// All combines filters; every filter must accept the rune.
func All(filters ...KeyFilter) KeyFilter {
	return func(current string, r rune) bool {
		for _, f := range filters {
			if !f(current, r) {
				return false
			}
		}
		return true
	}
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
