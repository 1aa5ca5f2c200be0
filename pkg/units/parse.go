package units

import (
	"strconv"
	"strings"
	"unicode"
)

// Parse reads a quantity such as "42in", "69.0'" or "666.666 mm".
//
// The input is an optional run of leading whitespace, an unsigned decimal
// literal (digits with at most one '.', no exponent), optional whitespace,
// and a unit token that must match one of the unit synonyms exactly,
// ignoring case. A missing or malformed literal yields a *NumberError; an
// unrecognised or missing unit token yields a *UnitError.
//
// Parse does not fall back to a default unit for bare numbers. Callers
// that want that behaviour try Parse first and handle the plain number
// themselves.
func Parse(s string) (Quantity, error) {
	rest := strings.TrimLeftFunc(s, unicode.IsSpace)

	end := strings.IndexFunc(rest, func(r rune) bool {
		return r != '.' && (r < '0' || r > '9')
	})
	if end < 0 {
		end = len(rest)
	}

	magnitude, ok := parseLiteral(rest[:end])
	if !ok {
		return Quantity{}, &NumberError{Input: s}
	}

	unit, err := ParseUnit(rest[end:])
	if err != nil {
		return Quantity{}, err
	}
	return New(unit, magnitude), nil
}

// parseLiteral accepts digits with at most one decimal point and at least
// one digit: "42", "42.0", ".5", "5.".
func parseLiteral(lit string) (float64, bool) {
	if strings.Count(lit, ".") > 1 || strings.Trim(lit, ".") == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
