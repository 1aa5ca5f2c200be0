package units

import (
	"fmt"
	"strconv"
	"strings"
)

// Unit is a unit of length.
type Unit int

// Supported units, in display order.
const (
	Mil Unit = iota
	Inch
	Foot
	Yard
	Milimeter
	Centimeter
	Meter

	numUnits = iota
)

// DefaultUnit is the working unit when none is configured.
const DefaultUnit = Inch

// unitInfo holds the per-unit behaviour: display suffix, human name,
// accepted spellings and the exact factor to millimeters.
type unitInfo struct {
	suffix   string
	name     string
	synonyms []string
	toMM     float64
}

var unitTable = [...]unitInfo{
	Mil: {
		suffix:   "mil",
		name:     "Mils",
		synonyms: []string{"mil", "mils", "thou"},
		toMM:     0.0254,
	},
	Inch: {
		suffix:   "in",
		name:     "Inches",
		synonyms: []string{"in", "inch", "inches", `"`},
		toMM:     25.4,
	},
	Foot: {
		suffix:   "ft",
		name:     "Feet",
		synonyms: []string{"ft", "foot", "feet", "'"},
		toMM:     304.8,
	},
	Yard: {
		suffix:   "yd",
		name:     "Yards",
		synonyms: []string{"yd", "yard", "yards"},
		toMM:     914.4,
	},
	Milimeter: {
		suffix:   "mm",
		name:     "Milimeters",
		synonyms: []string{"mm", "milimeter", "milimeters", "millimeter", "millimeters"},
		toMM:     1,
	},
	Centimeter: {
		suffix:   "cm",
		name:     "Centimeters",
		synonyms: []string{"cm", "centimeter", "centimeters"},
		toMM:     10,
	},
	Meter: {
		suffix:   "m",
		name:     "Meters",
		synonyms: []string{"m", "meter", "meters", "metre", "metres"},
		toMM:     1000,
	},
}

// Fails to compile unless unitTable has exactly one entry per unit.
var _ = [1]struct{}{}[len(unitTable)-numUnits]

// All returns every unit in display order.
func All() []Unit {
	all := make([]Unit, 0, numUnits)
	for u := Unit(0); u < numUnits; u++ {
		all = append(all, u)
	}
	return all
}

// Valid reports whether u is one of the supported units.
func (u Unit) Valid() bool {
	return u >= 0 && u < numUnits
}

// Suffix returns the canonical short suffix, e.g. "in" or "mm".
func (u Unit) Suffix() string {
	return unitTable[u].suffix
}

// Name returns the plural display name, e.g. "Inches".
func (u Unit) Name() string {
	return unitTable[u].name
}

// Synonyms returns a copy of the spellings accepted for u by ParseUnit.
func (u Unit) Synonyms() []string {
	return append([]string(nil), unitTable[u].synonyms...)
}

// Millimeters returns the number of millimeters in one u.
func (u Unit) Millimeters() float64 {
	return unitTable[u].toMM
}

// Of returns a Quantity of magnitude v in unit u.
func (u Unit) Of(v float64) Quantity {
	return New(u, v)
}

// String returns the canonical suffix. Out-of-range values render as
// Unit(n) rather than panicking.
func (u Unit) String() string {
	if !u.Valid() {
		return "Unit(" + strconv.Itoa(int(u)) + ")"
	}
	return u.Suffix()
}

// ParseUnit resolves a unit token against every unit's synonyms. Matching
// is case-insensitive and exact; surrounding whitespace is ignored.
// Returns a *UnitError when the token matches nothing.
func ParseUnit(token string) (Unit, error) {
	token = strings.TrimSpace(token)
	if token != "" {
		for u := Unit(0); u < numUnits; u++ {
			for _, syn := range unitTable[u].synonyms {
				if strings.EqualFold(token, syn) {
					return u, nil
				}
			}
		}
	}
	return 0, &UnitError{Token: token}
}

// Set implements pflag.Value.
func (u *Unit) Set(s string) error {
	parsed, err := ParseUnit(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// Type implements pflag.Value.
func (u *Unit) Type() string {
	return "unit"
}

// MarshalText implements encoding.TextMarshaler.
func (u Unit) MarshalText() ([]byte, error) {
	if !u.Valid() {
		return nil, fmt.Errorf("marshal %s: %w", u, ErrInvalidUnits)
	}
	return []byte(u.Suffix()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *Unit) UnmarshalText(text []byte) error {
	return u.Set(string(text))
}
