package units

import (
	"fmt"
	"strconv"
)

// Quantity is a magnitude paired with a unit of length. Quantities are
// values: every operation returns a new Quantity except ConvertInPlace,
// which replaces the receiver wholesale.
type Quantity struct {
	magnitude float64
	unit      Unit
}

// New returns the quantity magnitude expressed in unit.
func New(unit Unit, magnitude float64) Quantity {
	return Quantity{magnitude: magnitude, unit: unit}
}

// Magnitude returns the numeric part of q.
func (q Quantity) Magnitude() float64 { return q.magnitude }

// Unit returns the unit q is expressed in.
func (q Quantity) Unit() Unit { return q.unit }

// Convert returns q expressed in target. Converting to q's own unit
// returns q untouched so that no rounding is introduced.
func (q Quantity) Convert(target Unit) Quantity {
	if q.unit == target {
		return q
	}
	mm := q.magnitude * q.unit.Millimeters()
	return Quantity{magnitude: mm / target.Millimeters(), unit: target}
}

// ConvertInPlace replaces q with q.Convert(target).
func (q *Quantity) ConvertInPlace(target Unit) {
	*q = q.Convert(target)
}

// Equal reports whether q and other have the same unit and exactly the
// same magnitude. No tolerance is applied.
func (q Quantity) Equal(other Quantity) bool {
	return q.unit == other.unit && q.magnitude == other.magnitude
}

// String formats q with the shortest decimal that reproduces the
// magnitude, followed by the unit suffix: "42in", "0.381mm". The result
// is accepted by Parse for non-negative finite magnitudes.
func (q Quantity) String() string {
	return strconv.FormatFloat(q.magnitude, 'f', -1, 64) + q.unit.String()
}

// Fixed renders q with a fixed number of decimal places: "4703.75in".
func (q Quantity) Fixed(precision int) string {
	return fmt.Sprintf("%.*f%s", precision, q.magnitude, q.unit)
}
