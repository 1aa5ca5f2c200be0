// Package roll models a wound roll of material and estimates its length
// from the core diameter, the roll diameter and the material thickness.
package roll

import (
	"fmt"
	"math"

	"github.com/mesh-intelligence/rlcalc/pkg/units"
)

// MaxWraps bounds the winding loop. Dimensions that would need more wraps
// are rejected as invalid geometry.
const MaxWraps = 10_000_000

// Roll holds the three roll dimensions. All of them are expressed in the
// roll's single unit; Convert replaces all three together.
type Roll struct {
	coreOD    float64
	rollOD    float64
	thickness float64
	unit      units.Unit
}

// Default returns a 3.25in core wound to 10in with 0.015in material.
func Default() Roll {
	return Roll{
		coreOD:    3.25,
		rollOD:    10,
		thickness: 0.015,
		unit:      units.Inch,
	}
}

// New returns a roll with the given dimensions in unit. It returns a
// *GeometryError if the dimensions cannot be wound.
func New(coreOD, rollOD, thickness float64, unit units.Unit) (Roll, error) {
	if !unit.Valid() {
		return Roll{}, fmt.Errorf("roll unit %s: %w", unit, units.ErrInvalidUnits)
	}
	r := Roll{
		coreOD:    coreOD,
		rollOD:    rollOD,
		thickness: thickness,
		unit:      unit,
	}
	if err := r.Validate(); err != nil {
		return Roll{}, err
	}
	return r, nil
}

// Build resolves the three inputs into unit and returns the resulting
// roll. Every input is resolved before the roll exists, so a failure on
// any field leaves nothing half-built. Resolution failures are returned
// as *FieldError.
func Build(unit units.Unit, coreOD, rollOD, thickness Input) (Roll, error) {
	var dims [numFields]float64
	for i, in := range [numFields]Input{coreOD, rollOD, thickness} {
		v, err := in.resolve(unit)
		if err != nil {
			return Roll{}, &FieldError{Field: Field(i), Err: err}
		}
		dims[i] = v
	}
	return New(dims[CoreOD], dims[RollOD], dims[Thickness], unit)
}

// Unit returns the unit all three dimensions are expressed in.
func (r Roll) Unit() units.Unit { return r.unit }

// CoreOD returns the outer diameter of the empty core.
func (r Roll) CoreOD() units.Quantity { return units.New(r.unit, r.coreOD) }

// RollOD returns the outer diameter of the wound roll.
func (r Roll) RollOD() units.Quantity { return units.New(r.unit, r.rollOD) }

// Thickness returns the thickness of the material.
func (r Roll) Thickness() units.Quantity { return units.New(r.unit, r.thickness) }

// Get returns the named dimension.
func (r Roll) Get(f Field) units.Quantity {
	return units.New(r.unit, *r.field(f))
}

// SetCoreOD sets the core diameter, in the roll's unit.
func (r *Roll) SetCoreOD(v float64) { r.coreOD = v }

// SetRollOD sets the roll diameter, in the roll's unit.
func (r *Roll) SetRollOD(v float64) { r.rollOD = v }

// SetThickness sets the material thickness, in the roll's unit.
func (r *Roll) SetThickness(v float64) { r.thickness = v }

// Set sets the named dimension to v in the roll's unit.
func (r *Roll) Set(f Field, v float64) {
	*r.field(f) = v
}

// SetQuantity sets the named dimension from q, converted into the roll's
// unit.
func (r *Roll) SetQuantity(f Field, q units.Quantity) {
	r.Set(f, q.Convert(r.unit).Magnitude())
}

func (r *Roll) field(f Field) *float64 {
	switch f {
	case CoreOD:
		return &r.coreOD
	case RollOD:
		return &r.rollOD
	case Thickness:
		return &r.thickness
	}
	panic(fmt.Sprintf("roll: unknown field %d", int(f)))
}

// Convert returns the roll with every dimension expressed in unit.
func (r Roll) Convert(unit units.Unit) Roll {
	return Roll{
		coreOD:    r.CoreOD().Convert(unit).Magnitude(),
		rollOD:    r.RollOD().Convert(unit).Magnitude(),
		thickness: r.Thickness().Convert(unit).Magnitude(),
		unit:      unit,
	}
}

// ConvertInPlace replaces r with r.Convert(unit).
func (r *Roll) ConvertInPlace(unit units.Unit) {
	*r = r.Convert(unit)
}

// Validate checks that the dimensions describe a roll that can be wound:
// finite values, a non-negative core, a positive thickness and a roll at
// least as large as its core.
func (r Roll) Validate() error {
	for _, f := range Fields() {
		v := *r.field(f)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &GeometryError{Reason: fmt.Sprintf("%s is not a finite number", f)}
		}
	}
	if r.coreOD < 0 {
		return &GeometryError{Reason: fmt.Sprintf("coreod %s is negative", r.CoreOD())}
	}
	if r.thickness <= 0 {
		return &GeometryError{Reason: fmt.Sprintf("thickness %s must be positive", r.Thickness())}
	}
	if r.rollOD < r.coreOD {
		return &GeometryError{Reason: fmt.Sprintf("rollod %s is smaller than coreod %s", r.RollOD(), r.CoreOD())}
	}
	if wraps := math.Ceil((r.rollOD - r.coreOD) / (2 * r.thickness)); wraps > MaxWraps {
		return &GeometryError{Reason: fmt.Sprintf("thickness %s needs more than %d wraps", r.Thickness(), MaxWraps)}
	}
	return nil
}

// Length estimates the length of material on the roll, in the roll's
// unit. Each wrap contributes the circumference at its diameter, and each
// wrap grows the diameter by twice the thickness. A roll no larger than
// its core has length zero.
func (r Roll) Length() (units.Quantity, error) {
	length, _, err := r.wind()
	if err != nil {
		return units.Quantity{}, err
	}
	return units.New(r.unit, length), nil
}

// Wraps returns the number of wraps Length sums over.
func (r Roll) Wraps() (int, error) {
	_, wraps, err := r.wind()
	return wraps, err
}

func (r Roll) wind() (length float64, wraps int, err error) {
	if err := r.Validate(); err != nil {
		return 0, 0, err
	}
	step := 2 * r.thickness
	for diameter := r.coreOD; diameter < r.rollOD; {
		// The conversion keeps the multiply from fusing with the add, so
		// every platform sums the same values.
		length += float64(diameter * math.Pi)
		wraps++
		next := diameter + step
		if next == diameter {
			return 0, 0, &GeometryError{Reason: fmt.Sprintf("thickness %s is too small to grow diameter %s", r.Thickness(), units.New(r.unit, diameter))}
		}
		diameter = next
	}
	return length, wraps, nil
}

// String summarises the roll, e.g. "core 3.25in, roll 10in, thickness 0.015in".
func (r Roll) String() string {
	return fmt.Sprintf("core %s, roll %s, thickness %s", r.CoreOD(), r.RollOD(), r.Thickness())
}
