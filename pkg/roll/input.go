package roll

import (
	"strconv"
	"strings"

	"github.com/mesh-intelligence/rlcalc/pkg/units"
)

// Field identifies one of the three roll dimensions.
type Field int

// Roll fields.
const (
	CoreOD Field = iota
	RollOD
	Thickness

	numFields = iota
)

var fieldNames = [...]string{
	CoreOD:    "coreod",
	RollOD:    "rollod",
	Thickness: "thickness",
}

// Fields returns the roll fields in construction order.
func Fields() []Field {
	return []Field{CoreOD, RollOD, Thickness}
}

func (f Field) String() string {
	if f < 0 || f >= numFields {
		return "Field(" + strconv.Itoa(int(f)) + ")"
	}
	return fieldNames[f]
}

type inputKind int

const (
	inputMissing inputKind = iota
	inputBare
	inputText
)

// Input is a single caller-supplied roll dimension: either a bare
// magnitude in the roll's unit or text to be resolved with ResolveText.
// The zero Input is missing.
type Input struct {
	kind  inputKind
	value float64
	text  string
}

// Bare returns an Input holding a magnitude in the roll's unit.
func Bare(v float64) Input {
	return Input{kind: inputBare, value: v}
}

// Text returns an Input holding a quantity string ("3.25in") or a plain
// number ("3.25"). Blank text is treated as missing.
func Text(s string) Input {
	if strings.TrimSpace(s) == "" {
		return Input{}
	}
	return Input{kind: inputText, text: s}
}

// IsSet reports whether the input carries a value.
func (in Input) IsSet() bool {
	return in.kind != inputMissing
}

func (in Input) resolve(unit units.Unit) (float64, error) {
	switch in.kind {
	case inputBare:
		return in.value, nil
	case inputText:
		q, err := ResolveText(in.text, unit)
		if err != nil {
			return 0, err
		}
		return q.Magnitude(), nil
	default:
		return 0, ErrMissingField
	}
}

// ResolveText turns text into a quantity expressed in unit.
//
// Self-describing quantities ("10in", "254 mm") are parsed with
// units.Parse and converted into unit. If that fails, the text is read as
// a plain number in unit. When both fail the units.Parse error is
// returned, so callers see why the text was not a quantity.
func ResolveText(s string, unit units.Unit) (units.Quantity, error) {
	if strings.TrimSpace(s) == "" {
		return units.Quantity{}, ErrMissingField
	}

	q, parseErr := units.Parse(s)
	if parseErr == nil {
		return q.Convert(unit), nil
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return units.Quantity{}, parseErr
	}
	return units.New(unit, v), nil
}
