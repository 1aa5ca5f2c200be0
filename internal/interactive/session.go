// Package interactive implements the rlcalc interactive front-end: three
// editable roll dimensions, a unit selector and a length display that is
// recomputed from the roll after every change.
//
// Session owns no numeric logic. It only calls the roll setters, roll
// unit conversion and roll length computation.
package interactive

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/rlcalc/pkg/roll"
	"github.com/mesh-intelligence/rlcalc/pkg/units"
)

// ErrNotPositive is returned by Edit for values that parse but are not
// positive.
var ErrNotPositive = errors.New("value must be positive")

var fieldLabels = map[roll.Field]string{
	roll.CoreOD:    "Core OD",
	roll.RollOD:    "Roll OD",
	roll.Thickness: "Thickness",
}

// Session is the state of one interactive calculation.
type Session struct {
	roll      roll.Roll
	precision int
	text      map[roll.Field]string
	pending   map[roll.Field]error
}

// New starts a session on r. Lengths are shown with the given number of
// decimal places.
func New(r roll.Roll, precision int) *Session {
	s := &Session{
		roll:      r,
		precision: precision,
		text:      make(map[roll.Field]string),
		pending:   make(map[roll.Field]error),
	}
	s.refreshText()
	return s
}

// Roll returns the committed roll.
func (s *Session) Roll() roll.Roll { return s.roll }

// Text returns the raw text of a field as last typed or formatted.
func (s *Session) Text(f roll.Field) string { return s.text[f] }

// Pending returns the reason the field's text was not applied, or nil if
// the text matches the roll.
func (s *Session) Pending(f roll.Field) error { return s.pending[f] }

// Edit records text for a field. Text that resolves to a positive value,
// either a bare number in the current unit or a quantity such as "76mm",
// is applied to the roll. Anything else is kept as uncommitted text and
// the roll is left unchanged; the returned error says why.
func (s *Session) Edit(f roll.Field, text string) error {
	s.text[f] = text

	q, err := roll.ResolveText(text, s.roll.Unit())
	if err == nil && !(q.Magnitude() > 0 && !math.IsInf(q.Magnitude(), 0)) {
		err = fmt.Errorf("%s: %w", strings.TrimSpace(text), ErrNotPositive)
	}
	if err != nil {
		s.pending[f] = err
		return err
	}

	s.roll.Set(f, q.Magnitude())
	delete(s.pending, f)
	return nil
}

// ChangeUnits converts the whole roll to u and rewrites every field's
// text in the new unit. Uncommitted text is discarded.
func (s *Session) ChangeUnits(u units.Unit) {
	s.roll.ConvertInPlace(u)
	s.refreshText()
}

// Length returns the current roll length.
func (s *Session) Length() (units.Quantity, error) {
	return s.roll.Length()
}

func (s *Session) refreshText() {
	for _, f := range roll.Fields() {
		s.text[f] = formatMagnitude(s.roll.Get(f).Magnitude())
		delete(s.pending, f)
	}
}

// formatMagnitude trims conversion noise such as 3250.0000000000005.
func formatMagnitude(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e6)/1e6, 'f', -1, 64)
}

// View renders the session as text.
func (s *Session) View() string {
	var b strings.Builder

	b.WriteString("Roll Length Calculator\n\n")
	for _, f := range roll.Fields() {
		fmt.Fprintf(&b, "  %-10s [%s]  %s\n", fieldLabels[f], s.text[f], s.roll.Get(f))
		if err := s.pending[f]; err != nil {
			fmt.Fprintf(&b, "  %-10s  ! not applied: %v\n", "", err)
		}
	}

	b.WriteString("\n")
	if length, err := s.Length(); err != nil {
		fmt.Fprintf(&b, "Roll Length: invalid (%v)\n", err)
	} else {
		fmt.Fprintf(&b, "Roll Length: %s\n", length.Fixed(s.precision))
	}

	b.WriteString("\nUnits:")
	for _, u := range units.All() {
		mark := " "
		if u == s.roll.Unit() {
			mark = "x"
		}
		fmt.Fprintf(&b, " [%s] %s", mark, u.Name())
	}
	b.WriteString("\n")
	return b.String()
}
