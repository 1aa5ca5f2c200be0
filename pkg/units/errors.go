package units

import (
	"errors"
	"fmt"
)

// Parse errors. Callers match them with errors.Is; the concrete *UnitError
// and *NumberError types carry the offending text.
var (
	ErrInvalidUnits    = errors.New("invalid units")
	ErrMalformedNumber = errors.New("malformed number")
)

// UnitError reports a unit token that matched no known synonym. Token is
// empty when the input had no unit at all.
type UnitError struct {
	Token string
}

func (e *UnitError) Error() string {
	if e.Token == "" {
		return "invalid units: missing unit"
	}
	return fmt.Sprintf("invalid units: %q", e.Token)
}

func (e *UnitError) Unwrap() error { return ErrInvalidUnits }

// NumberError reports input whose leading numeric literal is absent or
// cannot be read as a float.
type NumberError struct {
	Input string
}

func (e *NumberError) Error() string {
	return fmt.Sprintf("malformed number: %q", e.Input)
}

func (e *NumberError) Unwrap() error { return ErrMalformedNumber }
