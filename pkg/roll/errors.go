package roll

import (
	"errors"
	"fmt"
)

// Roll errors.
var (
	ErrInvalidGeometry = errors.New("invalid geometry")
	ErrMissingField    = errors.New("missing field")
)

// GeometryError describes dimensions the winding-length loop cannot run
// on, such as a non-positive thickness.
type GeometryError struct {
	Reason string
}

func (e *GeometryError) Error() string {
	return "invalid geometry: " + e.Reason
}

func (e *GeometryError) Unwrap() error { return ErrInvalidGeometry }

// FieldError attributes a resolution failure to one roll field.
type FieldError struct {
	Field Field
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }
