// Package errs defines the error taxonomy shared by the engine components.
// Every condition here is local and recoverable: a failed call leaves all
// collections unchanged.
package errs

import (
	"errors"
	"fmt"
)

// ErrEmptyCart is returned when checkout is attempted with no line items.
var ErrEmptyCart = errors.New("cart has no items")

// ValidationError reports malformed input: negative amounts, empty required
// text, or an out-of-range percentage.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validation builds a ValidationError for the given field.
func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError reports an id-based lookup miss.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// IndexError reports an out-of-range cart index.
type IndexError struct {
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range for %d items", e.Index, e.Size)
}
