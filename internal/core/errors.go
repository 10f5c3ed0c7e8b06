package core

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a lookup by ID or reference matches no row.
// Services wrap it with context; callers test with errors.Is.
var ErrNotFound = errors.New("not found")

// ValidationError reports a rejected input field. The old UI silently
// coerced or dropped bad input; here every rejection names its field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// AsValidation returns the wrapped *ValidationError, if any.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// ConflictError reports an operation refused because of referential state,
// e.g. deleting a menu item that historical quote lines still point at.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }
