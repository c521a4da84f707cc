package store

import (
	"errors"
	"fmt"
)

// Sentinel errors reported by the store. Handlers translate these into
// HTTP status codes.
var (
	// ErrNotFound means no document matched the id or filter.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate means a unique index rejected the write.
	ErrDuplicate = errors.New("duplicate unique key")
)

// ValidationError reports a property outside the entity's allowed-field
// set, or a missing required property.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Msg)
	}
	return "validation failed: " + e.Msg
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
