package party

import (
	"errors"
	"fmt"
)

// ErrValidation is the sentinel all validation failures unwrap to.
var ErrValidation = errors.New("invalid party input")

// ValidationError reports a malformed or missing input field. The caller
// can re-prompt the user; nothing invalid ever reaches the model.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
