package prediction

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Detail messages returned to clients for missing input.
const (
	MissingFieldDetail   = "Missing student field"
	MissingStudentDetail = "Missing student information"
)

// MissingFieldError means a required attribute, or the whole student, was
// not sent. It is a client error and no inference is attempted.
type MissingFieldError struct {
	Detail string
	Field  string // canonical name of the first missing field, if known
}

func (e *MissingFieldError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Detail, e.Field)
	}
	return e.Detail
}

// SchemaValidationError means the attributes could not be mapped onto the
// student schema: an unknown or duplicated key, a malformed body, or a
// field that failed its validate tag.
type SchemaValidationError struct {
	// Fields is set when the failure came from go-playground/validator.
	Fields validator.ValidationErrors
	Err    error
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("invalid student: %v", e.Err)
}

func (e *SchemaValidationError) Unwrap() error { return e.Err }
