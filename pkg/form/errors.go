package form

import (
	"errors"
	"fmt"
)

var (
	ErrMisaligned      = errors.New("section columns have different lengths")
	ErrLastRow         = errors.New("section must keep at least one row")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrUnknownSection  = errors.New("unknown section")
	ErrUnknownColumn   = errors.New("unknown column")
	ErrUnknownList     = errors.New("unknown list")
	ErrUnknownField    = errors.New("unknown field")
	ErrInvalidDate     = errors.New("invalid date")
	ErrDraftNotFound   = errors.New("draft not found")
)

// ValidationError points at the offending form field. Field is a column or
// section name, optionally indexed ("educationFrom[1]").
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(field string, err error, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...), Err: err}
}
