package service

import (
	"errors"
	"fmt"
)

// Errors returned by Store implementations. Callers classify them with errors.Is.
var (
	ErrInvalidDateFormat  = errors.New("invalid date format")
	ErrPastDueDate        = errors.New("due date must be in the future")
	ErrInvalidDescription = errors.New("invalid description")
	ErrNotFound           = errors.New("not found")
	ErrIO                 = errors.New("i/o error")
	ErrParse              = errors.New("parse error")
)

// ParseError describes a save file line whose fields could not be decoded.
// It matches ErrParse.
type ParseError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: invalid %s %q: %v", e.Line, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("line %d: invalid %s %q", e.Line, e.Field, e.Value)
}

func (e *ParseError) Is(target error) bool { return target == ErrParse }

func (e *ParseError) Unwrap() error { return e.Err }

// IsUserError reports whether err stems from bad input rather than a failing store.
func IsUserError(err error) bool {
	return errors.Is(err, ErrInvalidDateFormat) ||
		errors.Is(err, ErrPastDueDate) ||
		errors.Is(err, ErrInvalidDescription) ||
		errors.Is(err, ErrNotFound)
}
