// Package service applies validation and ownership rules on top of storage.
// Every transaction and budget operation is scoped to the calling identity.
package service

import (
	"errors"
	"strings"

	"github.com/nemopss/spendwise/validate"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrNotFoundOrForbidden = errors.New("not found")
	ErrDuplicateCategory   = errors.New("category already exists")
)

// ValidationError lists the payload fields that failed. It matches
// ErrValidation under errors.Is.
type ValidationError struct {
	Fields []string
	Err    error
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	return ErrValidation.Error() + ": " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(err error) error {
	ve := &ValidationError{Err: err}
	var fields validate.Errors
	if errors.As(err, &fields) {
		ve.Fields = fields.Fields()
	}
	return ve
}
