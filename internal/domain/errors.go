package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a referenced entity that vanished between load and
// action. Repositories translate sql.ErrNoRows into this.
var ErrNotFound = errors.New("not found")

// FetchError wraps any read failure: network, permission, malformed filter.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string { return fmt.Sprintf("fetch %s: %v", e.Op, e.Err) }
func (e *FetchError) Unwrap() error { return e.Err }

func NewFetchError(op string, err error) error {
	return &FetchError{Op: op, Err: err}
}

// WriteError wraps any mutation failure reported by the backend.
type WriteError struct {
	Op  string
	Err error
}

func (e *WriteError) Error() string { return fmt.Sprintf("write %s: %v", e.Op, e.Err) }
func (e *WriteError) Unwrap() error { return e.Err }

func NewWriteError(op string, err error) error {
	return &WriteError{Op: op, Err: err}
}

// ValidationError is a client-side failure raised before any backend call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsWrite(err error) bool {
	var we *WriteError
	return errors.As(err, &we)
}

func IsFetch(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}
