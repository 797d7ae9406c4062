// Package project holds the wizard's project configuration: the validated,
// immutable Config consumed by generation and the Builder that assembles it
// one answer at a time.
package project

import (
	"errors"
	"fmt"
)

// Sentinel errors for the project package.
var (
	// ErrInvalidInput indicates a wizard answer that must be asked again.
	ErrInvalidInput = errors.New("invalid input")

	// ErrFieldLocked indicates an attempt to change an already accepted answer.
	ErrFieldLocked = errors.New("field already set")

	// ErrIncomplete indicates Build was called before every required answer was given.
	ErrIncomplete = errors.New("project configuration incomplete")

	// ErrTargetNotEmpty indicates the project root exists and holds files.
	ErrTargetNotEmpty = errors.New("target directory is not empty")

	// ErrTargetNotDir indicates the project root exists but is not a directory.
	ErrTargetNotDir = errors.New("target path is not a directory")
)

// InputError describes a rejected answer. It wraps ErrInvalidInput.
type InputError struct {
	Field  string
	Value  string
	Reason string
}

// Error implements the error interface.
func (e *InputError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Unwrap returns ErrInvalidInput so callers can test with errors.Is.
func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

func inputErr(field, value, reason string) error {
	return &InputError{Field: field, Value: value, Reason: reason}
}
