package records

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError indicates a staged record is missing required fields.
// The staging slot is left as it was so the caller can correct it.
type ValidationError struct {
	Fields []string // JSON names of the missing fields
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("record is incomplete: missing %s", strings.Join(e.Fields, ", "))
}

// NotFoundError indicates an operation referenced a table or record that is
// not present. It is a no-op outcome, never a failure of the store.
type NotFoundError struct {
	Kind string // "table" or "record"
	Name string // table name or record ID
}

func (e *NotFoundError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s not found", e.Kind)
	}
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Name)
}

// StaleCursorError indicates the edit cursor no longer points at the record
// it was created for. The cursor is cleared; the caller must begin the edit again.
type StaleCursorError struct {
	Reason string
}

func (e *StaleCursorError) Error() string {
	return fmt.Sprintf("edit is no longer valid: %s", e.Reason)
}

// InvalidNameError indicates a blank, duplicate or otherwise unusable table name.
type InvalidNameError struct {
	Name   string
	Reason string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid table name %q: %s", e.Name, e.Reason)
}

// IsValidationError checks if an error is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsNotFound checks if an error is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsStaleCursor checks if an error is (or wraps) a StaleCursorError.
func IsStaleCursor(err error) bool {
	var target *StaleCursorError
	return errors.As(err, &target)
}

// IsInvalidName checks if an error is (or wraps) an InvalidNameError.
func IsInvalidName(err error) bool {
	var target *InvalidNameError
	return errors.As(err, &target)
}
