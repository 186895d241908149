package resolver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SEA6153/tableview/pkg/records"
)

// MinShortIDLength is the minimum required length for short ID prefixes.
// Set to 6 characters to balance usability with collision avoidance.
const MinShortIDLength = 6

// ResolveRecord finds the record in list whose ID is id or starts with it.
//
// The function handles three cases:
// 1. Input is already a full UUID - must match a record exactly
// 2. Input is too short (< 6 chars) - returns validation error
// 3. Input is a short prefix - scans the list and returns the unique match
func ResolveRecord(list []*records.Record, id string) (*records.Record, error) {
	if records.IsValidUUID(id) && len(id) == 36 {
		for _, rec := range list {
			if rec.ID == id {
				return rec, nil
			}
		}
		return nil, &NotFoundError{ShortID: id}
	}

	if len(id) < MinShortIDLength {
		return nil, fmt.Errorf("short ID must be at least %d characters (got %d)", MinShortIDLength, len(id))
	}

	var matches []*records.Record
	for _, rec := range list {
		if strings.HasPrefix(rec.ID, id) {
			matches = append(matches, rec)
		}
	}

	switch len(matches) {
	case 0:
		return nil, &NotFoundError{ShortID: id}
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i, rec := range matches {
			ids[i] = rec.ID
		}
		return nil, &AmbiguousError{ShortID: id, Matches: ids}
	}
}

// NotFoundError indicates no records matched the short ID.
type NotFoundError struct {
	ShortID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no records found matching '%s'", e.ShortID)
}

// AmbiguousError indicates multiple records matched the short ID.
type AmbiguousError struct {
	ShortID string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous short ID '%s' matches %d records", e.ShortID, len(e.Matches))
}

// FormatAmbiguousError creates a user-friendly error message for ambiguous short IDs.
// Lists all matching UUIDs (up to 10, then "...and N more").
func FormatAmbiguousError(err *AmbiguousError) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Error: ambiguous short ID '%s' matches %d records:\n", err.ShortID, len(err.Matches))

	displayCount := min(len(err.Matches), 10)
	for i := 0; i < displayCount; i++ {
		fmt.Fprintf(&b, "  %s\n", err.Matches[i])
	}

	if len(err.Matches) > 10 {
		fmt.Fprintf(&b, "  ...and %d more\n", len(err.Matches)-10)
	}

	b.WriteString("\nUse a longer prefix to uniquely identify the record.")
	return b.String()
}

// IsNotFoundError checks if an error is a NotFoundError.
func IsNotFoundError(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsAmbiguousError checks if an error is an AmbiguousError.
func IsAmbiguousError(err error) bool {
	var target *AmbiguousError
	return errors.As(err, &target)
}
