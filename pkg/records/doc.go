// Package records provides the session-scoped table and record store behind
// the tableview web UI.
//
// # Overview
//
// A Store owns every table of a single user session: a mapping from table name
// to an ordered list of music Records, plus the cursors the UI drives (the
// selected table, the new-item staging slot and the in-progress edit). A
// Catalog is the separate, ordered list of table names shown in the table
// management screen. It holds an explicit reference to the Store it must stay
// consistent with when a table is renamed.
//
// Neither type is safe for concurrent use. Callers that share one session
// between goroutines (see internal/session) serialize access themselves.
//
// # Records
//
// Records are identified by a UUID assigned at construction. A Record is valid
// when first name, last name, song and artist are non-blank and the release
// year is present:
//
//	rec := records.NewRecord(records.Fields{
//		FirstName: "Ahmet",
//		LastName:  "YILMAZ",
//		Song:      "Soldier of Fortune",
//		Artist:    "Deep Purple",
//		Released:  records.Year(1974),
//	})
//	if err := rec.Validate(); err != nil {
//		log.Fatal(err)
//	}
//
// # Outcomes
//
// Every rejected operation returns one of the typed errors in errors.go
// (ValidationError, NotFoundError, StaleCursorError, InvalidNameError) and
// leaves committed data untouched, so the caller can correct the input and
// retry. User-visible messages are queued as Notices and drained by the
// presentation layer.
//
// # Table lookup
//
// Table keys are case-sensitive, but selecting a table is case-insensitive.
// When two keys fold to the same value, an exact match wins, then the first
// key in insertion order.
package records
