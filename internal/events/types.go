// Package events publishes session change events over Redis Pub/Sub.
//
// Events are notifications only: nothing is read back from Redis as state,
// so a server without Redis behaves the same apart from not publishing.
//
// Channel pattern: tableview:{instance_name}:session:{session_key}:events
// Instance-wide channel: tableview:{instance_name}:events
package events

import (
	"fmt"
	"time"

	"github.com/SEA6153/tableview/pkg/records"
)

// Kind identifies what happened in a session.
type Kind string

const (
	KindSessionStarted Kind = "session_started"
	KindSessionEnded   Kind = "session_ended"
	KindDefaultsLoaded Kind = Kind(records.ChangeDefaultsLoaded)
	KindTableCreated   Kind = Kind(records.ChangeTableCreated)
	KindTableRenamed   Kind = Kind(records.ChangeTableRenamed)
	KindTableDropped   Kind = Kind(records.ChangeTableDropped)
	KindRecordAdded    Kind = Kind(records.ChangeRecordAdded)
	KindRecordUpdated  Kind = Kind(records.ChangeRecordUpdated)
	KindRecordDeleted  Kind = Kind(records.ChangeRecordDeleted)
)

// Validate checks if the Kind is a valid enum value.
func (k Kind) Validate() error {
	switch k {
	case KindSessionStarted, KindSessionEnded, KindDefaultsLoaded,
		KindTableCreated, KindTableRenamed, KindTableDropped,
		KindRecordAdded, KindRecordUpdated, KindRecordDeleted:
		return nil
	default:
		return fmt.Errorf("unknown event kind: %q", k)
	}
}

// Event is one committed change in a session.
type Event struct {
	Session  string          `json:"session"`             // Session key the change happened in
	Kind     Kind            `json:"kind"`                // What happened
	Table    string          `json:"table,omitempty"`     // Affected table (new name for renames)
	OldTable string          `json:"old_table,omitempty"` // Previous table name, renames only
	RecordID string          `json:"record_id,omitempty"` // Affected record, record events only
	Record   *records.Record `json:"record,omitempty"`    // Record after the change (before, for deletes)
	AtMs     int64           `json:"at_ms"`               // Unix timestamp in milliseconds
}

// Validate checks if the Event has valid field values.
func (e *Event) Validate() error {
	if e.Session == "" {
		return fmt.Errorf("event session cannot be empty")
	}
	if err := e.Kind.Validate(); err != nil {
		return fmt.Errorf("invalid kind: %w", err)
	}
	if e.Record != nil && e.RecordID != e.Record.ID {
		return fmt.Errorf("record_id %q does not match record %q", e.RecordID, e.Record.ID)
	}
	return nil
}

// FromChange converts a store change into an event for the given session.
func FromChange(session string, c records.Change) *Event {
	e := &Event{
		Session:  session,
		Kind:     Kind(c.Kind),
		Table:    c.Table,
		OldTable: c.OldTable,
		AtMs:     time.Now().UnixMilli(),
	}
	if c.Record != nil {
		e.Record = c.Record.Clone()
		e.RecordID = c.Record.ID
	}
	return e
}

// Lifecycle creates a session_started or session_ended event.
func Lifecycle(session string, kind Kind) *Event {
	return &Event{
		Session: session,
		Kind:    kind,
		AtMs:    time.Now().UnixMilli(),
	}
}
