package records

// Severity grades a Notice for display.
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// Notice is a user-visible outcome message produced by a store operation.
// Formatting and display are left to the presentation layer.
type Notice struct {
	Severity Severity `json:"severity"`
	Summary  string   `json:"summary"`
	Detail   string   `json:"detail,omitempty"`
}

// ChangeKind names a committed mutation of a Store.
type ChangeKind string

const (
	ChangeDefaultsLoaded ChangeKind = "defaults_loaded"
	ChangeTableCreated   ChangeKind = "table_created"
	ChangeTableRenamed   ChangeKind = "table_renamed"
	ChangeTableDropped   ChangeKind = "table_dropped"
	ChangeRecordAdded    ChangeKind = "record_added"
	ChangeRecordUpdated  ChangeKind = "record_updated"
	ChangeRecordDeleted  ChangeKind = "record_deleted"
)

// Change describes a committed mutation. Rejected operations produce no Change.
type Change struct {
	Kind     ChangeKind
	Table    string  // table the change applies to (the new name for renames)
	OldTable string  // previous name, renames only
	Record   *Record // copy of the affected record, record changes only
}
