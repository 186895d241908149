package records

import (
	"fmt"
	"slices"
	"strings"
)

// Store holds every table of one session and the cursors the UI drives.
// A Store is not safe for concurrent use.
type Store struct {
	dataset Dataset

	tables map[string][]*Record
	order  []string // table keys in insertion order

	selected     string
	hasSelection bool

	staged *Record
	edit   *editCursor

	notices  []Notice
	onChange func(Change)
}

// editCursor is an in-progress edit of one record in the selected table.
type editCursor struct {
	table    string // table key the edit was started in
	index    int    // position of the target at BeginEdit, -1 if it was not found
	targetID string
	staged   *Record
}

// NewStore creates a store loaded with dataset (DefaultDataset when nil).
// If initialTable names an existing table (case-insensitively) it is selected;
// otherwise the store starts without a selection and an empty current list.
func NewStore(dataset Dataset, initialTable string) *Store {
	if dataset == nil {
		dataset = DefaultDataset()
	}

	s := &Store{
		dataset: dataset,
		tables:  make(map[string][]*Record),
		staged:  NewRecord(Fields{}),
	}
	s.LoadDefaults()

	if initialTable != "" {
		if _, ok := s.resolve(initialTable); ok {
			s.selected = initialTable
			s.hasSelection = true
		}
	}
	return s
}

// SetObserver registers fn to be called synchronously after every committed
// mutation. Passing nil removes the observer.
func (s *Store) SetObserver(fn func(Change)) {
	s.onChange = fn
}

// LoadDefaults (re)installs every dataset table with fresh records.
// Existing data under those names is overwritten; other tables are kept.
func (s *Store) LoadDefaults() {
	for _, t := range s.dataset {
		s.putTable(t.Name, t.instantiate())
		if s.edit != nil && s.edit.table == t.Name {
			s.edit = nil
		}
	}
	s.emit(Change{Kind: ChangeDefaultsLoaded})
}

// TableNames returns the table keys in insertion order.
func (s *Store) TableNames() []string {
	return slices.Clone(s.order)
}

// Selected returns the requested selection and whether one is set.
func (s *Store) Selected() (string, bool) {
	return s.selected, s.hasSelection
}

// SelectTable focuses the table matching name case-insensitively.
// The requested spelling is kept as the selection either way. When nothing
// matches, the visible list is empty and a NotFoundError is returned; the
// table is created lazily by the first write.
func (s *Store) SelectTable(name string) error {
	if isBlank(name) {
		s.selected, s.hasSelection = "", false
		s.notify(SeverityInfo, "No data for selected table.", "")
		return &NotFoundError{Kind: "table"}
	}

	s.selected, s.hasSelection = name, true
	if _, ok := s.resolve(name); !ok {
		s.notify(SeverityInfo, "No data for selected table.", name)
		return &NotFoundError{Kind: "table", Name: name}
	}
	return nil
}

// Records returns copies of the records in the selected table.
// It never creates a table; an unmatched selection yields an empty list.
func (s *Store) Records() []*Record {
	key, ok := s.currentKey()
	if !ok {
		return []*Record{}
	}
	return cloneList(s.tables[key])
}

// CurrentList returns copies of the selected table's records, creating an
// empty table under the selected name if none matches yet.
// It returns nil when no table is selected.
func (s *Store) CurrentList() []*Record {
	key, ok := s.currentList()
	if !ok {
		return nil
	}
	return cloneList(s.tables[key])
}

// StageNewItem replaces the staging slot's fields. The slot keeps its ID.
func (s *Store) StageNewItem(f Fields) {
	s.staged.apply(f)
}

// StagedItem returns a copy of the staging slot.
func (s *Store) StagedItem() *Record {
	return s.staged.Clone()
}

// ValidNewItem reports whether the staging slot would be accepted.
func (s *Store) ValidNewItem() bool {
	return s.staged.IsValid()
}

// CommitNewItem appends the staged record to the selected table and resets
// the staging slot. An invalid record is rejected with a ValidationError and
// the slot is left untouched for correction.
func (s *Store) CommitNewItem() error {
	if err := s.staged.Validate(); err != nil {
		s.notify(SeverityError, "Missing data", err.Error())
		return err
	}

	key, ok := s.currentList()
	if !ok {
		s.notify(SeverityError, "No table selected", "select a table before adding items")
		return &NotFoundError{Kind: "table"}
	}

	rec := s.staged
	s.tables[key] = append(s.tables[key], rec)
	s.staged = NewRecord(Fields{})

	s.notify(SeverityInfo, "New item added", "")
	s.emit(Change{Kind: ChangeRecordAdded, Table: key, Record: rec.Clone()})
	return nil
}

// BeginEdit starts editing rec in the selected table by staging a copy of it.
// It is a no-op when rec is nil or no table is selected.
func (s *Store) BeginEdit(rec *Record) error {
	if rec == nil || !s.hasSelection {
		return nil
	}

	key, ok := s.currentKey()
	if !ok {
		key = s.selected
	}
	index := -1
	for i, r := range s.tables[key] {
		if r.Equal(rec) {
			index = i
			break
		}
	}

	s.edit = &editCursor{
		table:    key,
		index:    index,
		targetID: rec.ID,
		staged:   rec.Clone(),
	}
	return nil
}

// Editing reports whether an edit is in progress.
func (s *Store) Editing() bool {
	return s.edit != nil
}

// EditedItem returns a copy of the staged edit, or nil when not editing.
func (s *Store) EditedItem() *Record {
	if s.edit == nil {
		return nil
	}
	return s.edit.staged.Clone()
}

// ValidEditedItem reports whether the staged edit would be accepted.
func (s *Store) ValidEditedItem() bool {
	return s.edit != nil && s.edit.staged.IsValid()
}

// StageEdit replaces the fields of the staged edit.
func (s *Store) StageEdit(f Fields) error {
	if s.edit == nil {
		return &StaleCursorError{Reason: "no edit in progress"}
	}
	s.edit.staged.apply(f)
	return nil
}

// CancelEdit discards the edit in progress, if any.
func (s *Store) CancelEdit() {
	s.edit = nil
}

// CommitEdit writes the staged edit over the record it was started from,
// keeping that record's ID.
//
// A cursor that no longer points at its record (the table changed, the list
// shrank, or the record moved) is cleared and reported as a StaleCursorError.
// An invalid staged record is reported as a ValidationError and the edit stays
// active for correction.
func (s *Store) CommitEdit() error {
	if s.edit == nil {
		s.notify(SeverityError, "Invalid edit operation", "select an item to edit")
		return &StaleCursorError{Reason: "no edit in progress"}
	}

	if reason := s.checkCursor(); reason != "" {
		s.edit = nil
		s.notify(SeverityError, "Invalid edit operation", reason)
		return &StaleCursorError{Reason: reason}
	}

	if err := s.edit.staged.Validate(); err != nil {
		s.notify(SeverityError, "Invalid data", err.Error())
		return err
	}

	table := s.edit.table
	target := s.tables[table][s.edit.index]
	target.apply(s.edit.staged.Fields())
	s.edit = nil

	s.notify(SeverityInfo, "Edit successful", "item updated")
	s.emit(Change{Kind: ChangeRecordUpdated, Table: table, Record: target.Clone()})
	return nil
}

// DeleteItem removes the first record equal to rec from the selected table.
// A missing record leaves the table unchanged and yields a NotFoundError.
func (s *Store) DeleteItem(rec *Record) error {
	if key, ok := s.currentKey(); ok && rec != nil {
		list := s.tables[key]
		for i, r := range list {
			if r.Equal(rec) {
				s.tables[key] = slices.Delete(list, i, i+1)
				s.notify(SeverityInfo, "Item deleted", "")
				s.emit(Change{Kind: ChangeRecordDeleted, Table: key, Record: r.Clone()})
				return nil
			}
		}
	}

	id := ""
	if rec != nil {
		id = rec.ID
	}
	s.notify(SeverityInfo, "Item not found", id)
	return &NotFoundError{Kind: "record", Name: id}
}

// CreateTable adds an empty table and selects it.
func (s *Store) CreateTable(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		s.notify(SeverityWarn, "Invalid table name", "please enter a unique table name")
		return &InvalidNameError{Name: name, Reason: "name cannot be blank"}
	}
	if _, exists := s.tables[name]; exists {
		s.notify(SeverityWarn, "Invalid table name", "please enter a unique table name")
		return &InvalidNameError{Name: name, Reason: "table already exists"}
	}

	s.putTable(name, []*Record{})
	s.selected, s.hasSelection = name, true

	s.notify(SeverityInfo, "New table added", fmt.Sprintf("table %s added successfully", name))
	s.emit(Change{Kind: ChangeTableCreated, Table: name})
	return nil
}

// DropTable removes the table with exactly the given key.
func (s *Store) DropTable(name string) bool {
	if _, exists := s.tables[name]; !exists {
		return false
	}

	delete(s.tables, name)
	s.order = slices.DeleteFunc(s.order, func(k string) bool { return k == name })
	if s.edit != nil && s.edit.table == name {
		s.edit = nil
	}

	s.emit(Change{Kind: ChangeTableDropped, Table: name})
	return true
}

// RenameTable moves the data of oldName to newName.
//
// All checks run before anything is mutated: newName must be non-blank and
// must not already be another table's key. If oldName is exactly a table's
// key its data is re-keyed in place; case-insensitive matches are not followed,
// so a differently cased table keeps its data. Otherwise newName is seeded from the first existing table whose
// name is contained in newName (its default records when the dataset has
// them), or starts empty. Any edit started in oldName is cleared and a
// selection of oldName follows the rename.
func (s *Store) RenameTable(oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return &InvalidNameError{Name: newName, Reason: "name cannot be blank"}
	}

	oldKey := oldName
	_, hasOld := s.tables[oldKey]
	if hasOld && oldKey == newName {
		return nil
	}
	if _, exists := s.tables[newName]; exists {
		return &InvalidNameError{Name: newName, Reason: "table already exists"}
	}

	if hasOld {
		selectedKey, _ := s.currentKey()

		s.tables[newName] = s.tables[oldKey]
		delete(s.tables, oldKey)
		s.order[slices.Index(s.order, oldKey)] = newName

		if selectedKey == oldKey {
			s.selected = newName
		}
	} else {
		s.putTable(newName, s.seedFor(newName))
	}

	if s.edit != nil && s.edit.table == oldKey {
		s.edit = nil
	}

	s.emit(Change{Kind: ChangeTableRenamed, Table: newName, OldTable: oldName})
	return nil
}

// Notices returns the queued notices without clearing them.
func (s *Store) Notices() []Notice {
	return slices.Clone(s.notices)
}

// DrainNotices returns the queued notices and clears the queue.
func (s *Store) DrainNotices() []Notice {
	n := s.notices
	s.notices = nil
	return n
}

// seedFor builds the initial records for a renamed table that had no data of
// its own. The first key contained in name wins, so renaming to "ABC" copies
// from a table named "A".
func (s *Store) seedFor(name string) []*Record {
	for _, key := range s.order {
		if key == "" || !strings.Contains(name, key) {
			continue
		}
		if t, ok := s.dataset.Lookup(key); ok {
			return t.instantiate()
		}
		list := make([]*Record, 0, len(s.tables[key]))
		for _, r := range s.tables[key] {
			list = append(list, NewRecord(r.Fields()))
		}
		return list
	}
	return []*Record{}
}

// checkCursor returns why the edit cursor is stale, or "" if it is usable.
func (s *Store) checkCursor() string {
	key, ok := s.currentKey()
	if !ok || key != s.edit.table {
		return "selected table changed"
	}

	list := s.tables[key]
	if s.edit.index < 0 || s.edit.index >= len(list) {
		return fmt.Sprintf("index %d out of range for %d items", s.edit.index, len(list))
	}
	if list[s.edit.index].ID != s.edit.targetID {
		return "item moved or was deleted"
	}
	return ""
}

// resolve finds the key for name: an exact match first, then the first
// case-insensitive match in insertion order.
func (s *Store) resolve(name string) (string, bool) {
	if _, ok := s.tables[name]; ok {
		return name, true
	}
	for _, key := range s.order {
		if sameName(key, name) {
			return key, true
		}
	}
	return "", false
}

// currentKey resolves the selection without creating anything.
func (s *Store) currentKey() (string, bool) {
	if !s.hasSelection {
		return "", false
	}
	return s.resolve(s.selected)
}

// currentList resolves the selection, creating an empty table on first use.
func (s *Store) currentList() (string, bool) {
	if !s.hasSelection {
		return "", false
	}
	if key, ok := s.resolve(s.selected); ok {
		return key, true
	}
	s.putTable(s.selected, []*Record{})
	return s.selected, true
}

// putTable sets a table's list, appending the key to the order if it is new.
func (s *Store) putTable(name string, list []*Record) {
	if _, exists := s.tables[name]; !exists {
		s.order = append(s.order, name)
	}
	if list == nil {
		list = []*Record{}
	}
	s.tables[name] = list
}

func (s *Store) notify(sev Severity, summary, detail string) {
	s.notices = append(s.notices, Notice{Severity: sev, Summary: summary, Detail: detail})
}

func (s *Store) emit(c Change) {
	if s.onChange != nil {
		s.onChange(c)
	}
}

func cloneList(list []*Record) []*Record {
	out := make([]*Record, 0, len(list))
	for _, r := range list {
		out = append(out, r.Clone())
	}
	return out
}
