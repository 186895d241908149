package records

import (
	"fmt"
	"slices"
	"strings"
)

// Catalog is the ordered list of table names shown in the table management
// screen. It is independent of the Store's keys except on rename, where it
// keeps the Store consistent through the reference it was built with.
// A Catalog is not safe for concurrent use.
type Catalog struct {
	store         *Store
	names         []string
	cascadeRemove bool

	pendingName  string
	pendingIndex int // -1 when no rename is staged
}

// CatalogOption configures a Catalog.
type CatalogOption func(*Catalog)

// WithCascadeRemove makes Remove also drop the table's records from the store.
// By default removing a name leaves its records in the store.
func WithCascadeRemove(enabled bool) CatalogOption {
	return func(c *Catalog) {
		c.cascadeRemove = enabled
	}
}

// NewCatalog creates a catalog seeded with the store's dataset table names.
func NewCatalog(store *Store, opts ...CatalogOption) *Catalog {
	c := &Catalog{
		store:        store,
		names:        store.dataset.Names(),
		pendingIndex: -1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Names returns the table names in display order.
func (c *Catalog) Names() []string {
	return slices.Clone(c.names)
}

// Add appends a trimmed name. Blank and duplicate names are rejected.
func (c *Catalog) Add(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &InvalidNameError{Name: name, Reason: "name cannot be blank"}
	}
	if slices.Contains(c.names, name) {
		return &InvalidNameError{Name: name, Reason: "name already in catalog"}
	}

	c.names = append(c.names, name)
	return nil
}

// Remove deletes the first occurrence of name and reports whether it was present.
// A staged rename is discarded since its index may no longer be meaningful.
func (c *Catalog) Remove(name string) bool {
	i := slices.Index(c.names, name)
	if i < 0 {
		return false
	}

	c.names = slices.Delete(c.names, i, i+1)
	c.clearPending()
	if c.cascadeRemove {
		c.store.DropTable(name)
	}
	return true
}

// PrepareRename stages a rename of the entry at index. name is the initial
// value of the new name and may be changed with SetPendingName before commit.
// An out-of-range index stages nothing.
func (c *Catalog) PrepareRename(name string, index int) error {
	if index < 0 || index >= len(c.names) {
		return &NotFoundError{Kind: "table index", Name: fmt.Sprintf("%d", index)}
	}
	c.pendingName = name
	c.pendingIndex = index
	return nil
}

// SetPendingName changes the new name of the staged rename.
// It reports false when no rename is staged.
func (c *Catalog) SetPendingName(name string) bool {
	if c.pendingIndex < 0 {
		return false
	}
	c.pendingName = name
	return true
}

// PendingRename returns the staged rename, if any.
func (c *Catalog) PendingRename() (name string, index int, ok bool) {
	if c.pendingIndex < 0 {
		return "", -1, false
	}
	return c.pendingName, c.pendingIndex, true
}

// CommitRename applies the staged rename to the store and then to the catalog.
// Every precondition is checked first, so a rejected rename changes neither
// and stays staged for correction.
func (c *Catalog) CommitRename() error {
	if c.pendingIndex < 0 || c.pendingIndex >= len(c.names) {
		return &NotFoundError{Kind: "table index", Name: fmt.Sprintf("%d", c.pendingIndex)}
	}

	newName := strings.TrimSpace(c.pendingName)
	if newName == "" {
		return &InvalidNameError{Name: newName, Reason: "name cannot be blank"}
	}
	for i, n := range c.names {
		if i != c.pendingIndex && n == newName {
			return &InvalidNameError{Name: newName, Reason: "name already in catalog"}
		}
	}

	oldName := c.names[c.pendingIndex]
	if newName != oldName {
		if err := c.store.RenameTable(oldName, newName); err != nil {
			return fmt.Errorf("failed to rename table '%s': %w", oldName, err)
		}
		c.names[c.pendingIndex] = newName
	}

	c.clearPending()
	return nil
}

func (c *Catalog) clearPending() {
	c.pendingName = ""
	c.pendingIndex = -1
}
