package records

import (
	"strings"

	"github.com/google/uuid"
)

// Record is one music entry in a table.
type Record struct {
	ID        string `json:"id"`         // UUID - assigned at construction, never reassigned
	FirstName string `json:"first_name"` // First name of the person the entry belongs to
	LastName  string `json:"last_name"`  // Last name of the person the entry belongs to
	Song      string `json:"song"`       // Song title
	Artist    string `json:"artist"`     // Performing artist
	Released  *int   `json:"released"`   // Release year, nil when unknown
}

// Fields is the caller-supplied shape of a Record, without identity.
// It is what the UI binds to when staging a new item or an edit.
type Fields struct {
	FirstName string `json:"first_name" yaml:"first_name"`
	LastName  string `json:"last_name" yaml:"last_name"`
	Song      string `json:"song" yaml:"song"`
	Artist    string `json:"artist" yaml:"artist"`
	Released  *int   `json:"released" yaml:"released"`
}

// Year returns a pointer to y, for filling Fields.Released in literals.
func Year(y int) *int {
	return &y
}

// NewRecord creates a Record with a fresh UUID and the given fields.
func NewRecord(f Fields) *Record {
	r := &Record{ID: uuid.New().String()}
	r.apply(f)
	return r
}

// Fields returns the record's data without its identity.
func (r *Record) Fields() Fields {
	f := Fields{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Song:      r.Song,
		Artist:    r.Artist,
	}
	if r.Released != nil {
		f.Released = Year(*r.Released)
	}
	return f
}

// apply overwrites every data field of r, keeping its ID.
func (r *Record) apply(f Fields) {
	r.FirstName = f.FirstName
	r.LastName = f.LastName
	r.Song = f.Song
	r.Artist = f.Artist
	r.Released = nil
	if f.Released != nil {
		r.Released = Year(*f.Released)
	}
}

// Clone returns a deep copy of r, including its ID.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	c := &Record{ID: r.ID}
	c.apply(r.Fields())
	return c
}

// Equal reports whether r and other have the same ID and field values.
// Two nil records are equal.
func (r *Record) Equal(other *Record) bool {
	if r == nil || other == nil {
		return r == other
	}
	if r.ID != other.ID ||
		r.FirstName != other.FirstName ||
		r.LastName != other.LastName ||
		r.Song != other.Song ||
		r.Artist != other.Artist {
		return false
	}
	if r.Released == nil || other.Released == nil {
		return r.Released == other.Released
	}
	return *r.Released == *other.Released
}

// Validate checks that every field is present.
// Text fields consisting only of whitespace count as missing.
func (r *Record) Validate() error {
	var missing []string
	if isBlank(r.FirstName) {
		missing = append(missing, "first_name")
	}
	if isBlank(r.LastName) {
		missing = append(missing, "last_name")
	}
	if isBlank(r.Song) {
		missing = append(missing, "song")
	}
	if isBlank(r.Artist) {
		missing = append(missing, "artist")
	}
	if r.Released == nil {
		missing = append(missing, "released")
	}

	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// IsValid reports whether Validate would succeed.
func (r *Record) IsValid() bool {
	return r != nil && r.Validate() == nil
}

// IsValidUUID checks if a string is a valid UUID format.
func IsValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
