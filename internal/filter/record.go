package filter

import (
	"path/filepath"

	"golang.org/x/text/cases"

	"github.com/SEA6153/tableview/pkg/records"
)

// Criteria defines filtering criteria for records.
// All filters are ANDed together - a record must match ALL criteria to pass.
type Criteria struct {
	ArtistGlob string // Glob pattern for artist, case-insensitive, empty = no filter
	SongGlob   string // Glob pattern for song title, case-insensitive, empty = no filter
	SinceYear  int    // Earliest release year (inclusive), 0 = no filter
	UntilYear  int    // Latest release year (inclusive), 0 = no filter
}

// Matches returns true if the record matches all filter criteria.
// Empty/zero criteria values are treated as "match all" for that criterion.
// A record without a release year never passes a year filter.
func (c *Criteria) Matches(rec *records.Record) bool {
	if c.SinceYear > 0 || c.UntilYear > 0 {
		if rec.Released == nil {
			return false
		}
		if c.SinceYear > 0 && *rec.Released < c.SinceYear {
			return false
		}
		if c.UntilYear > 0 && *rec.Released > c.UntilYear {
			return false
		}
	}

	if c.ArtistGlob != "" && !globMatch(c.ArtistGlob, rec.Artist) {
		return false
	}
	if c.SongGlob != "" && !globMatch(c.SongGlob, rec.Song) {
		return false
	}

	return true
}

// HasFilters returns true if any filters are active.
func (c *Criteria) HasFilters() bool {
	return c.ArtistGlob != "" ||
		c.SongGlob != "" ||
		c.SinceYear > 0 ||
		c.UntilYear > 0
}

// Apply returns the records that match, in their original order.
func (c *Criteria) Apply(list []*records.Record) []*records.Record {
	if !c.HasFilters() {
		return list
	}
	out := make([]*records.Record, 0, len(list))
	for _, rec := range list {
		if c.Matches(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// globMatch reports whether value matches pattern after case folding.
// Malformed patterns match nothing.
func globMatch(pattern, value string) bool {
	fold := cases.Fold()
	matched, err := filepath.Match(fold.String(pattern), fold.String(value))
	return err == nil && matched
}
