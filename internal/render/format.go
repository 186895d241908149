// Package render formats records for terminal output.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/SEA6153/tableview/pkg/records"
)

// FormatTable writes records as a formatted table to the provided writer.
// The table includes columns: ID, FIRST NAME, LAST NAME, SONG, ARTIST and YEAR.
// Returns the number of records formatted.
func FormatTable(w io.Writer, list []*records.Record, tableName string) int {
	if len(list) == 0 {
		fmt.Fprintf(w, "No records found in table '%s'\n", tableName)
		return 0
	}

	fmt.Fprintf(w, "Records in table '%s':\n\n", tableName)

	fmt.Fprintf(w, "%-8s  %-12s  %-12s  %-24s  %-16s  %s\n",
		"ID", "FIRST NAME", "LAST NAME", "SONG", "ARTIST", "YEAR")
	fmt.Fprintf(w, "%-8s  %-12s  %-12s  %-24s  %-16s  %s\n",
		"--------", "------------", "------------", "------------------------", "----------------", "----")

	for _, r := range list {
		fmt.Fprintf(w, "%-8s  %-12s  %-12s  %-24s  %-16s  %s\n",
			formatID(r.ID),
			truncate(r.FirstName, 12),
			truncate(r.LastName, 12),
			truncate(r.Song, 24),
			truncate(r.Artist, 16),
			formatYear(r.Released),
		)
	}

	countMsg := "record"
	if len(list) != 1 {
		countMsg = "records"
	}
	fmt.Fprintf(w, "\n%d %s found\n", len(list), countMsg)

	return len(list)
}

// FormatJSONL writes records as line-delimited JSON (JSONL) to the provided writer.
// Each record is written as a single JSON object on its own line.
func FormatJSONL(w io.Writer, list []*records.Record) error {
	for _, r := range list {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("failed to marshal record to JSON: %w", err)
		}

		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("failed to write JSONL output: %w", err)
		}
	}

	return nil
}

// FormatSingleJSON writes a single record as pretty-printed JSON to the provided writer.
func FormatSingleJSON(w io.Writer, r *records.Record) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record to JSON: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}

	fmt.Fprintln(w)
	return nil
}

// formatID truncates a record ID to its first 8 characters for compact display.
func formatID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// truncate shortens s to at most n runes, marking the cut with "...".
// Blank values return "-".
func truncate(s string, n int) string {
	if s == "" {
		return "-"
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// formatYear renders a release year, or "-" when unknown.
func formatYear(year *int) string {
	if year == nil {
		return "-"
	}
	return strconv.Itoa(*year)
}
