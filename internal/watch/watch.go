// Package watch streams session events to a terminal.
package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/SEA6153/tableview/internal/events"
)

// OutputFormat selects how streamed events are written.
type OutputFormat string

const (
	FormatDefault OutputFormat = "default" // one human-readable line per event
	FormatJSON    OutputFormat = "json"    // one JSON object per line
)

// ParseFormat validates a --output flag value.
func ParseFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case FormatDefault, FormatJSON:
		return OutputFormat(s), nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want default or json)", s)
	}
}

// Subscriber opens an event subscription. Implemented by *events.Client.
type Subscriber interface {
	Subscribe(ctx context.Context, session string) (*events.Subscription, error)
}

// Stream writes the events of session (or of every session when empty) to w
// until ctx is cancelled or the subscription ends.
// Malformed messages are reported inline and skipped.
func Stream(ctx context.Context, sub Subscriber, session string, format OutputFormat, w io.Writer) error {
	subscription, err := sub.Subscribe(ctx, session)
	if err != nil {
		return fmt.Errorf("failed to subscribe to events: %w", err)
	}
	defer subscription.Close()

	eventsCh := subscription.Events()
	errorsCh := subscription.Errors()

	for {
		select {
		case <-ctx.Done():
			return nil

		case e, ok := <-eventsCh:
			if !ok {
				return nil
			}
			if err := writeEvent(w, e, format); err != nil {
				return err
			}

		case err, ok := <-errorsCh:
			if !ok {
				errorsCh = nil
				continue
			}
			fmt.Fprintf(w, "⚠️  %v\n", err)
		}
	}
}

func writeEvent(w io.Writer, e *events.Event, format OutputFormat) error {
	if format == FormatJSON {
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to marshal event: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	}

	_, err := fmt.Fprintf(w, "[%s] %s\n", formatTime(e.AtMs), FormatEvent(e))
	return err
}

// FormatEvent renders an event as a single human-readable line.
func FormatEvent(e *events.Event) string {
	session := shortID(e.Session)

	switch e.Kind {
	case events.KindSessionStarted:
		return fmt.Sprintf("🟢 Session started: %s", session)
	case events.KindSessionEnded:
		return fmt.Sprintf("⚪ Session ended: %s", session)
	case events.KindDefaultsLoaded:
		return fmt.Sprintf("📦 Defaults loaded: session=%s", session)
	case events.KindTableCreated:
		return fmt.Sprintf("➕ Table created: %s (session=%s)", e.Table, session)
	case events.KindTableRenamed:
		return fmt.Sprintf("✏️  Table renamed: %s -> %s (session=%s)", e.OldTable, e.Table, session)
	case events.KindTableDropped:
		return fmt.Sprintf("🗑️  Table dropped: %s (session=%s)", e.Table, session)
	case events.KindRecordAdded:
		return fmt.Sprintf("🎵 Record added: %s in %s%s", shortID(e.RecordID), e.Table, describe(e))
	case events.KindRecordUpdated:
		return fmt.Sprintf("🔄 Record updated: %s in %s%s", shortID(e.RecordID), e.Table, describe(e))
	case events.KindRecordDeleted:
		return fmt.Sprintf("❌ Record deleted: %s from %s%s", shortID(e.RecordID), e.Table, describe(e))
	default:
		return fmt.Sprintf("❓ %s: session=%s", e.Kind, session)
	}
}

// describe appends the song and artist of a record event, if present.
func describe(e *events.Event) string {
	if e.Record == nil {
		return ""
	}
	return fmt.Sprintf(" (%q by %s)", e.Record.Song, e.Record.Artist)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatTime(ms int64) string {
	if ms == 0 {
		return "--:--:--"
	}
	return time.UnixMilli(ms).Format("15:04:05")
}
