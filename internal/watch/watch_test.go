package watch

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SEA6153/tableview/internal/events"
	"github.com/SEA6153/tableview/internal/testutil"
	"github.com/SEA6153/tableview/pkg/records"
)

// syncBuffer is a bytes.Buffer safe for one writer and one reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("yaml")
	assert.Error(t, err)
}

func TestFormatEvent(t *testing.T) {
	rec := &records.Record{ID: "0b7e2a51-4c1d-4e8f-9a3b-5d6c7e8f9a01", Song: "Hallelujah", Artist: "Leonard Cohen"}

	tests := []struct {
		name     string
		event    *events.Event
		expected string
	}{
		{
			name:     "session_started",
			event:    events.Lifecycle("abcdef123456", events.KindSessionStarted),
			expected: "🟢 Session started: abcdef12",
		},
		{
			name:     "table_renamed",
			event:    &events.Event{Session: "s1", Kind: events.KindTableRenamed, Table: "Başkent", OldTable: "Ankara"},
			expected: "✏️  Table renamed: Ankara -> Başkent (session=s1)",
		},
		{
			name:     "record_added",
			event:    &events.Event{Session: "s1", Kind: events.KindRecordAdded, Table: "İzmir", RecordID: rec.ID, Record: rec},
			expected: `🎵 Record added: 0b7e2a51 in İzmir ("Hallelujah" by Leonard Cohen)`,
		},
		{
			name:     "record_deleted without payload",
			event:    &events.Event{Session: "s1", Kind: events.KindRecordDeleted, Table: "İzmir", RecordID: rec.ID},
			expected: "❌ Record deleted: 0b7e2a51 from İzmir",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatEvent(tt.event))
		})
	}
}

func TestStream(t *testing.T) {
	client, _ := testutil.NewEventClient(t)

	for _, format := range []OutputFormat{FormatDefault, FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			var out syncBuffer
			done := make(chan error, 1)
			go func() { done <- Stream(ctx, client, "s1", format, &out) }()

			// Publish until the subscriber has attached and received one.
			require.Eventually(t, func() bool {
				client.Publish(context.Background(), &events.Event{Session: "s1", Kind: events.KindTableCreated, Table: "Bursa", AtMs: 1})
				return strings.Contains(out.String(), "Bursa")
			}, 2*time.Second, 20*time.Millisecond)

			cancel()
			select {
			case err := <-done:
				assert.NoError(t, err)
			case <-time.After(2 * time.Second):
				t.Fatal("Stream did not return after cancel")
			}

			line := strings.SplitN(out.String(), "\n", 2)[0]
			if format == FormatJSON {
				assert.Contains(t, line, `"kind":"table_created"`)
			} else {
				assert.Contains(t, line, "➕ Table created: Bursa (session=s1)")
			}
		})
	}
}
