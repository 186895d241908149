package events

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SEA6153/tableview/pkg/records"
)

func TestKind_Validate(t *testing.T) {
	for _, k := range []Kind{
		KindSessionStarted, KindSessionEnded, KindDefaultsLoaded,
		KindTableCreated, KindTableRenamed, KindTableDropped,
		KindRecordAdded, KindRecordUpdated, KindRecordDeleted,
	} {
		assert.NoError(t, k.Validate(), string(k))
	}
	assert.Error(t, Kind("").Validate())
	assert.Error(t, Kind("record_moved").Validate())
}

func TestEvent_Validate(t *testing.T) {
	r := records.NewRecord(records.Fields{FirstName: "Elif"})

	tests := []struct {
		name    string
		event   Event
		wantErr string
	}{
		{"valid lifecycle", Event{Session: "s", Kind: KindSessionStarted}, ""},
		{"valid record event", Event{Session: "s", Kind: KindRecordDeleted, RecordID: r.ID, Record: r}, ""},
		{"missing session", Event{Kind: KindSessionStarted}, "session cannot be empty"},
		{"bad kind", Event{Session: "s", Kind: "nope"}, "invalid kind"},
		{"mismatched record id", Event{Session: "s", Kind: KindRecordAdded, RecordID: "x", Record: r}, "does not match"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFromChange(t *testing.T) {
	t.Run("rename carries both names", func(t *testing.T) {
		e := FromChange("s", records.Change{Kind: records.ChangeTableRenamed, Table: "Başkent", OldTable: "Ankara"})
		assert.Equal(t, KindTableRenamed, e.Kind)
		assert.Equal(t, "Başkent", e.Table)
		assert.Equal(t, "Ankara", e.OldTable)
		assert.Empty(t, e.RecordID)
		assert.NotZero(t, e.AtMs)
		assert.NoError(t, e.Validate())
	})

	t.Run("record is copied", func(t *testing.T) {
		r := records.NewRecord(records.Fields{Song: "Hallelujah"})
		e := FromChange("s", records.Change{Kind: records.ChangeRecordUpdated, Table: "İzmir", Record: r})
		r.Song = "changed"
		assert.Equal(t, "Hallelujah", e.Record.Song)
		assert.Equal(t, r.ID, e.RecordID)
	})
}

func TestChannels(t *testing.T) {
	assert.Equal(t, "tableview:prod:session:abc:events", SessionChannel("prod", "abc"))
	assert.Equal(t, "tableview:prod:events", InstanceChannel("prod"))
}
