//go:build integration

package events_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SEA6153/tableview/internal/events"
	"github.com/SEA6153/tableview/internal/testutil"
	"github.com/SEA6153/tableview/pkg/records"
)

func TestClient_PublishSubscribeAgainstRealRedis(t *testing.T) {
	opts := testutil.StartRedis(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := events.NewClient(opts, "integration")
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Ping(ctx))

	sub, err := client.Subscribe(ctx, "")
	require.NoError(t, err)
	defer sub.Close()

	sent := events.FromChange("sess-1", records.Change{Kind: records.ChangeTableCreated, Table: "Bursa"})
	require.NoError(t, client.Publish(ctx, sent))

	select {
	case got := <-sub.Events():
		assert.Equal(t, events.KindTableCreated, got.Kind)
		assert.Equal(t, "Bursa", got.Table)
		assert.Equal(t, "sess-1", got.Session)
	case err := <-sub.Errors():
		t.Fatalf("subscription error: %v", err)
	case <-ctx.Done():
		t.Fatal("timed out waiting for event")
	}
}
