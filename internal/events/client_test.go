package events

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SEA6153/tableview/pkg/records"
)

// setupTestClient creates a test client connected to a miniredis instance
func setupTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	mr := miniredis.NewMiniRedis()
	err := mr.Start()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := NewClient(&redis.Options{Addr: mr.Addr()}, "test-instance")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return client, mr
}

func receive(t *testing.T, sub *Subscription) *Event {
	t.Helper()
	select {
	case e, ok := <-sub.Events():
		require.True(t, ok, "events channel closed")
		return e
	case err := <-sub.Errors():
		t.Fatalf("unexpected subscription error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return nil
}

func TestNewClient(t *testing.T) {
	t.Run("creates client successfully", func(t *testing.T) {
		client, _ := setupTestClient(t)
		assert.NotNil(t, client)
		assert.Equal(t, "test-instance", client.instanceName)
	})

	t.Run("rejects empty instance name", func(t *testing.T) {
		_, err := NewClient(&redis.Options{Addr: "localhost:6379"}, "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "instance name cannot be empty")
	})
}

func TestPing(t *testing.T) {
	client, mr := setupTestClient(t)
	ctx := context.Background()

	assert.NoError(t, client.Ping(ctx))

	mr.Close()
	assert.Error(t, client.Ping(ctx))
}

func TestPublish_ReachesSessionAndInstanceChannels(t *testing.T) {
	client, _ := setupTestClient(t)
	ctx := context.Background()

	sessionSub, err := client.Subscribe(ctx, "abc")
	require.NoError(t, err)
	defer sessionSub.Close()

	instanceSub, err := client.Subscribe(ctx, "")
	require.NoError(t, err)
	defer instanceSub.Close()

	r := records.NewRecord(records.Fields{
		FirstName: "Ali", LastName: "VELİ", Song: "Shape of You",
		Artist: "Ed Sheeran", Released: records.Year(2017),
	})
	published := FromChange("abc", records.Change{
		Kind:   records.ChangeRecordAdded,
		Table:  "İstanbul",
		Record: r,
	})
	require.NoError(t, client.Publish(ctx, published))

	for _, sub := range []*Subscription{sessionSub, instanceSub} {
		got := receive(t, sub)
		assert.Equal(t, "abc", got.Session)
		assert.Equal(t, KindRecordAdded, got.Kind)
		assert.Equal(t, "İstanbul", got.Table)
		assert.Equal(t, r.ID, got.RecordID)
		assert.True(t, r.Equal(got.Record))
		assert.Equal(t, published.AtMs, got.AtMs)
	}
}

func TestPublish_OtherSessionNotDelivered(t *testing.T) {
	client, _ := setupTestClient(t)
	ctx := context.Background()

	sub, err := client.Subscribe(ctx, "mine")
	require.NoError(t, err)
	defer sub.Close()

	require.NoError(t, client.Publish(ctx, Lifecycle("theirs", KindSessionStarted)))
	require.NoError(t, client.Publish(ctx, Lifecycle("mine", KindSessionEnded)))

	got := receive(t, sub)
	assert.Equal(t, "mine", got.Session)
	assert.Equal(t, KindSessionEnded, got.Kind)
}

func TestPublish_RejectsInvalidEvent(t *testing.T) {
	client, _ := setupTestClient(t)

	err := client.Publish(context.Background(), &Event{Kind: KindSessionStarted})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid event")
}

func TestSubscribe_MalformedPayloadReportsError(t *testing.T) {
	client, mr := setupTestClient(t)
	ctx := context.Background()

	sub, err := client.Subscribe(ctx, "abc")
	require.NoError(t, err)
	defer sub.Close()

	mr.Publish(SessionChannel("test-instance", "abc"), "not json")

	select {
	case err := <-sub.Errors():
		assert.Contains(t, err.Error(), "failed to unmarshal session event")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for error")
	}

	require.NoError(t, client.Publish(ctx, Lifecycle("abc", KindSessionStarted)))
	got := receive(t, sub)
	assert.Equal(t, KindSessionStarted, got.Kind)
}

func TestSubscription_Close(t *testing.T) {
	client, _ := setupTestClient(t)

	sub, err := client.Subscribe(context.Background(), "abc")
	require.NoError(t, err)

	require.NoError(t, sub.Close())
	require.NoError(t, sub.Close())

	select {
	case _, ok := <-sub.Events():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("events channel not closed")
	}
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), Lifecycle("abc", KindSessionStarted)))
	assert.Error(t, p.Publish(context.Background(), &Event{Session: "abc", Kind: "bogus"}))
	assert.NoError(t, p.Close())
}
