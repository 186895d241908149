// Package testutil provides Redis fixtures shared by package tests.
package testutil

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/SEA6153/tableview/internal/events"
)

// TestInstance is the instance name event clients are created with.
const TestInstance = "test-instance"

// NewMiniRedis starts an in-process Redis server that is closed when the test ends.
func NewMiniRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.NewMiniRedis()
	require.NoError(t, mr.Start())
	t.Cleanup(mr.Close)
	return mr
}

// NewEventClient returns an events client for TestInstance backed by a fresh
// miniredis server.
func NewEventClient(t *testing.T) (*events.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := NewMiniRedis(t)

	client, err := events.NewClient(&redis.Options{Addr: mr.Addr()}, TestInstance)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return client, mr
}
