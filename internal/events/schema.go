package events

import (
	"fmt"

	"github.com/SEA6153/tableview/internal/instance"
)

// Redis channel helpers
//
// All channels are namespaced by instance name so several deployments can
// share one Redis server.
//
// Channel pattern: tableview:{instance_name}:session:{session_key}:events

// SessionChannel returns the Pub/Sub channel for one session's events.
// Pattern: tableview:{instance_name}:session:{session_key}:events
func SessionChannel(instanceName, session string) string {
	return fmt.Sprintf("%s:session:%s:events", instance.Namespace(instanceName), session)
}

// InstanceChannel returns the Pub/Sub channel carrying every session's events.
// Pattern: tableview:{instance_name}:events
func InstanceChannel(instanceName string) string {
	return fmt.Sprintf("%s:events", instance.Namespace(instanceName))
}
