// Package instance names a tableview deployment. The instance name namespaces
// every Redis channel a server publishes session events to, so several
// deployments can share one Redis without seeing each other's events.
package instance

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// DefaultName is used when the config leaves the instance name empty
	DefaultName = "default"

	// MaxNameLength is the maximum length for an instance name (DNS-compatible)
	MaxNameLength = 63

	// KeyPrefix is the first segment of every Redis key and channel
	KeyPrefix = "tableview"
)

// NamePattern matches DNS-compatible names: lowercase alphanumeric with
// hyphens, not at start or end.
var NamePattern = regexp.MustCompile(`^[a-z0-9]([-a-z0-9]*[a-z0-9])?$`)

// ValidateName checks if an instance name is valid according to DNS naming rules.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("instance name cannot be empty")
	}

	if len(name) > MaxNameLength {
		return fmt.Errorf("instance name too long: %d characters (max: %d)", len(name), MaxNameLength)
	}

	if !NamePattern.MatchString(name) {
		return fmt.Errorf("invalid instance name '%s': must be lowercase alphanumeric with hyphens (not at start/end)", name)
	}

	return nil
}

// Resolve returns the configured name, or DefaultName when it is blank,
// after validating it.
func Resolve(configured string) (string, error) {
	name := strings.TrimSpace(configured)
	if name == "" {
		name = DefaultName
	}
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return name, nil
}

// Namespace returns the key prefix for an instance.
// Pattern: tableview:{instance_name}
func Namespace(name string) string {
	return KeyPrefix + ":" + name
}
