package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/SEA6153/tableview/internal/events"
	"github.com/SEA6153/tableview/pkg/records"
)

// Session is one client's store and catalog.
type Session struct {
	key       string
	publisher events.Publisher
	now       func() time.Time

	mu       sync.Mutex
	store    *records.Store
	catalog  *records.Catalog
	pending  []records.Change
	lastUsed time.Time
}

// Key returns the session key.
func (s *Session) Key() string {
	return s.key
}

// Do runs fn with exclusive access to the session's store and catalog.
// Changes committed by fn are published once fn returns, whatever its result.
func (s *Session) Do(ctx context.Context, fn func(*records.Store, *records.Catalog) error) error {
	changes, err := s.run(fn)
	for _, c := range changes {
		s.publish(ctx, events.FromChange(s.key, c))
	}
	return err
}

// run calls fn under the session lock and takes the changes it committed.
// The lock is released and pending changes are reset even if fn panics.
func (s *Session) run(fn func(*records.Store, *records.Catalog) error) (changes []records.Change, err error) {
	s.mu.Lock()
	defer func() {
		changes = s.pending
		s.pending = nil
		s.mu.Unlock()
	}()

	s.lastUsed = s.now()
	return nil, fn(s.store, s.catalog)
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

func (s *Session) publish(ctx context.Context, e *events.Event) {
	if err := s.publisher.Publish(ctx, e); err != nil {
		log.Printf("[Session] Failed to publish %s event for session %s: %v", e.Kind, shortKey(s.key), err)
	}
}
