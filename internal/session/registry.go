// Package session keeps one records store and catalog per client session.
//
// A session is created on first access, lives in memory only, and is
// discarded when the client ends it or when it has been idle for longer than
// the configured timeout. Every operation on a session runs under that
// session's lock; committed changes are published as events afterwards.
package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SEA6153/tableview/internal/events"
	"github.com/SEA6153/tableview/pkg/records"
)

// Options configures a Registry.
type Options struct {
	Dataset       records.Dataset  // tables every new session starts with (DefaultDataset when nil)
	CascadeRemove bool             // catalog removals also drop the store table
	IdleTimeout   time.Duration    // sessions unused for longer are swept; 0 disables expiry
	SweepInterval time.Duration    // how often Run checks for idle sessions
	Publisher     events.Publisher // receives session events (NopPublisher when nil)
}

// Registry maps session keys to live sessions.
// Safe for concurrent use.
type Registry struct {
	opts Options
	now  func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry creates an empty registry.
func NewRegistry(opts Options) *Registry {
	if opts.Dataset == nil {
		opts.Dataset = records.DefaultDataset()
	}
	if opts.Publisher == nil {
		opts.Publisher = events.NopPublisher{}
	}
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = time.Minute
	}

	return &Registry{
		opts:     opts,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// NewKey returns a fresh random session key.
func NewKey() string {
	return uuid.New().String()
}

// Get returns the session for key, creating it when it does not exist.
// initialTable is only used on creation and selects the matching table if
// there is one. The second result reports whether the session was created.
func (r *Registry) Get(ctx context.Context, key, initialTable string) (*Session, bool) {
	r.mu.Lock()
	if s, ok := r.sessions[key]; ok {
		r.mu.Unlock()
		return s, false
	}

	store := records.NewStore(r.opts.Dataset, initialTable)
	s := &Session{
		key:       key,
		store:     store,
		catalog:   records.NewCatalog(store, records.WithCascadeRemove(r.opts.CascadeRemove)),
		publisher: r.opts.Publisher,
		now:       r.now,
		lastUsed:  r.now(),
	}
	store.SetObserver(func(c records.Change) {
		s.pending = append(s.pending, c)
	})
	r.sessions[key] = s
	r.mu.Unlock()

	log.Printf("[Session] Started session %s", shortKey(key))
	s.publish(ctx, events.Lifecycle(key, events.KindSessionStarted))
	return s, true
}

// Lookup returns the session for key without creating one.
func (r *Registry) Lookup(key string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[key]
	return s, ok
}

// End discards the session for key. It reports whether a session existed.
func (r *Registry) End(ctx context.Context, key string) bool {
	r.mu.Lock()
	s, ok := r.sessions[key]
	delete(r.sessions, key)
	r.mu.Unlock()

	if !ok {
		return false
	}

	log.Printf("[Session] Ended session %s", shortKey(key))
	s.publish(ctx, events.Lifecycle(key, events.KindSessionEnded))
	return true
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep ends every session idle for longer than the idle timeout and returns
// how many were ended.
func (r *Registry) Sweep(ctx context.Context) int {
	if r.opts.IdleTimeout <= 0 {
		return 0
	}

	cutoff := r.now().Add(-r.opts.IdleTimeout)

	r.mu.Lock()
	var expired []string
	for key, s := range r.sessions {
		if s.idleSince().Before(cutoff) {
			expired = append(expired, key)
		}
	}
	r.mu.Unlock()

	ended := 0
	for _, key := range expired {
		if r.End(ctx, key) {
			ended++
		}
	}
	if ended > 0 {
		log.Printf("[Session] Swept %d idle session(s)", ended)
	}
	return ended
}

// Run sweeps idle sessions on every tick until ctx is cancelled.
func (r *Registry) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.opts.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.Sweep(ctx)
		}
	}
}

func shortKey(key string) string {
	if len(key) > 8 {
		return key[:8]
	}
	return key
}
