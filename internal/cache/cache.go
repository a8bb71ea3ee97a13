// Package cache maintains the local view of the remote record store: an
// immutable snapshot of events, users, and categories, replaced
// atomically on every successful refresh and retained unchanged when a
// refresh fails.
package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/eventdeck/eventdeck/pkg/catalog"
	"github.com/eventdeck/eventdeck/pkg/logging"
)

// State describes the cache lifecycle: Empty until the first snapshot
// commits, Loading while a refresh is in flight, Ready otherwise.
type State int

// Cache states.
const (
	StateEmpty State = iota
	StateLoading
	StateReady
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Cache holds the latest committed snapshot of the three collections.
type Cache struct {
	store  catalog.Lister
	logger *zerolog.Logger

	// refreshMu serializes refreshes so two in-flight refreshes can
	// never interleave their snapshot commits.
	refreshMu  sync.Mutex
	refreshing atomic.Bool
	snapshot   atomic.Pointer[catalog.Snapshot]
}

// New creates an empty cache reading from the given store.
func New(store catalog.Lister, logger *zerolog.Logger) *Cache {
	if logger == nil {
		logger = logging.Default()
	}
	return &Cache{store: store, logger: logger}
}

// Refresh lists all three collections concurrently and commits a new
// snapshot if, and only if, all three succeed. On any failure the
// previously held snapshot is retained unchanged and the error is
// returned; a failed refresh is never fatal to the process.
func (c *Cache) Refresh(ctx context.Context) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	c.refreshing.Store(true)
	defer c.refreshing.Store(false)

	var (
		events     []catalog.Event
		users      []catalog.User
		categories []catalog.Category
		errs       [3]error
	)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		events, errs[0] = c.store.ListEvents(ctx)
	}()
	go func() {
		defer wg.Done()
		users, errs[1] = c.store.ListUsers(ctx)
	}()
	go func() {
		defer wg.Done()
		categories, errs[2] = c.store.ListCategories(ctx)
	}()
	wg.Wait()

	if err := errors.Join(errs[0], errs[1], errs[2]); err != nil {
		c.logger.Warn().
			Err(err).
			Bool("snapshot_retained", c.snapshot.Load() != nil).
			Msg("Catalog refresh failed")
		return err
	}

	c.snapshot.Store(&catalog.Snapshot{
		Events:     events,
		Users:      users,
		Categories: categories,
	})

	c.logger.Debug().
		Int("events", len(events)).
		Int("users", len(users)).
		Int("categories", len(categories)).
		Msg("Catalog snapshot committed")
	return nil
}

// Snapshot returns the latest committed snapshot without blocking. The
// second return value is false while the cache is still empty.
func (c *Cache) Snapshot() (*catalog.Snapshot, bool) {
	snap := c.snapshot.Load()
	return snap, snap != nil
}

// State reports the cache lifecycle state.
func (c *Cache) State() State {
	if c.refreshing.Load() {
		return StateLoading
	}
	if c.snapshot.Load() == nil {
		return StateEmpty
	}
	return StateReady
}
