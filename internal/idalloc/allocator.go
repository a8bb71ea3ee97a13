// Package idalloc issues locally-unique identifiers for newly created
// events, ahead of the remote store assigning its own. Identifiers are
// strictly increasing and never reused: an identifier consumed by a
// create that later fails stays consumed.
package idalloc

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/eventdeck/eventdeck/pkg/errors"
)

// DefaultLastID is the last-issued value assumed when no state file
// exists yet. The first allocation then yields 6.
const DefaultLastID = 5

// state is the on-disk allocator state.
type state struct {
	LastID int `yaml:"last_id"`
}

// Allocator hands out monotonically increasing event identifiers and
// persists the last issued value across process restarts. Allocations
// are serialized: concurrent callers never observe the same last value.
type Allocator struct {
	mu     sync.Mutex
	path   string
	last   int
	loaded bool
}

// New creates an allocator persisting its state at path.
func New(path string) *Allocator {
	return &Allocator{path: path}
}

// Allocate issues the next identifier. The new last value is persisted
// before the identifier is returned, so a crash after Allocate can skip
// identifiers but never repeat one.
func (a *Allocator) Allocate() (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.ensureLoaded()

	next := a.last + 1
	if err := a.persist(next); err != nil {
		return 0, err
	}
	a.last = next
	return next, nil
}

// Last returns the last issued identifier without allocating.
func (a *Allocator) Last() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.ensureLoaded()
	return a.last
}

// ensureLoaded lazily reads the state file. Any load failure, including
// a missing file, falls back to DefaultLastID rather than erroring.
// Caller must hold a.mu.
func (a *Allocator) ensureLoaded() {
	if a.loaded {
		return
	}
	a.last = DefaultLastID

	if data, err := os.ReadFile(a.path); err == nil {
		var s state
		if err := yaml.Unmarshal(data, &s); err == nil && s.LastID >= 0 {
			a.last = s.LastID
		}
	}
	a.loaded = true
}

// persist writes the state file atomically via a temp file and rename.
func (a *Allocator) persist(last int) error {
	data, err := yaml.Marshal(state{LastID: last})
	if err != nil {
		return errors.WrapIO("write", a.path, err)
	}

	dir := filepath.Dir(a.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".state-*.yaml")
	if err != nil {
		return errors.WrapIO("create", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.WrapIO("write", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.WrapIO("write", tmpName, err)
	}

	if err := os.Rename(tmpName, a.path); err != nil {
		_ = os.Remove(tmpName)
		return errors.WrapIO("rename", a.path, err)
	}
	return nil
}
