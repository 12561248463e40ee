package command

import (
	"sort"
	"sync"

	"github.com/agnivade/levenshtein"
	"github.com/pkg/errors"
)

// maxSuggestDistance bounds the edit distance for "did you mean" hints.
const maxSuggestDistance = 2

type entry struct {
	name     string
	fn       Func
	userData any
}

// Registry maps command names, by hash, to handlers.
type Registry struct {
	mu      sync.RWMutex
	entries map[uint32]entry
	hash    func(string) uint32
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[uint32]entry),
		hash:    Hash,
	}
}

// Add registers fn under name. A name whose hash is already present is
// rejected and the existing entry is kept.
func (r *Registry) Add(name string, fn Func, userData any) error {
	if name == "" || fn == nil {
		return errors.Wrapf(ErrInvalidCommand, "register %q", name)
	}

	h := r.hash(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.entries[h]; ok {
		if existing.name == name {
			return errors.Wrapf(ErrDuplicateCommand, "register %q", name)
		}
		return errors.Wrapf(ErrHashCollision, "register %q (collides with %q)", name, existing.name)
	}

	r.entries[h] = entry{name: name, fn: fn, userData: userData}
	return nil
}

// lookup returns the entry for name. A hash hit whose stored name differs is
// treated as a miss.
func (r *Registry) lookup(name string) (entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[r.hash(name)]
	if !ok || e.name != name {
		return entry{}, false
	}
	return e, true
}

// Has returns true if name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.lookup(name)
	return ok
}

// Names returns all registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		names = append(names, e.name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Clear removes all registered commands.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[uint32]entry)
}

// Suggest returns the registered name closest to name, or "" if none is
// within a small edit distance.
func (r *Registry) Suggest(name string) string {
	best := ""
	bestDist := maxSuggestDistance + 1
	for _, candidate := range r.Names() {
		if d := levenshtein.ComputeDistance(name, candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}
