package runtime

import (
	"mediator-lab/errors"
	"sync"
	"sync/atomic"

	"github.com/samber/lo"
)

// Registry is the only shared mutable state of a mediator.
// Entries are reached through Write (exclusive) or Read (shared).
//
// A panic escaping a Write callback leaves the entries in an unknown state:
// the registry is then poisoned, and every later access fails with
// errors.ErrLockPoison instead of running its callback.
type Registry[I comparable, V any] struct {
	mu       sync.RWMutex
	poisoned atomic.Bool
	entries  map[I]V
}

func NewRegistry[I comparable, V any]() *Registry[I, V] {
	return &Registry[I, V]{
		entries: make(map[I]V),
	}
}

// Write runs fn while holding the exclusive lock.
// The panic of fn, if any, is not recovered.
func (r *Registry[I, V]) Write(fn func(entries map[I]V)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.poisoned.Load() {
		return errors.ErrLockPoison
	}

	completed := false
	defer func() {
		if !completed {
			r.poisoned.Store(true)
		}
	}()
	fn(r.entries)
	completed = true
	return nil
}

// Read runs fn while holding the shared lock. fn must not mutate entries.
func (r *Registry[I, V]) Read(fn func(entries map[I]V)) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.poisoned.Load() {
		return errors.ErrLockPoison
	}
	fn(r.entries)
	return nil
}

func (r *Registry[I, V]) Poisoned() bool {
	return r.poisoned.Load()
}

// Store inserts or overwrites the entry for id. Last write wins.
func (r *Registry[I, V]) Store(id I, value V) error {
	return r.Write(func(entries map[I]V) {
		entries[id] = value
	})
}

func (r *Registry[I, V]) Load(id I) (V, bool, error) {
	var (
		value V
		ok    bool
	)
	err := r.Read(func(entries map[I]V) {
		value, ok = entries[id]
	})
	return value, ok, err
}

// Delete removes id and reports whether it was present.
func (r *Registry[I, V]) Delete(id I) (bool, error) {
	var existed bool
	err := r.Write(func(entries map[I]V) {
		_, existed = entries[id]
		delete(entries, id)
	})
	return existed, err
}

// Keys returns the registered identifiers in no particular order.
func (r *Registry[I, V]) Keys() ([]I, error) {
	var keys []I
	err := r.Read(func(entries map[I]V) {
		keys = lo.Keys(entries)
	})
	return keys, err
}

func (r *Registry[I, V]) Len() (int, error) {
	var n int
	err := r.Read(func(entries map[I]V) {
		n = len(entries)
	})
	return n, err
}
