// Package cache is the client's in-memory normalized cache. Query results are
// stored under a key (for example the "me" query root) and read back by the
// views, so a mutation can reconcile the cached value instead of re-fetching.
//
// Update is the only way to do read-modify-write: it holds the store lock
// across the read and the write, so two concurrent updates of the same key
// are applied one after the other and neither is lost.
package cache

import "sync"

// UpdateFunc receives the current value (ok=false when the key is absent) and
// returns the value to store. Returning keep=false leaves the entry untouched.
type UpdateFunc[V any] func(current V, ok bool) (next V, keep bool)

// Store is a concurrency-safe keyed cache.
type Store[V any] struct {
	mu      sync.RWMutex
	entries map[string]V
}

func New[V any]() *Store[V] {
	return &Store[V]{entries: make(map[string]V)}
}

// Read returns the value cached under key.
func (s *Store[V]) Read(key string) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	return v, ok
}

// Write replaces the value cached under key.
func (s *Store[V]) Write(key string, v V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = v
}

// Update applies fn to the latest value under key atomically and reports
// whether a new value was stored.
func (s *Store[V]) Update(key string, fn UpdateFunc[V]) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.entries[key]
	next, keep := fn(cur, ok)
	if !keep {
		return cur, false
	}
	s.entries[key] = next
	return next, true
}

// Evict drops key from the cache.
func (s *Store[V]) Evict(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Reset drops every entry, e.g. on logout.
func (s *Store[V]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.entries)
}
