// Package state provides the flat key/value store shared by modules within
// one engine pass. Keys are opaque strings owned by convention (for example
// contrib.paths or resolved.paths) and a write always replaces the whole value.
//
// The store carries no locking: the engine invokes modules strictly one at a
// time, so there is never concurrent mutation.
package state

import "sort"

// Store is a process-scoped typed key/value map.
type Store struct {
	values map[string]any
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{values: make(map[string]any)}
}

// Get returns the value stored under key, if any.
func (s *Store) Get(key string) (any, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key, replacing any previous value entirely.
func (s *Store) Set(key string, value any) {
	if s.values == nil {
		s.values = make(map[string]any)
	}
	s.values[key] = value
}

// Delete removes key from the store.
func (s *Store) Delete(key string) {
	delete(s.values, key)
}

// Keys returns all stored keys in sorted order.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get retrieves a value with its concrete type. The second return is false
// when the key is absent or holds a value of a different type.
func Get[T any](s *Store, key string) (T, bool) {
	var zero T
	raw, ok := s.Get(key)
	if !ok {
		return zero, false
	}
	v, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return v, true
}
