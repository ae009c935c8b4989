package lnutils

import "sync"

// SyncMap is a sync.Map restricted to keys of type K and values of type V.
// The zero value is empty and ready for use.
type SyncMap[K comparable, V any] struct {
	m sync.Map
}

// Load returns the value stored under key and whether it was present.
func (s *SyncMap[K, V]) Load(key K) (V, bool) {
	value, ok := s.m.Load(key)
	if !ok {
		var zero V
		return zero, false
	}

	return value.(V), true
}

// LoadOrStore returns the value already stored under key, or stores and
// returns value. The boolean is true if the value was already present.
func (s *SyncMap[K, V]) LoadOrStore(key K, value V) (V, bool) {
	actual, loaded := s.m.LoadOrStore(key, value)

	return actual.(V), loaded
}

// Range calls visitor for each entry until it returns false.
func (s *SyncMap[K, V]) Range(visitor func(K, V) bool) {
	s.m.Range(func(k, v any) bool {
		return visitor(k.(K), v.(V))
	})
}

// Len returns the number of entries.
func (s *SyncMap[K, V]) Len() int {
	var n int
	s.Range(func(K, V) bool {
		n++
		return true
	})

	return n
}
