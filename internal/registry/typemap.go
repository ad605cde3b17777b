package registry

import (
	"reflect"
)

// TypeMap stores one value per key type. Keys are type identities, values are
// held as opaque interface values and recovered with a checked assertion.
//
// TypeMap is not safe for concurrent use; the owner provides locking.
type TypeMap struct {
	entries map[reflect.Type]any
}

// New creates an empty TypeMap
func New() *TypeMap {
	return &TypeMap{
		entries: make(map[reflect.Type]any),
	}
}

// KeyOf returns the identity used to store values under type K
func KeyOf[K any]() reflect.Type {
	return reflect.TypeFor[K]()
}

// Set stores value under K, replacing any previous entry.
// The replaced value is returned so the caller can release it.
func Set[K any](m *TypeMap, value any) (any, bool) {
	return m.SetType(KeyOf[K](), value)
}

// Get recovers the entry stored under K as V.
// It returns false when nothing is stored or the stored value is not a V.
func Get[K any, V any](m *TypeMap) (V, bool) {
	var zero V

	entry, ok := m.entries[KeyOf[K]()]
	if !ok {
		return zero, false
	}

	value, ok := entry.(V)
	if !ok {
		return zero, false
	}

	return value, true
}

// Delete removes the entry stored under K and returns it
func Delete[K any](m *TypeMap) (any, bool) {
	key := KeyOf[K]()
	entry, ok := m.entries[key]
	if ok {
		delete(m.entries, key)
	}
	return entry, ok
}

// SetType stores value under an explicit key
func (m *TypeMap) SetType(key reflect.Type, value any) (any, bool) {
	previous, replaced := m.entries[key]
	m.entries[key] = value
	return previous, replaced
}

// Lookup returns the raw entry stored under key
func (m *TypeMap) Lookup(key reflect.Type) (any, bool) {
	entry, ok := m.entries[key]
	return entry, ok
}

// Len returns the number of stored entries
func (m *TypeMap) Len() int {
	return len(m.entries)
}

// Types returns the keys currently stored, in no particular order
func (m *TypeMap) Types() []reflect.Type {
	types := make([]reflect.Type, 0, len(m.entries))
	for t := range m.entries {
		types = append(types, t)
	}
	return types
}

// Range calls fn for every entry until fn returns false
func (m *TypeMap) Range(fn func(key reflect.Type, value any) bool) {
	for key, value := range m.entries {
		if !fn(key, value) {
			return
		}
	}
}

// Clear removes all entries
func (m *TypeMap) Clear() {
	clear(m.entries)
}
