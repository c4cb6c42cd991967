package store

import (
	"maps"
	"slices"
)

// Memory is a Store kept in process memory. Values are copied on the way in
// and out so callers never share maps with the store.
type Memory struct {
	scopes map[string]map[string]any
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{scopes: make(map[string]map[string]any)}
}

// Load implements Store.
func (m *Memory) Load(scope string) (map[string]any, error) {
	return cloneValues(m.scopes[scope]), nil
}

// Save implements Store.
func (m *Memory) Save(scope string, values map[string]any) error {
	m.scopes[scope] = cloneValues(values)
	return nil
}

// Delete implements Store.
func (m *Memory) Delete(scope string) error {
	delete(m.scopes, scope)
	return nil
}

// Scopes implements Store.
func (m *Memory) Scopes() ([]string, error) {
	return slices.Sorted(maps.Keys(m.scopes)), nil
}

// Close implements Store. The contents stay readable.
func (m *Memory) Close() error { return nil }
