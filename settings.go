package motion

import (
	"fmt"
	"maps"

	"github.com/spf13/cast"
)

// SettingsStore persists the settings of one controller or transition under
// a scope name. Implementations live in the store package.
type SettingsStore interface {
	Load(scope string) (map[string]any, error)
	Save(scope string, values map[string]any) error
}

// Settings is the opaque key/value store a host provides to each controller
// and transition. Values set explicitly shadow defaults; getters coerce the
// stored value to the requested type so settings read back from YAML, SQLite
// or a config file behave the same as values set in code.
type Settings struct {
	values   map[string]any
	defaults map[string]any
}

// NewSettings returns empty settings.
func NewSettings() *Settings {
	return &Settings{
		values:   make(map[string]any),
		defaults: make(map[string]any),
	}
}

// SettingsFrom returns settings holding a copy of values.
func SettingsFrom(values map[string]any) *Settings {
	s := NewSettings()
	maps.Copy(s.values, values)
	return s
}

func (s *Settings) get(key string) (any, bool) {
	if v, ok := s.values[key]; ok {
		return v, true
	}
	v, ok := s.defaults[key]
	return v, ok
}

// Has reports whether key has an explicit value.
func (s *Settings) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Delete removes the explicit value of key; its default, if any, shows again.
func (s *Settings) Delete(key string) {
	delete(s.values, key)
}

// Int returns key as an integer, or 0.
func (s *Settings) Int(key string) int64 {
	v, _ := s.get(key)
	return cast.ToInt64(v)
}

// Float returns key as a float, or 0.
func (s *Settings) Float(key string) float64 {
	v, _ := s.get(key)
	return cast.ToFloat64(v)
}

// Bool returns key as a bool, or false.
func (s *Settings) Bool(key string) bool {
	v, _ := s.get(key)
	return cast.ToBool(v)
}

// String returns key as a string, or "".
func (s *Settings) String(key string) string {
	v, _ := s.get(key)
	return cast.ToString(v)
}

// Strings returns key as a string list, or nil.
func (s *Settings) Strings(key string) []string {
	v, ok := s.get(key)
	if !ok || v == nil {
		return nil
	}
	return cast.ToStringSlice(v)
}

// SetInt stores an integer.
func (s *Settings) SetInt(key string, v int64) { s.values[key] = v }

// SetFloat stores a float.
func (s *Settings) SetFloat(key string, v float64) { s.values[key] = v }

// SetBool stores a bool.
func (s *Settings) SetBool(key string, v bool) { s.values[key] = v }

// SetString stores a string.
func (s *Settings) SetString(key string, v string) { s.values[key] = v }

// SetStrings stores a copy of a string list.
func (s *Settings) SetStrings(key string, v []string) {
	s.values[key] = append([]string(nil), v...)
}

// SetDefault sets the value returned for key while it has no explicit value.
func (s *Settings) SetDefault(key string, v any) { s.defaults[key] = v }

// Values returns a copy of the explicit values (defaults excluded).
func (s *Settings) Values() map[string]any {
	return maps.Clone(s.values)
}

// Apply copies every explicit value of o into s.
func (s *Settings) Apply(o *Settings) {
	maps.Copy(s.values, o.values)
}

// LoadFrom merges the values persisted under scope into s.
func (s *Settings) LoadFrom(store SettingsStore, scope string) error {
	values, err := store.Load(scope)
	if err != nil {
		return fmt.Errorf("settings: load %q: %w", scope, err)
	}
	maps.Copy(s.values, values)
	return nil
}

// SaveTo persists the explicit values of s under scope.
func (s *Settings) SaveTo(store SettingsStore, scope string) error {
	if err := store.Save(scope, s.Values()); err != nil {
		return fmt.Errorf("settings: save %q: %w", scope, err)
	}
	return nil
}
