package store

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// YAML is a Store backed by one YAML document mapping scope names to their
// settings. Every Save rewrites the file through a temporary file and a
// rename, so a crash never leaves a truncated document.
type YAML struct {
	path   string
	scopes map[string]map[string]any
}

// OpenYAML opens the YAML store at path, creating its directory. A missing
// file is treated as an empty store and is created on the first Save.
func OpenYAML(path string) (*YAML, error) {
	path, err := expandPath(path)
	if err != nil {
		return nil, err
	}
	s := &YAML{path: path, scopes: make(map[string]map[string]any)}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("store: cannot read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s.scopes); err != nil {
		return nil, fmt.Errorf("store: cannot parse %s: %w", path, err)
	}
	if s.scopes == nil {
		s.scopes = make(map[string]map[string]any)
	}
	return s, nil
}

// Path returns the file backing the store.
func (s *YAML) Path() string { return s.path }

// Load implements Store.
func (s *YAML) Load(scope string) (map[string]any, error) {
	return cloneValues(s.scopes[scope]), nil
}

// Save implements Store.
func (s *YAML) Save(scope string, values map[string]any) error {
	s.scopes[scope] = cloneValues(values)
	return s.flush()
}

// Delete implements Store.
func (s *YAML) Delete(scope string) error {
	if _, ok := s.scopes[scope]; !ok {
		return nil
	}
	delete(s.scopes, scope)
	return s.flush()
}

// Scopes implements Store.
func (s *YAML) Scopes() ([]string, error) {
	return slices.Sorted(maps.Keys(s.scopes)), nil
}

// Close implements Store. Every Save is already on disk.
func (s *YAML) Close() error { return nil }

func (s *YAML) flush() error {
	data, err := yaml.Marshal(s.scopes)
	if err != nil {
		return fmt.Errorf("store: cannot encode settings: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("store: cannot create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("store: cannot write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store: cannot write %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("store: cannot replace %s: %w", s.path, err)
	}
	return nil
}
