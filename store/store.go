// Package store provides backends for persisting motion settings: an
// in-memory map, a YAML file and a SQLite database. Each backend keeps one
// key/value map per scope (a controller or transition name) and satisfies
// motion.SettingsStore.
package store

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
)

// Store persists settings maps by scope.
type Store interface {
	// Load returns the values saved under scope. An unknown scope yields an
	// empty map and no error.
	Load(scope string) (map[string]any, error)
	// Save replaces the values saved under scope.
	Save(scope string, values map[string]any) error
	// Delete removes a scope. Unknown scopes are ignored.
	Delete(scope string) error
	// Scopes lists the saved scopes in sorted order.
	Scopes() ([]string, error)
	Close() error
}

// Driver names accepted by Open.
const (
	DriverMemory = "memory"
	DriverYAML   = "yaml"
	DriverSQLite = "sqlite"
)

// ErrUnknownDriver is returned by Open for unsupported driver names.
var ErrUnknownDriver = errors.New("store: unknown driver")

// Open opens the store selected by driver. path is ignored by the memory
// driver and required by the others.
func Open(driver, path string) (Store, error) {
	switch driver {
	case DriverMemory, "":
		return NewMemory(), nil
	case DriverYAML:
		return OpenYAML(path)
	case DriverSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

// expandPath resolves a leading ~ and creates the parent directory.
func expandPath(path string) (string, error) {
	if path == "" {
		return "", errors.New("store: empty path")
	}
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("store: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("store: cannot create directory %s: %w", dir, err)
	}
	return path, nil
}

// cloneValues copies a settings map one level deep, including string lists.
func cloneValues(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		switch v := v.(type) {
		case []string:
			out[k] = append([]string(nil), v...)
		case []any:
			out[k] = append([]any(nil), v...)
		case map[string]any:
			out[k] = maps.Clone(v)
		default:
			out[k] = v
		}
	}
	return out
}
