package store

import (
	"database/sql"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLite is a Store backed by a SQLite database. Each scope is one row
// whose data column holds the settings map encoded as YAML.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite creates or opens the database at path and runs migrations.
func OpenSQLite(path string) (*SQLite, error) {
	path, err := expandPath(path)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: cannot open database: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: cannot connect to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migration failed: %w", err)
	}
	return s, nil
}

func (s *SQLite) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS settings (
			scope TEXT PRIMARY KEY,
			data TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load implements Store.
func (s *SQLite) Load(scope string) (map[string]any, error) {
	var data string
	err := s.db.QueryRow("SELECT data FROM settings WHERE scope = ?", scope).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: cannot load scope %q: %w", scope, err)
	}

	values := map[string]any{}
	if err := yaml.Unmarshal([]byte(data), &values); err != nil {
		return nil, fmt.Errorf("store: cannot decode scope %q: %w", scope, err)
	}
	return values, nil
}

// Save implements Store.
func (s *SQLite) Save(scope string, values map[string]any) error {
	data, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("store: cannot encode scope %q: %w", scope, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO settings (scope, data) VALUES (?, ?)
		 ON CONFLICT(scope) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
		scope, string(data),
	)
	if err != nil {
		return fmt.Errorf("store: cannot save scope %q: %w", scope, err)
	}
	return nil
}

// Delete implements Store.
func (s *SQLite) Delete(scope string) error {
	if _, err := s.db.Exec("DELETE FROM settings WHERE scope = ?", scope); err != nil {
		return fmt.Errorf("store: cannot delete scope %q: %w", scope, err)
	}
	return nil
}

// Scopes implements Store.
func (s *SQLite) Scopes() ([]string, error) {
	rows, err := s.db.Query("SELECT scope FROM settings ORDER BY scope")
	if err != nil {
		return nil, fmt.Errorf("store: cannot query scopes: %w", err)
	}
	defer rows.Close()

	var scopes []string
	for rows.Next() {
		var scope string
		if err := rows.Scan(&scope); err != nil {
			return nil, fmt.Errorf("store: cannot scan row: %w", err)
		}
		scopes = append(scopes, scope)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: row iteration error: %w", err)
	}
	return scopes, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
