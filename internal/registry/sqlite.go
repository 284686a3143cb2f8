package registry

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLite is a local registry backed by a SQLite database. It serves offline
// runs, seeding, and tests; the write semantics mirror the Firestore
// backend exactly.
type SQLite struct {
	db   *sql.DB
	path string
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS entities (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    fields_json TEXT NOT NULL DEFAULT '{}'
);
`

// OpenSQLite initializes or connects to a registry database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure registry directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open registry db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply registry schema: %w", err)
	}

	return &SQLite{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *SQLite) Path() string {
	return s.path
}

// ListAll returns every entity ordered by insertion (rowid). That order is
// the tie-break order for best-match selection, so it must stay stable
// across calls.
func (s *SQLite) ListAll(ctx context.Context) ([]Entity, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, fields_json FROM entities ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list entities: %w", err)
	}
	defer rows.Close()

	var entities []Entity
	for rows.Next() {
		var id, name, fieldsJSON string
		if err := rows.Scan(&id, &name, &fieldsJSON); err != nil {
			return nil, fmt.Errorf("scan entity: %w", err)
		}
		fields := map[string]any{}
		if err := json.Unmarshal([]byte(fieldsJSON), &fields); err != nil {
			return nil, fmt.Errorf("decode fields for %s: %w", id, err)
		}
		if _, ok := fields["name"]; !ok {
			fields["name"] = name
		}
		entities = append(entities, Entity{ID: id, Name: name, Fields: fields})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entities: %w", err)
	}
	return entities, nil
}

// Add inserts a new entity with a generated id and returns it.
func (s *SQLite) Add(ctx context.Context, name string, fields map[string]any) (Entity, error) {
	if fields == nil {
		fields = map[string]any{}
	}
	fields["name"] = name

	id := uuid.NewString()
	encoded, err := json.Marshal(fields)
	if err != nil {
		return Entity{}, fmt.Errorf("encode fields: %w", err)
	}
	if _, err := s.db.ExecContext(
		ctx,
		`INSERT INTO entities (id, name, fields_json) VALUES (?, ?, ?)`,
		id, name, string(encoded),
	); err != nil {
		return Entity{}, fmt.Errorf("insert entity: %w", err)
	}
	return Entity{ID: id, Name: name, Fields: fields}, nil
}

// MergeField overlays updates onto the named mapping field of an entity,
// treating a missing field as an empty mapping.
func (s *SQLite) MergeField(ctx context.Context, id, field string, updates map[string]any) error {
	fields, err := s.loadFields(ctx, id)
	if err != nil {
		return err
	}

	existing, _ := fields[field].(map[string]any)
	merged := make(map[string]any, len(existing)+len(updates))
	for key, value := range existing {
		merged[key] = value
	}
	for key, value := range updates {
		merged[key] = value
	}
	fields[field] = merged

	return s.storeFields(ctx, id, fields)
}

// SetFields overwrites the given top-level fields of an entity.
func (s *SQLite) SetFields(ctx context.Context, id string, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	fields, err := s.loadFields(ctx, id)
	if err != nil {
		return err
	}
	for key, value := range updates {
		fields[key] = value
	}
	return s.storeFields(ctx, id, fields)
}

func (s *SQLite) loadFields(ctx context.Context, id string) (map[string]any, error) {
	var fieldsJSON string
	err := s.db.QueryRowContext(ctx, `SELECT fields_json FROM entities WHERE id = ?`, id).Scan(&fieldsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load entity %s: %w", id, err)
	}

	fields := map[string]any{}
	if err := json.Unmarshal([]byte(fieldsJSON), &fields); err != nil {
		return nil, fmt.Errorf("decode fields for %s: %w", id, err)
	}
	return fields, nil
}

func (s *SQLite) storeFields(ctx context.Context, id string, fields map[string]any) error {
	encoded, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode fields for %s: %w", id, err)
	}

	name, _ := fields["name"].(string)
	if name != "" {
		_, err = s.db.ExecContext(ctx, `UPDATE entities SET fields_json = ?, name = ? WHERE id = ?`, string(encoded), name, id)
	} else {
		_, err = s.db.ExecContext(ctx, `UPDATE entities SET fields_json = ? WHERE id = ?`, string(encoded), id)
	}
	if err != nil {
		return fmt.Errorf("store fields for %s: %w", id, err)
	}
	return nil
}
