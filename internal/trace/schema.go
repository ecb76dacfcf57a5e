// Package trace records per-tick simulation waveforms to SQLite.
package trace

import (
	"context"
	"database/sql"
	"fmt"
)

// SchemaVersion is the current schema version.
const SchemaVersion = 1

// schemaV1 is the initial schema for the trace database.
const schemaV1 = `
-- One row per simulation run
CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    mode TEXT NOT NULL,          -- 'rom' or 'hebbian'
    created_at TEXT NOT NULL
);

-- One row per tick: spike vectors as '0'/'1' strings, weights as JSON
CREATE TABLE IF NOT EXISTS ticks (
    run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    tick INTEGER NOT NULL,
    reset INTEGER NOT NULL DEFAULT 0,
    inputs TEXT NOT NULL,        -- layer-0 spike vector, e.g. '101'
    hidden TEXT NOT NULL,        -- layer-1 spike vector
    outputs TEXT NOT NULL,       -- layer-2 spike vector
    hidden_weights TEXT NOT NULL,  -- JSON [[w,w,w],...]
    output_weights TEXT NOT NULL,  -- JSON [[w,w,w],...]
    PRIMARY KEY (run_id, tick)
);
CREATE INDEX IF NOT EXISTS idx_ticks_run ON ticks(run_id);

-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);
`

// InitSchema initializes the database schema, creating tables if needed.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaV1); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	var version int
	err := db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err == sql.ErrNoRows {
		if _, err := db.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", SchemaVersion); err != nil {
			return fmt.Errorf("recording schema version: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if version != SchemaVersion {
		return fmt.Errorf("unsupported trace schema version %d (want %d)", version, SchemaVersion)
	}
	return nil
}
