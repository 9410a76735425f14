package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

func execAll(tx *sql.Tx, queries []string) error {
	for _, query := range queries {
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query '%s': %w", query, err)
		}
	}
	return nil
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			return execAll(tx, []string{
				`CREATE TABLE IF NOT EXISTS canonical_ingredients (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					category TEXT NOT NULL DEFAULT '',
					density REAL NOT NULL DEFAULT 0,
					density_group TEXT NOT NULL DEFAULT '',
					safe_conversions INTEGER NOT NULL DEFAULT 0,
					aliases TEXT NOT NULL DEFAULT '[]',
					groups_json TEXT NOT NULL DEFAULT '[]'
				)`,

				`CREATE TABLE IF NOT EXISTS recipes (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					category TEXT NOT NULL DEFAULT '',
					tags TEXT NOT NULL DEFAULT '[]',
					prep_seconds INTEGER NOT NULL DEFAULT 0,
					cook_seconds INTEGER NOT NULL DEFAULT 0,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS recipe_ingredients (
					recipe_id TEXT NOT NULL,
					position INTEGER NOT NULL,
					raw TEXT NOT NULL,
					canonical_id TEXT,
					quantity REAL,
					unit TEXT NOT NULL DEFAULT '',
					parsed TEXT,
					PRIMARY KEY (recipe_id, position),
					FOREIGN KEY (recipe_id) REFERENCES recipes(id) ON DELETE CASCADE
				)`,

				`CREATE TABLE IF NOT EXISTS inventory_items (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					canonical_id TEXT,
					quantity REAL NOT NULL DEFAULT 0,
					unit TEXT NOT NULL DEFAULT '',
					category TEXT NOT NULL DEFAULT '',
					location TEXT NOT NULL DEFAULT '',
					expires_at DATETIME,
					updated_at DATETIME NOT NULL
				)`,
			})
		},
	},
	{
		Version:     2,
		Description: "Track inventory version",
		Up: func(tx *sql.Tx) error {
			return execAll(tx, []string{
				`CREATE TABLE IF NOT EXISTS inventory_version (
					id INTEGER PRIMARY KEY CHECK (id = 1),
					version INTEGER NOT NULL
				)`,
				`INSERT OR IGNORE INTO inventory_version (id, version) VALUES (1, 0)`,
			})
		},
	},
	{
		Version:     3,
		Description: "Index inventory by canonical id and expiry",
		Up: func(tx *sql.Tx) error {
			return execAll(tx, []string{
				`CREATE INDEX IF NOT EXISTS idx_inventory_canonical_id ON inventory_items(canonical_id)`,
				`CREATE INDEX IF NOT EXISTS idx_inventory_expires_at ON inventory_items(expires_at)`,
			})
		},
	},
}

// SchemaVersion returns the database's current schema version.
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}

// Migrate brings the schema up to ExpectedSchemaVersion.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	currentVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	finalVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
