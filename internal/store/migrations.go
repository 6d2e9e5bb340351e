package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means version 0 (fresh database).
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}

// migrateV1 creates all initial tables and indexes.
func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			taken_at TEXT NOT NULL,
			source   TEXT NOT NULL,
			page_url TEXT,
			version  TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS metric_values (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id       INTEGER NOT NULL REFERENCES runs(id),
			metric_name  TEXT NOT NULL,
			metric_value REAL NOT NULL,
			rating       TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS interactions (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id         INTEGER NOT NULL REFERENCES runs(id),
			interaction_id TEXT NOT NULL,
			kind           TEXT NOT NULL,
			latency        REAL NOT NULL,
			rating         TEXT NOT NULL,
			target         TEXT,
			start_time     REAL NOT NULL,
			input_delay    REAL NOT NULL,
			processing     REAL NOT NULL,
			presentation   REAL NOT NULL,
			dominant_event TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS issues (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id       INTEGER NOT NULL REFERENCES runs(id),
			category     TEXT NOT NULL,
			element      TEXT,
			contribution REAL NOT NULL,
			suggestion   TEXT NOT NULL,
			timestamp    REAL NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS script_costs (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id         INTEGER NOT NULL REFERENCES runs(id),
			url            TEXT NOT NULL,
			total_duration REAL NOT NULL,
			occurrences    INTEGER NOT NULL,
			third_party    BOOLEAN NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_metric_values_run ON metric_values(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_run ON interactions(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_issues_run ON issues(run_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.conn.Exec(stmt); err != nil {
			return err
		}
	}

	if _, err := db.conn.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := db.conn.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
		return err
	}

	return nil
}
