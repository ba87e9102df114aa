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
		`CREATE TABLE IF NOT EXISTS check_runs (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			checked_at    TEXT NOT NULL,
			fingerprint   TEXT NOT NULL,
			text_length   INTEGER NOT NULL,
			total_issues  INTEGER NOT NULL,
			dropped       INTEGER NOT NULL DEFAULT 0,
			duration_ms   REAL NOT NULL,
			from_cache    BOOLEAN NOT NULL,
			quality_score REAL NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_check_runs_fingerprint
			ON check_runs(fingerprint)`,

		`CREATE TABLE IF NOT EXISTS engine_health (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			recorded_at   TEXT NOT NULL,
			engine        TEXT NOT NULL,
			calls         INTEGER NOT NULL,
			errors        INTEGER NOT NULL,
			timeouts      INTEGER NOT NULL,
			avg_latency_ms REAL NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS user_words (
			word     TEXT PRIMARY KEY,
			language TEXT NOT NULL DEFAULT 'en-US',
			added_at TEXT NOT NULL
		)`,

		`DELETE FROM schema_version`,
	}

	for _, stmt := range statements {
		if _, err := db.conn.Exec(stmt); err != nil {
			return err
		}
	}

	_, err := db.conn.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion)
	return err
}
