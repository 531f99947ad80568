package storage

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// New opens a SQLite database connection at the given path.
// It enables foreign keys and sets connection pool settings.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys (disabled by default in SQLite)
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate runs database migrations to create the required tables.
// It is idempotent and can be run multiple times safely.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS notes (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL DEFAULT '',
			summary TEXT,
			key_points TEXT,
			summary_tokens_used INTEGER,
			summary_generated_at DATETIME,
			embedding BLOB,
			embedding_model TEXT,
			embedding_generated_at DATETIME,
			topics TEXT,
			topics_tokens_used INTEGER,
			topics_generated_at DATETIME,
			transcription_job_id TEXT,
			transcription_status TEXT NOT NULL DEFAULT 'not_started',
			transcription_storage_key TEXT,
			transcription_confidence REAL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE INDEX IF NOT EXISTS idx_notes_user_id ON notes(user_id);`,
		`CREATE TABLE IF NOT EXISTS tags (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			color TEXT NOT NULL DEFAULT '#888888',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (user_id, name)
		);`,
		`CREATE TABLE IF NOT EXISTS note_tags (
			note_id TEXT NOT NULL,
			tag_id TEXT NOT NULL,
			PRIMARY KEY (note_id, tag_id),
			FOREIGN KEY (note_id) REFERENCES notes(id) ON DELETE CASCADE,
			FOREIGN KEY (tag_id) REFERENCES tags(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS usage_counters (
			user_id TEXT PRIMARY KEY,
			plan TEXT NOT NULL DEFAULT 'free',
			notes_used INTEGER NOT NULL DEFAULT 0,
			summaries_used INTEGER NOT NULL DEFAULT 0,
			transcriptions_used INTEGER NOT NULL DEFAULT 0,
			screenshots_used INTEGER NOT NULL DEFAULT 0,
			embeddings_used INTEGER NOT NULL DEFAULT 0,
			period_month INTEGER NOT NULL,
			period_year INTEGER NOT NULL
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

// parseTimestamp parses a SQLite DATETIME string, trying the default
// SQLite format first and RFC3339 as a fallback.
func parseTimestamp(raw string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04:05", raw)
	if err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
