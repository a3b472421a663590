package event

import (
	"database/sql"
	"os"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// testDB creates a temporary SQLite database with the access_events table applied.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	f, err := os.CreateTemp("", "event-test-*.db")
	if err != nil {
		t.Fatalf("creating temp db: %v", err)
	}
	dbPath := f.Name()
	f.Close()
	t.Cleanup(func() { os.Remove(dbPath) })

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=ON")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	migrationSQL := `
		CREATE TABLE access_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			event_date TEXT NOT NULL,
			event_time TEXT NOT NULL,
			actor_name TEXT NOT NULL DEFAULT 'Unknown',
			biometric_id TEXT,
			note TEXT,
			created_at TEXT NOT NULL
		) STRICT;

		CREATE INDEX idx_access_events_date_time ON access_events(event_date DESC, event_time DESC);
	`
	if _, err := db.Exec(migrationSQL); err != nil {
		t.Fatalf("applying access_events migration: %v", err)
	}

	return db
}
