package identity

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/doorsentry/core/internal/relay"
)

// testDB creates a temporary SQLite database with the identities table applied.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	f, err := os.CreateTemp("", "identity-test-*.db")
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
		CREATE TABLE identities (
			id TEXT PRIMARY KEY,
			display_name TEXT NOT NULL,
			biometric_id TEXT NOT NULL UNIQUE,
			image_ref TEXT,
			created_at TEXT NOT NULL
		) STRICT;

		CREATE UNIQUE INDEX idx_identities_biometric ON identities(biometric_id);
	`
	if _, err := db.Exec(migrationSQL); err != nil {
		t.Fatalf("applying identities migration: %v", err)
	}

	return db
}

// fakeEmitter records sent commands and optionally fails every send.
type fakeEmitter struct {
	sent []relay.Command
	err  error
}

func (f *fakeEmitter) Send(_ context.Context, cmd relay.Command) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, cmd)
	return nil
}

// countIdentities returns the number of rows in the identities table.
func countIdentities(t *testing.T, db *sql.DB) int {
	t.Helper()
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM identities").Scan(&count); err != nil {
		t.Fatalf("counting identities: %v", err)
	}
	return count
}
