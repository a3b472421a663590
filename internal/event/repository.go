package event

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Repository defines the interface for access event persistence.
type Repository interface {
	Insert(ctx context.Context, ev *AccessEvent) error
	List(ctx context.Context, from, to string) ([]*AccessEvent, error)
	FrequencyByActor(ctx context.Context, from, to string) ([]*ActorFrequency, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewRepository creates a new SQLite-backed event repository.
func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Insert appends an access event. No dedup: identical reports become
// identical rows.
func (r *SQLiteRepository) Insert(ctx context.Context, ev *AccessEvent) error {
	now := time.Now().UTC().Truncate(time.Second)
	ev.CreatedAt = now

	var biometricID, note any
	if ev.BiometricID != "" {
		biometricID = ev.BiometricID
	}
	if ev.Note != "" {
		note = ev.Note
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO access_events (event_date, event_time, actor_name, biometric_id, note, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		ev.Date, ev.Time, ev.ActorName, biometricID, note, now.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting access event: %w", err)
	}

	ev.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading event id: %w", err)
	}

	return nil
}

// List returns events newest-first, optionally bounded by an inclusive
// date range. Empty bounds are open-ended.
func (r *SQLiteRepository) List(ctx context.Context, from, to string) ([]*AccessEvent, error) {
	query := `SELECT id, event_date, event_time, actor_name, biometric_id, note, created_at
	          FROM access_events`
	where, args := dateRange(from, to)
	query += where + " ORDER BY event_date DESC, event_time DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing access events: %w", err)
	}
	defer rows.Close()

	events := []*AccessEvent{}
	for rows.Next() {
		var ev AccessEvent
		var biometricID, note sql.NullString
		var createdAt string
		if err := rows.Scan(&ev.ID, &ev.Date, &ev.Time, &ev.ActorName, &biometricID, &note, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning access event: %w", err)
		}
		ev.BiometricID = biometricID.String
		ev.Note = note.String
		ev.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled
		events = append(events, &ev)
	}
	return events, rows.Err()
}

// FrequencyByActor counts events per actor within the optional date
// range, most frequent first. The sentinel actor groups like any other
// name, so failed attempts surface as one aggregate line.
func (r *SQLiteRepository) FrequencyByActor(ctx context.Context, from, to string) ([]*ActorFrequency, error) {
	query := "SELECT actor_name, COUNT(*) AS n FROM access_events"
	where, args := dateRange(from, to)
	query += where + " GROUP BY actor_name ORDER BY n DESC, actor_name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("counting access events: %w", err)
	}
	defer rows.Close()

	freqs := []*ActorFrequency{}
	for rows.Next() {
		var f ActorFrequency
		if err := rows.Scan(&f.ActorName, &f.Count); err != nil {
			return nil, fmt.Errorf("scanning frequency row: %w", err)
		}
		freqs = append(freqs, &f)
	}
	return freqs, rows.Err()
}

// dateRange builds the WHERE clause for an optional inclusive date range.
func dateRange(from, to string) (string, []any) {
	clauses := []string{}
	args := []any{}
	if from != "" {
		clauses = append(clauses, "event_date >= ?")
		args = append(args, from)
	}
	if to != "" {
		clauses = append(clauses, "event_date <= ?")
		args = append(args, to)
	}
	if len(clauses) == 0 {
		return "", nil
	}
	where := " WHERE " + clauses[0]
	if len(clauses) == 2 {
		where += " AND " + clauses[1]
	}
	return where, args
}
