package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for identity persistence.
type Repository interface {
	Create(ctx context.Context, identity *Identity) error
	GetByBiometricID(ctx context.Context, biometricID string) (*Identity, error)
	List(ctx context.Context) ([]*Identity, error)
	Search(ctx context.Context, name string) ([]*Identity, error)
	Delete(ctx context.Context, biometricID string) error
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewRepository creates a new SQLite-backed identity repository.
func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Create inserts a new identity. The ID is generated if empty.
// A duplicate biometric id maps to ErrBiometricIDExists.
func (r *SQLiteRepository) Create(ctx context.Context, identity *Identity) error {
	if identity.ID == "" {
		identity.ID = "idn-" + uuid.NewString()[:8]
	}

	now := time.Now().UTC().Truncate(time.Second)
	identity.CreatedAt = now

	var imageRef any
	if identity.ImageRef != "" {
		imageRef = identity.ImageRef
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO identities (id, display_name, biometric_id, image_ref, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		identity.ID, identity.DisplayName, identity.BiometricID, imageRef, now.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrBiometricIDExists
		}
		return fmt.Errorf("creating identity: %w", err)
	}

	return nil
}

// GetByBiometricID retrieves an identity by its biometric template id.
func (r *SQLiteRepository) GetByBiometricID(ctx context.Context, biometricID string) (*Identity, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, display_name, biometric_id, image_ref, created_at
		 FROM identities WHERE biometric_id = ?`,
		biometricID,
	)
	return scanIdentity(row)
}

// List returns all enrolled identities ordered by display name.
func (r *SQLiteRepository) List(ctx context.Context) ([]*Identity, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, display_name, biometric_id, image_ref, created_at
		 FROM identities ORDER BY display_name COLLATE NOCASE`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing identities: %w", err)
	}
	defer rows.Close()

	return collectIdentities(rows)
}

// Search returns identities whose display name contains the given
// fragment, case-insensitive, ordered by display name.
func (r *SQLiteRepository) Search(ctx context.Context, name string) ([]*Identity, error) {
	pattern := "%" + escapeLike(name) + "%"
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, display_name, biometric_id, image_ref, created_at
		 FROM identities
		 WHERE display_name LIKE ? ESCAPE '\'
		 ORDER BY display_name COLLATE NOCASE`,
		pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("searching identities: %w", err)
	}
	defer rows.Close()

	return collectIdentities(rows)
}

// Delete removes an identity by biometric id. Deleting a missing row
// returns ErrNotFound.
func (r *SQLiteRepository) Delete(ctx context.Context, biometricID string) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM identities WHERE biometric_id = ?", biometricID,
	)
	if err != nil {
		return fmt.Errorf("deleting identity: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func scanIdentity(row *sql.Row) (*Identity, error) {
	var i Identity
	var imageRef sql.NullString
	var createdAt string
	if err := row.Scan(&i.ID, &i.DisplayName, &i.BiometricID, &imageRef, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning identity: %w", err)
	}
	i.ImageRef = imageRef.String
	i.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled
	return &i, nil
}

func collectIdentities(rows *sql.Rows) ([]*Identity, error) {
	identities := []*Identity{}
	for rows.Next() {
		var i Identity
		var imageRef sql.NullString
		var createdAt string
		if err := rows.Scan(&i.ID, &i.DisplayName, &i.BiometricID, &imageRef, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning identity: %w", err)
		}
		i.ImageRef = imageRef.String
		i.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled
		identities = append(identities, &i)
	}
	return identities, rows.Err()
}

// escapeLike escapes LIKE metacharacters in user-supplied search input.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// isUniqueViolation checks if a SQLite error is a UNIQUE constraint violation.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
