package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AdminRepository defines the interface for admin account persistence.
type AdminRepository interface {
	Create(ctx context.Context, admin *Admin) error
	GetByUsername(ctx context.Context, username string) (*Admin, error)
	Count(ctx context.Context) (int, error)
}

// SQLiteAdminRepository implements AdminRepository using SQLite.
type SQLiteAdminRepository struct {
	db *sql.DB
}

// NewAdminRepository creates a new SQLite-backed admin repository.
func NewAdminRepository(db *sql.DB) *SQLiteAdminRepository {
	return &SQLiteAdminRepository{db: db}
}

// Create inserts a new admin account. The ID is generated if empty.
func (r *SQLiteAdminRepository) Create(ctx context.Context, admin *Admin) error {
	if admin.ID == "" {
		admin.ID = "adm-" + uuid.NewString()[:8]
	}

	now := time.Now().UTC().Truncate(time.Second)
	admin.CreatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO admins (id, username, password_hash, created_at)
		 VALUES (?, ?, ?, ?)`,
		admin.ID, admin.Username, admin.PasswordHash, now.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameExists
		}
		return fmt.Errorf("creating admin: %w", err)
	}

	return nil
}

// GetByUsername retrieves an admin by username.
func (r *SQLiteAdminRepository) GetByUsername(ctx context.Context, username string) (*Admin, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at FROM admins WHERE username = ?",
		username,
	)

	var a Admin
	var createdAt string
	if err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("scanning admin: %w", err)
	}

	a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled
	return &a, nil
}

// Count returns the total number of admin accounts.
func (r *SQLiteAdminRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM admins").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting admins: %w", err)
	}
	return count, nil
}

// isUniqueViolation checks if a SQLite error is a UNIQUE constraint violation.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
