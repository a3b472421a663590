package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestAdminRepository_CreateAndGetByUsername(t *testing.T) {
	db := testDB(t)
	repo := NewAdminRepository(db)
	ctx := context.Background()

	hash, _ := HashPassword("password123")
	admin := &Admin{
		Username:     "gatekeeper",
		PasswordHash: hash,
	}

	if err := repo.Create(ctx, admin); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if admin.ID == "" {
		t.Fatal("Create() should generate an ID")
	}
	if !strings.HasPrefix(admin.ID, "adm-") {
		t.Errorf("ID = %q, want adm- prefix", admin.ID)
	}

	got, err := repo.GetByUsername(ctx, "gatekeeper")
	if err != nil {
		t.Fatalf("GetByUsername() error = %v", err)
	}

	if got.ID != admin.ID {
		t.Errorf("ID = %q, want %q", got.ID, admin.ID)
	}
	if got.Username != "gatekeeper" {
		t.Errorf("Username = %q, want %q", got.Username, "gatekeeper")
	}
	if got.PasswordHash == "" {
		t.Error("PasswordHash should be populated")
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be populated")
	}
}

func TestAdminRepository_GetByUsername_NotFound(t *testing.T) {
	db := testDB(t)
	repo := NewAdminRepository(db)

	_, err := repo.GetByUsername(context.Background(), "nonexistent")
	if !errors.Is(err, ErrAdminNotFound) {
		t.Errorf("error = %v, want ErrAdminNotFound", err)
	}
}

func TestAdminRepository_DuplicateUsername(t *testing.T) {
	db := testDB(t)
	repo := NewAdminRepository(db)
	ctx := context.Background()

	hash, _ := HashPassword("password123")
	if err := repo.Create(ctx, &Admin{Username: "duplicate", PasswordHash: hash}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	err := repo.Create(ctx, &Admin{Username: "duplicate", PasswordHash: hash})
	if !errors.Is(err, ErrUsernameExists) {
		t.Errorf("error = %v, want ErrUsernameExists", err)
	}
}

func TestAdminRepository_Count(t *testing.T) {
	db := testDB(t)
	repo := NewAdminRepository(db)
	ctx := context.Background()

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 0 {
		t.Errorf("Count() = %d, want 0", count)
	}

	hash, _ := HashPassword("password123")
	for _, name := range []string{"alpha", "beta"} {
		if err := repo.Create(ctx, &Admin{Username: name, PasswordHash: hash}); err != nil {
			t.Fatalf("Create(%s) error = %v", name, err)
		}
	}

	count, err = repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 2 {
		t.Errorf("Count() = %d, want 2", count)
	}
}
