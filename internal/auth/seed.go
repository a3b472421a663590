package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
)

// seedPasswordBytes is the number of random bytes for the seed admin password.
const seedPasswordBytes = 16

// seedUsername is the username of the first-boot admin account.
const seedUsername = "admin"

// SeedAdmin creates the initial admin account on first boot if no admins
// exist. The generated password is returned for one-time display - it must
// be changed immediately. Returns an empty string if seeding was skipped.
func SeedAdmin(ctx context.Context, repo AdminRepository, logger *slog.Logger) (string, error) {
	count, err := repo.Count(ctx)
	if err != nil {
		return "", fmt.Errorf("checking admin count: %w", err)
	}

	if count > 0 {
		logger.Info("admin accounts exist, skipping seed")
		return "", nil
	}

	passwordBytes := make([]byte, seedPasswordBytes)
	if _, err := rand.Read(passwordBytes); err != nil {
		return "", fmt.Errorf("generating seed password: %w", err)
	}
	password := hex.EncodeToString(passwordBytes)

	hash, err := HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hashing seed password: %w", err)
	}

	admin := &Admin{
		Username:     seedUsername,
		PasswordHash: hash,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return "", fmt.Errorf("creating seed admin: %w", err)
	}

	logger.Info("seed admin created", "username", seedUsername, "admin_id", admin.ID)
	return password, nil
}
