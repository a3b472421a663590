package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id cost settings. Sized for the single-board host the service
// runs on: a login takes tens of milliseconds, which is fine for an
// admin dashboard with a handful of accounts.
const (
	argonTime    = 3
	argonMemory  = 64 * 1024 // KiB
	argonThreads = 1
	argonKeyLen  = 32
	argonSaltLen = 16
)

// HashPassword derives an Argon2id digest of password under a fresh
// random salt and returns it PHC-encoded, so the cost settings travel
// with the hash and can be raised later without invalidating stored
// credentials.
func HashPassword(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	digest := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	), nil
}

// VerifyPassword re-derives the digest from password using the salt and
// cost settings embedded in encodedHash and compares in constant time.
// A malformed or non-Argon2id hash is an error, not a mismatch.
func VerifyPassword(password, encodedHash string) (bool, error) {
	salt, digest, costs, err := decodePHC(encodedHash)
	if err != nil {
		return false, err
	}

	candidate := argon2.IDKey([]byte(password), salt, costs.time, costs.memory, costs.threads, uint32(len(digest))) //nolint:gosec // G115: digest length always fits uint32

	return subtle.ConstantTimeCompare(digest, candidate) == 1, nil
}

type phcCosts struct {
	time    uint32
	memory  uint32
	threads uint8
}

// decodePHC splits a PHC string into salt, digest and cost settings,
// rejecting anything that is not Argon2id.
func decodePHC(encoded string) (salt, digest []byte, costs phcCosts, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 { //nolint:mnd // PHC format has exactly 6 $-delimited parts
		return nil, nil, costs, fmt.Errorf("invalid PHC hash format")
	}

	if parts[1] != "argon2id" {
		return nil, nil, costs, fmt.Errorf("unsupported algorithm: %s", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil { //nolint:govet // shadow: err re-declared in nested scope
		return nil, nil, costs, fmt.Errorf("parsing version: %w", err)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &costs.memory, &costs.time, &costs.threads); err != nil { //nolint:govet // shadow: err re-declared in nested scope
		return nil, nil, costs, fmt.Errorf("parsing parameters: %w", err)
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, costs, fmt.Errorf("decoding salt: %w", err)
	}

	digest, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, costs, fmt.Errorf("decoding hash: %w", err)
	}

	return salt, digest, costs, nil
}
