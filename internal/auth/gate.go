package auth

import (
	"crypto/subtle"
	"errors"
)

// Errors returned by the callback secret gate.
var (
	// ErrSecretNotConfigured means the expected secret is empty or unset.
	// This is a server-side fault: an unconfigured gate must fail closed,
	// never silently allow.
	ErrSecretNotConfigured = errors.New("callback secret not configured")

	// ErrSecretMismatch means the caller presented a missing or wrong secret.
	ErrSecretMismatch = errors.New("invalid callback secret")
)

// VerifyCallbackSecret checks a device-presented secret against the
// configured expected value.
//
// The comparison is constant-time: the secret is long-lived and shared
// across every field call, so leaking match length through timing would
// compound over many requests.
//
// Parameters:
//   - candidate: The secret presented by the caller (X-Callback-Secret header)
//   - expected: The configured shared secret
//
// Returns:
//   - error: nil if the secret matches, ErrSecretNotConfigured or
//     ErrSecretMismatch otherwise
func VerifyCallbackSecret(candidate, expected string) error {
	if expected == "" {
		return ErrSecretNotConfigured
	}
	if candidate == "" {
		return ErrSecretMismatch
	}
	if subtle.ConstantTimeCompare([]byte(candidate), []byte(expected)) != 1 {
		return ErrSecretMismatch
	}
	return nil
}
