package identity

import (
	"errors"
	"time"
)

// Identity is an enrolled person: a display name bound to the biometric
// template id the lock controller assigned during capture.
//
// Rows are immutable: created only by the enrollment callback, removed
// only by the deletion coordinator, never updated.
type Identity struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	BiometricID string    `json:"biometric_id"`
	ImageRef    string    `json:"image_ref,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Sentinel errors for identity operations.
var (
	ErrNameRequired        = errors.New("display name is required")
	ErrBiometricIDRequired = errors.New("biometric id is required")
	ErrBiometricIDExists   = errors.New("biometric id already enrolled")
	ErrNotFound            = errors.New("identity not found")
)
