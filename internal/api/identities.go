package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/doorsentry/core/internal/identity"
	"github.com/doorsentry/core/internal/relay"
)

// startEnrollmentRequest is the request body for POST /identities.
type startEnrollmentRequest struct {
	DisplayName string `json:"display_name"`
}

// enrollmentCallbackRequest is the request body for POST /identities/callback,
// sent by the lock controller after a successful capture.
type enrollmentCallbackRequest struct {
	DisplayName string `json:"display_name"`
	BiometricID string `json:"biometric_id"`
	ImageRef    string `json:"image_ref"`
}

// handleListIdentities returns all enrolled identities ordered by name.
func (s *Server) handleListIdentities(w http.ResponseWriter, r *http.Request) {
	identities, err := s.identities.List(r.Context())
	if err != nil {
		s.logger.Error("listing identities failed", "error", err)
		writeInternalError(w, "failed to list identities")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"identities": identities,
		"count":      len(identities),
	})
}

// handleSearchIdentities returns identities matching a partial name.
func (s *Server) handleSearchIdentities(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeBadRequest(w, "name query parameter is required")
		return
	}

	identities, err := s.identities.Search(r.Context(), name)
	if err != nil {
		s.logger.Error("searching identities failed", "error", err)
		writeInternalError(w, "failed to search identities")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"identities": identities,
		"count":      len(identities),
	})
}

// handleStartEnrollment triggers biometric capture on the lock controller.
// Returns 202: the trigger was delivered, the enrollment itself completes
// later through the device callback.
func (s *Server) handleStartEnrollment(w http.ResponseWriter, r *http.Request) {
	var req startEnrollmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	err := s.coordinator.StartEnrollment(r.Context(), req.DisplayName)
	switch {
	case errors.Is(err, identity.ErrNameRequired):
		writeValidationError(w, "display_name is required")
	case errors.Is(err, relay.ErrSendFailed):
		writeRelayError(w, "could not reach the lock controller relay")
	case err != nil:
		s.logger.Error("enrollment trigger failed", "error", err)
		writeInternalError(w, "failed to start enrollment")
	default:
		writeJSON(w, http.StatusAccepted, map[string]any{
			"status": "enrollment started",
		})
	}
}

// handleEnrollmentCallback records a controller-reported capture result.
func (s *Server) handleEnrollmentCallback(w http.ResponseWriter, r *http.Request) {
	var req enrollmentCallbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	created, err := s.coordinator.CompleteEnrollment(r.Context(), req.DisplayName, req.BiometricID, req.ImageRef)
	switch {
	case errors.Is(err, identity.ErrNameRequired):
		writeValidationError(w, "display_name is required")
	case errors.Is(err, identity.ErrBiometricIDRequired):
		writeValidationError(w, "biometric_id is required")
	case errors.Is(err, identity.ErrBiometricIDExists):
		writeConflict(w, "biometric id is already enrolled")
	case err != nil:
		s.logger.Error("enrollment callback failed", "error", err)
		writeInternalError(w, "failed to record enrollment")
	default:
		writeJSON(w, http.StatusCreated, created)
	}
}

// handleDeleteIdentity revokes an enrolled identity. The response includes
// the removed record so the dashboard can clean up the stored capture image.
func (s *Server) handleDeleteIdentity(w http.ResponseWriter, r *http.Request) {
	biometricID := chi.URLParam(r, "biometricID")

	removed, err := s.coordinator.DeleteIdentity(r.Context(), biometricID)
	switch {
	case errors.Is(err, identity.ErrBiometricIDRequired):
		writeValidationError(w, "biometric id is required")
	case errors.Is(err, identity.ErrNotFound):
		writeNotFound(w, "identity not found")
	case err != nil:
		s.logger.Error("identity deletion failed", "error", err)
		writeInternalError(w, "failed to delete identity")
	default:
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "deleted",
			"removed": removed,
		})
	}
}
