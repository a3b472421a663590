package identity

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/doorsentry/core/internal/relay"
)

// Coordinator runs the identity lifecycle: enrollment's two legs and
// best-effort deletion.
type Coordinator struct {
	repo    Repository
	emitter relay.Emitter
	logger  *slog.Logger
}

// NewCoordinator creates a coordinator over the given store and relay.
func NewCoordinator(repo Repository, emitter relay.Emitter, logger *slog.Logger) *Coordinator {
	return &Coordinator{repo: repo, emitter: emitter, logger: logger}
}

// StartEnrollment triggers biometric capture on the lock controller for
// the named person. It records nothing: the identity only exists once
// the controller reports success through CompleteEnrollment.
//
// A relay failure is returned to the caller so the admin can retry;
// by then no state has been created anywhere.
func (c *Coordinator) StartEnrollment(ctx context.Context, displayName string) error {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return ErrNameRequired
	}

	cmd := relay.Command{Op: relay.OpEnroll, Arg: displayName}
	if err := c.emitter.Send(ctx, cmd); err != nil {
		return fmt.Errorf("triggering enrollment: %w", err)
	}

	c.logger.Info("enrollment triggered", "display_name", displayName)
	return nil
}

// CompleteEnrollment records a controller-reported capture result as a
// new identity. This is the only code path that creates identities.
//
// There is no correlation with StartEnrollment: the controller is
// trusted to report captures it actually performed. A duplicate
// biometric id is a conflict (ErrBiometricIDExists), surfaced so the
// controller's report is never silently dropped.
func (c *Coordinator) CompleteEnrollment(ctx context.Context, displayName, biometricID, imageRef string) (*Identity, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, ErrNameRequired
	}
	biometricID = strings.TrimSpace(biometricID)
	if biometricID == "" {
		return nil, ErrBiometricIDRequired
	}

	identity := &Identity{
		DisplayName: displayName,
		BiometricID: biometricID,
		ImageRef:    strings.TrimSpace(imageRef),
	}
	if err := c.repo.Create(ctx, identity); err != nil {
		return nil, err
	}

	c.logger.Info("enrollment completed",
		"identity_id", identity.ID,
		"biometric_id", biometricID,
	)
	return identity, nil
}
