package identity

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/doorsentry/core/internal/relay"
)

// DeleteIdentity revokes an enrolled identity.
//
// Order matters: the lookup happens before any side effect, so an
// unknown biometric id returns ErrNotFound without touching the
// controller. The controller notify is best-effort - a relay failure
// is logged and swallowed, and the row is deleted regardless. The
// prior record is returned so callers can clean up external artifacts
// such as the captured image.
func (c *Coordinator) DeleteIdentity(ctx context.Context, biometricID string) (*Identity, error) {
	biometricID = strings.TrimSpace(biometricID)
	if biometricID == "" {
		return nil, ErrBiometricIDRequired
	}

	existing, err := c.repo.GetByBiometricID(ctx, biometricID)
	if err != nil {
		return nil, err
	}

	cmd := relay.Command{Op: relay.OpDelete, Arg: biometricID}
	if err := c.emitter.Send(ctx, cmd); err != nil {
		// The controller may keep a stale template until it reconnects;
		// the store must not keep a revoked identity for the same reason.
		c.logger.Warn("delete notify failed, removing record anyway",
			"biometric_id", biometricID,
			slog.Any("error", err),
		)
	}

	if err := c.repo.Delete(ctx, biometricID); err != nil {
		return nil, fmt.Errorf("deleting identity: %w", err)
	}

	c.logger.Info("identity deleted",
		"identity_id", existing.ID,
		"biometric_id", biometricID,
	)
	return existing, nil
}
