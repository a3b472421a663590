package relay

import (
	"context"
	"errors"
)

// ErrSendFailed wraps any transport-level failure to hand a command to
// the relay: connection errors, timeouts, non-2xx responses.
var ErrSendFailed = errors.New("relay send failed")

// Emitter hands commands to the relay transport.
//
// Implementations must respect ctx and the transport's configured
// timeout, and must not retry: the caller decides what a failed
// send means for its own operation.
type Emitter interface {
	Send(ctx context.Context, cmd Command) error
}
