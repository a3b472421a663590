package relay

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/doorsentry/core/internal/infrastructure/config"
)

// HTTPEmitter sends commands to a cloud relay over its pin-update HTTP API.
//
// The relay exposes virtual pins; writing "OP:arg" to the configured pin
// forwards the string to the lock controller. The request is a plain GET:
//
//	{base}/update?token={token}&{pin}={OP:arg}
type HTTPEmitter struct {
	baseURL string
	token   string
	pin     string
	client  *http.Client
	logger  *slog.Logger
}

// NewHTTPEmitter creates an emitter for the configured cloud relay.
// Missing credentials are a fatal configuration error, not a silent no-op:
// a deployment without relay access cannot enroll or delete.
func NewHTTPEmitter(cfg config.RelayHTTPConfig, logger *slog.Logger) (*HTTPEmitter, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("relay base URL not configured")
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("relay token not configured")
	}

	pin := cfg.Pin
	if pin == "" {
		pin = "V1"
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &HTTPEmitter{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		pin:     pin,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}, nil
}

// Send writes the encoded command to the relay pin. A non-2xx status or
// any transport failure is wrapped in ErrSendFailed; the response body
// is drained and discarded.
func (e *HTTPEmitter) Send(ctx context.Context, cmd Command) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	query := url.Values{}
	query.Set("token", e.token)
	query.Set(e.pin, cmd.Encode())
	endpoint := e.baseURL + "/update?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: building request: %w", ErrSendFailed, err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body) //nolint:errcheck // drained for connection reuse

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: relay returned status %d", ErrSendFailed, resp.StatusCode)
	}

	e.logger.Info("relay command sent", "op", string(cmd.Op), "transport", "http")
	return nil
}
