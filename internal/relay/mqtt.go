package relay

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/doorsentry/core/internal/infrastructure/mqtt"
)

// MQTTEmitter publishes commands to the lock controller's command topic
// on a local broker. Used in deployments without a cloud relay.
type MQTTEmitter struct {
	client   *mqtt.Client
	deviceID string
	qos      byte
	logger   *slog.Logger
}

// NewMQTTEmitter creates an emitter that publishes to the device's
// command topic through an already-connected broker client. QoS above 0
// is safe: the controller tolerates duplicate commands (re-ENROLL
// restarts capture, re-DELETE is a no-op).
func NewMQTTEmitter(client *mqtt.Client, deviceID string, qos byte, logger *slog.Logger) (*MQTTEmitter, error) {
	if client == nil {
		return nil, fmt.Errorf("mqtt client not configured")
	}
	if deviceID == "" {
		return nil, fmt.Errorf("relay device id not configured")
	}
	if qos > 2 {
		return nil, fmt.Errorf("invalid mqtt qos %d", qos)
	}
	return &MQTTEmitter{client: client, deviceID: deviceID, qos: qos, logger: logger}, nil
}

// Send publishes the encoded command. The paho client buffers the publish
// until the broker acknowledges it or its internal timeout fires, so a
// nil return means handed to the broker, not executed by the controller.
func (e *MQTTEmitter) Send(ctx context.Context, cmd Command) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}

	topic := mqtt.Topics{}.DeviceCommand(e.deviceID)
	if err := e.client.PublishString(topic, cmd.Encode(), e.qos, false); err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}

	e.logger.Info("relay command sent", "op", string(cmd.Op), "transport", "mqtt", "device_id", e.deviceID)
	return nil
}
