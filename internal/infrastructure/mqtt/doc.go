// Package mqtt provides MQTT client connectivity for doorsentry.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Command publishing with QoS guarantees
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// The back-end is publish-only on MQTT: commands flow out to the field
// device's command topic, while device-originated traffic (enrollment and
// access-event callbacks) arrives over HTTP.
package mqtt
