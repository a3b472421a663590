// Package relay delivers lock-controller commands through an upstream
// relay, either a Blynk-style HTTP cloud relay or a local MQTT broker.
//
// Commands are fire-and-forget: a send either reaches the relay within
// the configured timeout or fails with ErrSendFailed. The relay
// acknowledges receipt only - whether the controller acted on the
// command is reported later through its own callback, so no retry or
// delivery tracking happens here.
package relay
