package mqtt

import "fmt"

// Topic prefixes for the doorsentry MQTT hierarchy.
//
// Commands to field devices use: doorsentry/command/{device_id}
// System status uses: doorsentry/system/status
const (
	// TopicPrefix is the base for all doorsentry topics.
	TopicPrefix = "doorsentry"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "doorsentry/system"
)

// Topics provides builders for doorsentry MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
type Topics struct{}

// DeviceCommand returns the topic for commands to a field device.
//
// Example: doorsentry/command/door-001
func (Topics) DeviceCommand(deviceID string) string {
	return fmt.Sprintf("%s/command/%s", TopicPrefix, deviceID)
}

// SystemStatus returns the back-end status topic.
//
// Example: doorsentry/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}
