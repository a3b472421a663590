package mqtt

import (
	"strings"
	"testing"

	"github.com/doorsentry/core/internal/infrastructure/config"
)

func TestTopics_DeviceCommand(t *testing.T) {
	got := Topics{}.DeviceCommand("door-001")
	want := "doorsentry/command/door-001"
	if got != want {
		t.Errorf("DeviceCommand() = %q, want %q", got, want)
	}
}

func TestTopics_SystemStatus(t *testing.T) {
	got := Topics{}.SystemStatus()
	want := "doorsentry/system/status"
	if got != want {
		t.Errorf("SystemStatus() = %q, want %q", got, want)
	}
}

func TestBuildClientOptions(t *testing.T) {
	cfg := config.MQTTConfig{
		Broker: config.MQTTBrokerConfig{
			Host:     "broker.local",
			Port:     1883,
			ClientID: "doorsentry-test",
		},
		Auth: config.MQTTAuthConfig{
			Username: "backend",
			Password: "secret",
		},
		QoS: 1,
		Reconnect: config.MQTTReconnectConfig{
			InitialDelay: 1,
			MaxDelay:     60,
		},
	}

	opts := buildClientOptions(cfg)

	if len(opts.Servers) != 1 {
		t.Fatalf("expected 1 broker, got %d", len(opts.Servers))
	}
	if got := opts.Servers[0].String(); got != "tcp://broker.local:1883" {
		t.Errorf("broker URL = %q, want tcp://broker.local:1883", got)
	}
	if opts.ClientID != "doorsentry-test" {
		t.Errorf("ClientID = %q, want doorsentry-test", opts.ClientID)
	}
	if opts.Username != "backend" {
		t.Errorf("Username = %q, want backend", opts.Username)
	}
}

func TestBuildClientOptions_TLS(t *testing.T) {
	cfg := config.MQTTConfig{
		Broker: config.MQTTBrokerConfig{
			Host: "broker.local",
			Port: 8883,
			TLS:  true,
		},
	}

	opts := buildClientOptions(cfg)

	if got := opts.Servers[0].Scheme; got != "ssl" {
		t.Errorf("scheme = %q, want ssl", got)
	}
	if opts.TLSConfig == nil {
		t.Error("TLSConfig should be set when TLS is enabled")
	}
}

func TestBuildStatusPayloads(t *testing.T) {
	online := buildOnlinePayload("doorsentry-core")
	if !strings.Contains(online, `"status":"online"`) {
		t.Errorf("online payload missing status: %s", online)
	}
	if !strings.Contains(online, `"client_id":"doorsentry-core"`) {
		t.Errorf("online payload missing client_id: %s", online)
	}

	offline := buildOfflinePayload("doorsentry-core")
	if !strings.Contains(offline, `"reason":"graceful_shutdown"`) {
		t.Errorf("offline payload missing reason: %s", offline)
	}
}
