package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeConfig writes a YAML config to a temp file and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

const validConfig = `
server:
  port: 9090
database:
  path: /tmp/doorsentry-test.db
relay:
  transport: http
  http:
    base_url: https://relay.example.com/external/api
    token: test-relay-token
    pin: V1
security:
  jwt:
    secret: 0123456789abcdef0123456789abcdef
  callback_secret: device-shared-secret
`

func TestLoad_Valid(t *testing.T) {
	path := writeConfig(t, validConfig)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Relay.HTTP.Token != "test-relay-token" {
		t.Errorf("Relay.HTTP.Token = %q, want %q", cfg.Relay.HTTP.Token, "test-relay-token")
	}
	// Defaults not present in the file should survive
	if cfg.Relay.HTTP.Timeout != 5 {
		t.Errorf("Relay.HTTP.Timeout = %d, want default 5", cfg.Relay.HTTP.Timeout)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want default info", cfg.Logging.Level)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("Load() should fail for missing file")
	}
}

func TestLoad_MissingRelayToken(t *testing.T) {
	path := writeConfig(t, `
database:
  path: /tmp/test.db
relay:
  transport: http
  http:
    base_url: https://relay.example.com
security:
  jwt:
    secret: 0123456789abcdef0123456789abcdef
  callback_secret: s3cret
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() should fail when relay token is missing")
	}
	if !strings.Contains(err.Error(), "relay.http.token") {
		t.Errorf("error = %v, want mention of relay.http.token", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, validConfig)

	t.Setenv("DOORSENTRY_RELAY_TOKEN", "env-token")
	t.Setenv("DOORSENTRY_DATABASE_PATH", "/tmp/env-override.db")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Relay.HTTP.Token != "env-token" {
		t.Errorf("Relay.HTTP.Token = %q, want env-token", cfg.Relay.HTTP.Token)
	}
	if cfg.Database.Path != "/tmp/env-override.db" {
		t.Errorf("Database.Path = %q, want /tmp/env-override.db", cfg.Database.Path)
	}
}

func TestValidate_ShortJWTSecret(t *testing.T) {
	path := writeConfig(t, `
database:
  path: /tmp/test.db
relay:
  transport: http
  http:
    base_url: https://relay.example.com
    token: tok
security:
  jwt:
    secret: short
  callback_secret: s3cret
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() should fail for short JWT secret")
	}
	if !strings.Contains(err.Error(), "at least 32 characters") {
		t.Errorf("error = %v, want mention of secret length", err)
	}
}

func TestValidate_MQTTTransport(t *testing.T) {
	path := writeConfig(t, `
database:
  path: /tmp/test.db
relay:
  transport: mqtt
  device_id: door-entrance
security:
  jwt:
    secret: 0123456789abcdef0123456789abcdef
  callback_secret: s3cret
`)

	t.Setenv("DOORSENTRY_RELAY_TOKEN", "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Relay.Transport != RelayTransportMQTT {
		t.Errorf("Relay.Transport = %q, want mqtt", cfg.Relay.Transport)
	}
	// HTTP relay credentials are not required for MQTT transport
	if cfg.Relay.HTTP.Token != "" {
		t.Errorf("Relay.HTTP.Token = %q, want empty", cfg.Relay.HTTP.Token)
	}
}

func TestValidate_UnknownTransport(t *testing.T) {
	path := writeConfig(t, `
database:
  path: /tmp/test.db
relay:
  transport: pigeon
security:
  jwt:
    secret: 0123456789abcdef0123456789abcdef
  callback_secret: s3cret
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() should fail for unknown relay transport")
	}
}
