package relay

import (
	"testing"

	"github.com/doorsentry/core/internal/infrastructure/mqtt"
)

func TestNewMQTTEmitter_Validation(t *testing.T) {
	client := &mqtt.Client{}

	cases := []struct {
		name     string
		client   *mqtt.Client
		deviceID string
		qos      byte
		wantErr  bool
	}{
		{"valid", client, "lock-front", 1, false},
		{"qos zero", client, "lock-front", 0, false},
		{"nil client", nil, "lock-front", 1, true},
		{"empty device id", client, "", 1, true},
		{"qos out of range", client, "lock-front", 3, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, err := NewMQTTEmitter(tc.client, tc.deviceID, tc.qos, nil)
			if tc.wantErr {
				if err == nil {
					t.Error("NewMQTTEmitter() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewMQTTEmitter() error = %v", err)
			}
			if e.qos != tc.qos {
				t.Errorf("qos = %d, want %d", e.qos, tc.qos)
			}
		})
	}
}
