package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/relayerproxy/client/relayer"
)

func TestInitConfigDefaults(t *testing.T) {
	data := `
auth_service_addr: auth.relayer.example:443
backend_addr: backend.relayer.example:443
`
	cfg, err := InitConfig(bytes.NewBufferString(data))
	if err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	want := relayer.Config{
		AuthServiceAddr:           "auth.relayer.example:443",
		BackendAddr:               "backend.relayer.example:443",
		ExpectedHeartbeatInterval: 2 * time.Second,
		OldestAllowedHeartbeat:    10 * time.Second,
		TrustPackets:              false,
	}
	if cfg != want {
		t.Errorf("InitConfig() = %+v, want %+v", cfg, want)
	}
}

func TestInitConfigOverrides(t *testing.T) {
	data := `
auth_service_addr: auth.relayer.example:443
backend_addr: backend.relayer.example:443
expected_heartbeat_interval: 5s
oldest_allowed_heartbeat: 30s
trust_packets: true
`
	cfg, err := InitConfig(bytes.NewBufferString(data))
	if err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	want := relayer.Config{
		AuthServiceAddr:           "auth.relayer.example:443",
		BackendAddr:               "backend.relayer.example:443",
		ExpectedHeartbeatInterval: 5 * time.Second,
		OldestAllowedHeartbeat:    30 * time.Second,
		TrustPackets:              true,
	}
	if cfg != want {
		t.Errorf("InitConfig() = %+v, want %+v", cfg, want)
	}
}

func TestInitConfigRejectsUnknownKey(t *testing.T) {
	data := `
auth_service_addr: auth.relayer.example:443
backend_addr: backend.relayer.example:443
bogus_key: true
`
	if _, err := InitConfig(bytes.NewBufferString(data)); err == nil {
		t.Fatal("InitConfig: expected error for unrecognized key, got nil")
	}
}

func TestInitConfigRejectsMissingAddrs(t *testing.T) {
	data := `
expected_heartbeat_interval: 5s
`
	if _, err := InitConfig(bytes.NewBufferString(data)); err == nil {
		t.Fatal("InitConfig: expected validation error for missing addresses, got nil")
	}
}

func TestInitConfigRejectsBadDuration(t *testing.T) {
	data := `
auth_service_addr: auth.relayer.example:443
backend_addr: backend.relayer.example:443
expected_heartbeat_interval: not-a-duration
`
	if _, err := InitConfig(bytes.NewBufferString(data)); err == nil {
		t.Fatal("InitConfig: expected error for malformed duration, got nil")
	}
}
