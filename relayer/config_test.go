package relayer

import (
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	valid := Config{
		AuthServiceAddr:           "auth:1000",
		BackendAddr:               "backend:1001",
		ExpectedHeartbeatInterval: time.Second,
		OldestAllowedHeartbeat:    5 * time.Second,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() on a valid config: %v", err)
	}

	cases := []struct {
		name string
		c    Config
	}{
		{"missing auth addr", Config{BackendAddr: "b", ExpectedHeartbeatInterval: 1, OldestAllowedHeartbeat: 1}},
		{"missing backend addr", Config{AuthServiceAddr: "a", ExpectedHeartbeatInterval: 1, OldestAllowedHeartbeat: 1}},
		{"zero heartbeat interval", Config{AuthServiceAddr: "a", BackendAddr: "b", OldestAllowedHeartbeat: 1}},
		{"zero oldest allowed", Config{AuthServiceAddr: "a", BackendAddr: "b", ExpectedHeartbeatInterval: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.c.Validate(); err == nil {
				t.Errorf("Validate() = nil, want error")
			}
		})
	}
}

func TestConfigWatchChanged(t *testing.T) {
	base := Config{AuthServiceAddr: "a", BackendAddr: "b", ExpectedHeartbeatInterval: time.Second, OldestAllowedHeartbeat: time.Second}
	w := NewConfigWatch(base)
	if w.Changed(base) {
		t.Error("Changed() = true for an identical config")
	}
	other := base
	other.TrustPackets = true
	if !w.Changed(other) {
		t.Error("Changed() = false for a different config")
	}
	w.Set(other)
	if w.Get() != other {
		t.Error("Get() did not return the config passed to Set()")
	}
}
