package relayer

import (
	"testing"
	"time"
)

func TestParseTPUSocket(t *testing.T) {
	addr, err := parseTPUSocket("tpu", "127.0.0.1:8001")
	if err != nil {
		t.Fatalf("parseTPUSocket() error = %v", err)
	}
	if addr.Port != 8001 || addr.IP.String() != "127.0.0.1" {
		t.Errorf("parseTPUSocket() = %+v, want 127.0.0.1:8001", addr)
	}

	if _, err := parseTPUSocket("tpu", ""); err == nil {
		t.Error("parseTPUSocket(\"\") want error, got nil")
	}
	if _, err := parseTPUSocket("tpu_fwd", "not-an-addr"); err == nil {
		t.Error("parseTPUSocket(malformed) want error, got nil")
	}
}

func TestHeartbeatGateExpiry(t *testing.T) {
	now := time.Now()
	g := newHeartbeatGate(now)
	if g.expired(now.Add(2*time.Second), 5*time.Second) {
		t.Error("expired() = true before the allowed window elapsed")
	}
	if !g.expired(now.Add(10*time.Second), 5*time.Second) {
		t.Error("expired() = false after the allowed window elapsed")
	}
	g.touch(now.Add(10 * time.Second))
	if g.expired(now.Add(12*time.Second), 5*time.Second) {
		t.Error("expired() = true shortly after touch()")
	}
}
