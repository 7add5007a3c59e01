package relayer

import (
	"testing"

	"github.com/relayerproxy/client/identity"
)

func TestIdentityWatchChanged(t *testing.T) {
	handshake, err := identity.New()
	if err != nil {
		t.Fatalf("identity.New() error = %v", err)
	}
	w := NewIdentityWatch(handshake)
	if w.Changed(handshake) {
		t.Error("Changed() = true for the identity it was seeded with")
	}

	rotated, err := identity.New()
	if err != nil {
		t.Fatalf("identity.New() error = %v", err)
	}
	w.Set(rotated)
	if !w.Changed(handshake) {
		t.Error("Changed() = false after the watch was rotated to a different identity")
	}
	if w.Get() != rotated {
		t.Error("Get() did not return the identity passed to Set()")
	}
}
