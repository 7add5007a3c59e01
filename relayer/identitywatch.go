package relayer

import (
	"bytes"
	"sync"

	"github.com/relayerproxy/client/identity"
)

// IdentityWatch is a mutex-guarded cell holding the identity the validator
// process currently reports as its own (the Go analogue of cluster_info's
// notion of "who am I"). It is seeded with the identity used at handshake
// time and is written by whatever surface tracks the validator's identity
// file (an operator rotating a keypair, a file watcher); StreamConsumer
// reads it on every metrics tick so an identity rotated out from under a
// running session is noticed without a restart. The pattern mirrors
// ConfigWatch: the whole value is replaced atomically, never mutated in
// place, so readers never observe a half-updated identity.
type IdentityWatch struct {
	mu      sync.Mutex
	current *identity.Identity
}

// NewIdentityWatch creates a watch seeded with the given initial identity.
func NewIdentityWatch(initial *identity.Identity) *IdentityWatch {
	return &IdentityWatch{current: initial}
}

// Get returns the current identity.
func (w *IdentityWatch) Get() *identity.Identity {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Set replaces the current identity.
func (w *IdentityWatch) Set(id *identity.Identity) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.current = id
}

// Changed reports whether the watch's current identity's public key
// differs from handshake's, i.e. whether the validator identity has
// rotated since the session authenticated.
func (w *IdentityWatch) Changed(handshake *identity.Identity) bool {
	current := w.Get()
	if current == handshake {
		return false
	}
	if current == nil || handshake == nil {
		return current != handshake
	}
	return !bytes.Equal(current.PublicKey(), handshake.PublicKey())
}
