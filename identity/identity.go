// Package identity wraps the Ed25519 keypair a validator uses to prove who
// it is when it authenticates to a relayer: it signs the auth service's
// challenge and exposes the public key the relayer, and the rest of the
// client, compare against.
package identity

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"os"

	"github.com/mr-tron/base58"

	"github.com/relayerproxy/client/errors"
)

// Identity holds a validator's signing keypair.
type Identity struct {
	public  ed25519.PublicKey
	private ed25519.PrivateKey
}

// New generates a fresh random identity. Used by tests and by tooling that
// provisions a new validator keypair.
func New() (*Identity, error) {
	const op = "identity.New"
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, errors.E(op, err)
	}
	return &Identity{public: pub, private: priv}, nil
}

// FromPrivateKey wraps an existing 64-byte Ed25519 private key.
func FromPrivateKey(key ed25519.PrivateKey) (*Identity, error) {
	const op = "identity.FromPrivateKey"
	if len(key) != ed25519.PrivateKeySize {
		return nil, errors.E(op, errors.InvalidConfig, errors.Errorf("private key has %d bytes, want %d", len(key), ed25519.PrivateKeySize))
	}
	pub, ok := key.Public().(ed25519.PublicKey)
	if !ok {
		return nil, errors.E(op, errors.InvalidConfig, errors.Str("could not derive public key"))
	}
	return &Identity{public: pub, private: key}, nil
}

// solanaKeypairFile is the JSON array-of-bytes format used by validator
// keypair files: a 64-byte Ed25519 private key serialized as a JSON array
// of integers.
type solanaKeypairFile []byte

func (s *solanaKeypairFile) UnmarshalJSON(b []byte) error {
	var ints []byte
	var raw []int
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	ints = make([]byte, len(raw))
	for i, v := range raw {
		ints[i] = byte(v)
	}
	*s = ints
	return nil
}

// LoadFile reads a validator identity keypair file in the standard
// array-of-bytes JSON format and returns the wrapped Identity.
func LoadFile(path string) (*Identity, error) {
	const op = "identity.LoadFile"
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.E(op, errors.InvalidConfig, err)
	}
	var kp solanaKeypairFile
	if err := json.Unmarshal(data, &kp); err != nil {
		return nil, errors.E(op, errors.InvalidConfig, err)
	}
	return FromPrivateKey(ed25519.PrivateKey(kp))
}

// Sign signs msg with the identity's private key.
func (id *Identity) Sign(msg []byte) []byte {
	return ed25519.Sign(id.private, msg)
}

// PublicKey returns the identity's public key.
func (id *Identity) PublicKey() ed25519.PublicKey {
	return id.public
}

// String returns the base58 encoding of the public key, the conventional
// textual form of a Solana pubkey.
func (id *Identity) String() string {
	return base58.Encode(id.public)
}

// Verify reports whether sig is a valid signature of msg under pub.
func Verify(pub ed25519.PublicKey, msg, sig []byte) bool {
	if len(pub) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(pub, msg, sig)
}
