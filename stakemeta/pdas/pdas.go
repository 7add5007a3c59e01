// Package pdas derives the program-derived addresses the stake meta
// generator needs to locate the tip-payment program's config and balance
// accounts and a validator's per-epoch TipDistributionAccount, using the
// Solana find-program-address algorithm.
package pdas

import (
	"crypto/sha256"
	"encoding/binary"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"

	"github.com/relayerproxy/client/errors"
)

// Pubkey is a 32-byte Solana account address.
type Pubkey [32]byte

// pdaMarker is appended to every seed set before hashing, exactly as the
// Solana runtime does when deriving a program address.
const pdaMarker = "ProgramDerivedAddress"

// Well-known seeds for the tip-payment program's accounts, named the same
// way the on-chain tip-payment program's own CONFIG_ACCOUNT_SEED and
// TIP_ACCOUNT_SEED_0..7 constants are.
var (
	configAccountSeed = []byte("CONFIG_ACCOUNT")
	tipAccountSeeds   = [8][]byte{
		[]byte("TIP_ACCOUNT_0"),
		[]byte("TIP_ACCOUNT_1"),
		[]byte("TIP_ACCOUNT_2"),
		[]byte("TIP_ACCOUNT_3"),
		[]byte("TIP_ACCOUNT_4"),
		[]byte("TIP_ACCOUNT_5"),
		[]byte("TIP_ACCOUNT_6"),
		[]byte("TIP_ACCOUNT_7"),
	}
	tipDistributionAccountSeed = []byte("TIP_DISTRIBUTION_ACCOUNT")
	tipDistributionConfigSeed  = []byte("CONFIG_ACCOUNT")
)

// TipPaymentAddresses holds the tip-payment program's singleton config PDA
// and its 8 tip-collection PDAs, the Go equivalent of TipPaymentProgramInfo.
type TipPaymentAddresses struct {
	ConfigPDA Pubkey
	TipPDAs   [8]Pubkey
}

// DeriveTipPaymentAddresses derives the config account and the 8 tip
// accounts owned by the tip-payment program.
func DeriveTipPaymentAddresses(programID Pubkey) (TipPaymentAddresses, error) {
	const op = "pdas.DeriveTipPaymentAddresses"
	var out TipPaymentAddresses
	cfg, _, err := FindProgramAddress([][]byte{configAccountSeed}, programID)
	if err != nil {
		return out, errors.E(op, err)
	}
	out.ConfigPDA = cfg
	for i, seed := range tipAccountSeeds {
		pda, _, err := FindProgramAddress([][]byte{seed}, programID)
		if err != nil {
			return out, errors.E(op, err)
		}
		out.TipPDAs[i] = pda
	}
	return out, nil
}

// DeriveTipDistributionConfigAddress derives the tip-distribution program's
// singleton Config PDA.
func DeriveTipDistributionConfigAddress(programID Pubkey) (Pubkey, error) {
	const op = "pdas.DeriveTipDistributionConfigAddress"
	pda, _, err := FindProgramAddress([][]byte{tipDistributionConfigSeed}, programID)
	if err != nil {
		return Pubkey{}, errors.E(op, err)
	}
	return pda, nil
}

// DeriveTipDistributionAccountAddress derives a validator's
// TipDistributionAccount PDA for the given epoch.
func DeriveTipDistributionAccountAddress(programID, votePubkey Pubkey, epoch uint64) (Pubkey, uint8, error) {
	const op = "pdas.DeriveTipDistributionAccountAddress"
	epochBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(epochBytes, epoch)
	pda, bump, err := FindProgramAddress([][]byte{tipDistributionAccountSeed, votePubkey[:], epochBytes}, programID)
	if err != nil {
		return Pubkey{}, 0, errors.E(op, err)
	}
	return pda, bump, nil
}

// FindProgramAddress searches bump seeds from 255 down to 0 for the first
// hash of (seeds, bump, programID, pdaMarker) that does not decode as a
// valid point on the ed25519 curve, the same off-curve requirement the
// Solana runtime enforces so a PDA can never collide with a real keypair.
func FindProgramAddress(seeds [][]byte, programID Pubkey) (Pubkey, uint8, error) {
	const op = "pdas.FindProgramAddress"
	for bump := 255; bump >= 0; bump-- {
		sum := hashSeeds(seeds, byte(bump), programID)
		if !isOnCurve(sum) {
			var pda Pubkey
			copy(pda[:], sum)
			return pda, uint8(bump), nil
		}
	}
	return Pubkey{}, 0, errors.E(op, errors.Str("unable to find a viable program address bump"))
}

func hashSeeds(seeds [][]byte, bump byte, programID Pubkey) []byte {
	h := sha256.New()
	for _, s := range seeds {
		h.Write(s)
	}
	h.Write([]byte{bump})
	h.Write(programID[:])
	h.Write([]byte(pdaMarker))
	return h.Sum(nil)
}

// isOnCurve reports whether b decodes as a valid point on the ed25519
// curve. A PDA is only valid when this is false.
func isOnCurve(b []byte) bool {
	if len(b) != 32 {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}

// String returns the base58 encoding of the address.
func (p Pubkey) String() string {
	return base58.Encode(p[:])
}

// MarshalJSON encodes the address as a base58 JSON string, the conventional
// textual form for a Solana pubkey.
func (p Pubkey) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// PubkeyFromBase58 decodes a base58-encoded address.
func PubkeyFromBase58(s string) (Pubkey, error) {
	const op = "pdas.PubkeyFromBase58"
	var pk Pubkey
	b, err := base58.Decode(s)
	if err != nil {
		return pk, errors.E(op, err)
	}
	if len(b) != 32 {
		return pk, errors.E(op, errors.Errorf("pubkey %q decodes to %d bytes, want 32", s, len(b)))
	}
	copy(pk[:], b)
	return pk, nil
}
