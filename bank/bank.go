// Package bank declares the narrow read-only view of a frozen ledger
// snapshot that stakemeta.Generate needs. Loading that snapshot off disk is
// an external collaborator this package treats as out of scope; this
// interface is the seam a real snapshot loader implements and a test fake
// stands in for.
package bank

import "github.com/relayerproxy/client/stakemeta/pdas"

// Account is a minimal view of an on-chain account's stored state.
type Account struct {
	Lamports uint64
	Owner    pdas.Pubkey
	Data     []byte
}

// Delegation is one stake account's delegation to a vote account.
type Delegation struct {
	StakeAccount      pdas.Pubkey
	StakerPubkey      pdas.Pubkey
	WithdrawerPubkey  pdas.Pubkey
	VoterPubkey       pdas.Pubkey
	LamportsDelegated uint64
	// EffectiveStake is the delegation's effective stake as of the bank's
	// current epoch; only delegations with EffectiveStake > 0 are
	// considered active.
	EffectiveStake uint64
}

// VoteAccount is a validator's vote account as seen in the epoch vote
// accounts map, carrying the commission rate the stake meta generator
// reads off its vote state.
type VoteAccount struct {
	VotePubkey Pubkey
	Commission uint8
}

// Pubkey re-exports pdas.Pubkey so callers of this package need not import
// the pdas package solely for the address type.
type Pubkey = pdas.Pubkey

// Bank is the frozen-snapshot view the stake meta generator consumes. Every
// method operates on the bank's single fixed epoch/slot; there is no
// provision for forking or replay.
type Bank interface {
	// IsFrozen reports whether the bank has been frozen (no further state
	// transitions are possible). Generate fails immediately if false.
	IsFrozen() bool

	// Slot returns the bank's slot.
	Slot() uint64

	// Epoch returns the bank's epoch.
	Epoch() uint64

	// Hash returns the bank's hash as its canonical string form.
	Hash() string

	// EpochVoteAccounts returns the vote accounts active for the given
	// epoch, or ok=false if the bank has no data for that epoch.
	EpochVoteAccounts(epoch uint64) (accounts []VoteAccount, ok bool)

	// StakeDelegations returns every stake delegation recorded in the
	// bank's stakes cache, active or not; callers filter by
	// EffectiveStake themselves.
	StakeDelegations() []Delegation

	// GetAccount returns the account at pubkey, or ok=false if absent.
	GetAccount(pubkey Pubkey) (account Account, ok bool)

	// MinimumBalanceForRentExemption returns the minimum lamport balance
	// an account of dataLen bytes must hold to be exempt from rent.
	MinimumBalanceForRentExemption(dataLen int) uint64
}
