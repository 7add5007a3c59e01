package main

import (
	"encoding/json"
	"os"

	"github.com/relayerproxy/client/bank"
	"github.com/relayerproxy/client/errors"
	"github.com/relayerproxy/client/stakemeta/pdas"
)

// snapshotFile is the on-disk JSON shape this binary reads in place of a
// real ledger snapshot. Loading an actual Solana snapshot is an external
// collaborator this generator treats as opaque; this format exists so the
// generator is runnable end to end against a hand-built or
// test-harness-produced fixture.
type snapshotFile struct {
	Frozen                 bool                       `json:"frozen"`
	Slot                   uint64                     `json:"slot"`
	Epoch                  uint64                     `json:"epoch"`
	Hash                   string                     `json:"hash"`
	RentExemptBaseLamports uint64                     `json:"rent_exempt_base_lamports"`
	RentExemptPerByte      uint64                     `json:"rent_exempt_per_byte_lamports"`
	VoteAccounts           []snapshotVoteAccount      `json:"vote_accounts"`
	Delegations            []snapshotDelegation       `json:"delegations"`
	Accounts               map[string]snapshotAccount `json:"accounts"`
}

type snapshotVoteAccount struct {
	VotePubkey string `json:"vote_pubkey"`
	Commission uint8  `json:"commission"`
}

type snapshotDelegation struct {
	StakeAccount      string `json:"stake_account"`
	StakerPubkey      string `json:"staker_pubkey"`
	WithdrawerPubkey  string `json:"withdrawer_pubkey"`
	VoterPubkey       string `json:"voter_pubkey"`
	LamportsDelegated uint64 `json:"lamports_delegated"`
	EffectiveStake    uint64 `json:"effective_stake"`
}

type snapshotAccount struct {
	Lamports uint64 `json:"lamports"`
	Data     []byte `json:"data"`
}

// snapshotBank implements bank.Bank over a parsed snapshotFile.
type snapshotBank struct {
	snapshotFile
	voteAccounts []bank.VoteAccount
	delegations  []bank.Delegation
	accounts     map[pdas.Pubkey]bank.Account
}

func (b *snapshotBank) IsFrozen() bool { return b.Frozen }
func (b *snapshotBank) Slot() uint64   { return b.snapshotFile.Slot }
func (b *snapshotBank) Epoch() uint64  { return b.snapshotFile.Epoch }
func (b *snapshotBank) Hash() string   { return b.snapshotFile.Hash }

func (b *snapshotBank) EpochVoteAccounts(epoch uint64) ([]bank.VoteAccount, bool) {
	if epoch != b.snapshotFile.Epoch {
		return nil, false
	}
	return b.voteAccounts, true
}

func (b *snapshotBank) StakeDelegations() []bank.Delegation {
	return b.delegations
}

func (b *snapshotBank) GetAccount(pubkey pdas.Pubkey) (bank.Account, bool) {
	a, ok := b.accounts[pubkey]
	return a, ok
}

func (b *snapshotBank) MinimumBalanceForRentExemption(dataLen int) uint64 {
	return b.RentExemptBaseLamports + b.RentExemptPerByte*uint64(dataLen)
}

// loadSnapshotBank is a stakemeta.BankLoader reading the JSON fixture
// format at path. slot must match the snapshot's recorded slot.
func loadSnapshotBank(path string, slot uint64) (bank.Bank, error) {
	const op = "main.loadSnapshotBank"

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.E(op, err)
	}
	var sf snapshotFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, errors.E(op, errors.Errorf("parsing snapshot %q: %v", path, err))
	}

	b := &snapshotBank{snapshotFile: sf, accounts: make(map[pdas.Pubkey]bank.Account)}
	for _, va := range sf.VoteAccounts {
		pk, err := pdas.PubkeyFromBase58(va.VotePubkey)
		if err != nil {
			return nil, errors.E(op, err)
		}
		b.voteAccounts = append(b.voteAccounts, bank.VoteAccount{VotePubkey: pk, Commission: va.Commission})
	}
	for _, d := range sf.Delegations {
		stakeAccount, err := pdas.PubkeyFromBase58(d.StakeAccount)
		if err != nil {
			return nil, errors.E(op, err)
		}
		staker, err := pdas.PubkeyFromBase58(d.StakerPubkey)
		if err != nil {
			return nil, errors.E(op, err)
		}
		withdrawer, err := pdas.PubkeyFromBase58(d.WithdrawerPubkey)
		if err != nil {
			return nil, errors.E(op, err)
		}
		voter, err := pdas.PubkeyFromBase58(d.VoterPubkey)
		if err != nil {
			return nil, errors.E(op, err)
		}
		b.delegations = append(b.delegations, bank.Delegation{
			StakeAccount:      stakeAccount,
			StakerPubkey:      staker,
			WithdrawerPubkey:  withdrawer,
			VoterPubkey:       voter,
			LamportsDelegated: d.LamportsDelegated,
			EffectiveStake:    d.EffectiveStake,
		})
	}
	for addr, acct := range sf.Accounts {
		pk, err := pdas.PubkeyFromBase58(addr)
		if err != nil {
			return nil, errors.E(op, err)
		}
		b.accounts[pk] = bank.Account{Lamports: acct.Lamports, Data: acct.Data}
	}

	return b, nil
}
