// Package stakemeta computes, for every validator active in a given epoch,
// the stake delegated to it and the tip-distribution rewards it is owed,
// and assembles the result into a StakeMetaCollection.
package stakemeta

import (
	"sort"

	"github.com/relayerproxy/client/bank"
	"github.com/relayerproxy/client/errors"
	"github.com/relayerproxy/client/log"
	"github.com/relayerproxy/client/stakemeta/pdas"
)

// Delegation is one stake account's delegation to a validator's vote
// account.
type Delegation struct {
	StakeAccount      pdas.Pubkey `json:"stake_account"`
	StakerPubkey      pdas.Pubkey `json:"staker_pubkey"`
	WithdrawerPubkey  pdas.Pubkey `json:"withdrawer_pubkey"`
	LamportsDelegated uint64      `json:"lamports_delegated"`
}

// TipDistributionMeta is the tip-distribution state recorded for a single
// validator.
type TipDistributionMeta struct {
	MerkleRootUploadAuthority pdas.Pubkey `json:"merkle_root_upload_authority"`
	TipDistributionAccount    pdas.Pubkey `json:"tip_distribution_account"`
	// TotalTips is the tip-payment lamports this validator's
	// TipDistributionAccount is owed: its balance in excess of what rent
	// exemption requires it to hold.
	TotalTips uint64 `json:"total_tips"`
	// ValidatorFeeBps is the validator's commission on future tips, read
	// off the TipDistributionAccount at generation time.
	ValidatorFeeBps uint16 `json:"validator_fee_bps"`
}

// StakeMeta is one validator's delegated stake and tip-distribution
// standing for the epoch.
type StakeMeta struct {
	ValidatorVoteAccount pdas.Pubkey          `json:"validator_vote_account"`
	ValidatorNodePubkey  pdas.Pubkey          `json:"validator_node_pubkey"`
	Delegations          []Delegation         `json:"delegations"`
	TotalDelegated       uint64               `json:"total_delegated"`
	Commission           uint8                `json:"commission"`
	TipDistributionMeta  *TipDistributionMeta `json:"maybe_tip_distribution_meta"`
}

// StakeMetaCollection is the full generator output for one epoch/slot.
type StakeMetaCollection struct {
	StakeMetas               []StakeMeta `json:"stake_metas"`
	TipDistributionProgramID pdas.Pubkey `json:"tip_distribution_program_id"`
	BankHash                 string      `json:"bank_hash"`
	Epoch                    uint64      `json:"epoch"`
	Slot                     uint64      `json:"slot"`
}

// Generate computes the StakeMetaCollection for b's current epoch. b must
// already be frozen; tipPaymentProgramID and tipDistributionProgramID
// identify the two on-chain programs whose PDAs this function derives and
// reads.
func Generate(b bank.Bank, tipPaymentProgramID, tipDistributionProgramID pdas.Pubkey) (*StakeMetaCollection, error) {
	const op = "stakemeta.Generate"

	if !b.IsFrozen() {
		return nil, errors.E(op, errors.BankNotFrozen)
	}

	epoch := b.Epoch()
	voteAccounts, ok := b.EpochVoteAccounts(epoch)
	if !ok {
		return nil, errors.E(op, errors.EpochVoteAccountsMissing, errors.Errorf("no vote accounts recorded for epoch %d", epoch))
	}

	delegationsByVoter := groupDelegationsByVoter(b.StakeDelegations())

	tipReceiver, err := tipReceiverFromBank(b, tipPaymentProgramID)
	if err != nil {
		return nil, errors.E(op, err)
	}

	tipAddrs, err := pdas.DeriveTipPaymentAddresses(tipPaymentProgramID)
	if err != nil {
		return nil, errors.E(op, err)
	}
	excessTipLamports, err := excessTipPaymentBalance(b, tipAddrs)
	if err != nil {
		return nil, errors.E(op, err)
	}

	stakeMetas := make([]StakeMeta, 0, len(voteAccounts))
	for _, va := range voteAccounts {
		delegations, ok := delegationsByVoter[va.VotePubkey]
		if !ok || len(delegations) == 0 {
			log.Debug.Printf("stakemeta: skipping vote account %s, no active delegations this epoch", va.VotePubkey)
			continue
		}

		totalDelegated, err := sumLamportsDelegated(delegations)
		if err != nil {
			return nil, errors.E(op, err)
		}

		tdMeta, err := tipDistributionMetaFor(b, tipDistributionProgramID, va.VotePubkey, epoch, excessTipLamports, tipReceiver)
		if err != nil {
			return nil, errors.E(op, err)
		}

		stakeMetas = append(stakeMetas, StakeMeta{
			ValidatorVoteAccount: va.VotePubkey,
			ValidatorNodePubkey:  va.VotePubkey,
			Delegations:          delegations,
			TotalDelegated:       totalDelegated,
			Commission:           va.Commission,
			TipDistributionMeta:  tdMeta,
		})
	}

	sort.Slice(stakeMetas, func(i, j int) bool {
		return stakeMetas[i].ValidatorVoteAccount.String() < stakeMetas[j].ValidatorVoteAccount.String()
	})

	return &StakeMetaCollection{
		StakeMetas:               stakeMetas,
		TipDistributionProgramID: tipDistributionProgramID,
		BankHash:                 b.Hash(),
		Epoch:                    epoch,
		Slot:                     b.Slot(),
	}, nil
}

// groupDelegationsByVoter buckets active (EffectiveStake > 0) delegations by
// the vote account they're delegated to.
func groupDelegationsByVoter(all []bank.Delegation) map[pdas.Pubkey][]Delegation {
	byVoter := make(map[pdas.Pubkey][]Delegation)
	for _, d := range all {
		if d.EffectiveStake == 0 {
			continue
		}
		byVoter[d.VoterPubkey] = append(byVoter[d.VoterPubkey], Delegation{
			StakeAccount:      d.StakeAccount,
			StakerPubkey:      d.StakerPubkey,
			WithdrawerPubkey:  d.WithdrawerPubkey,
			LamportsDelegated: d.LamportsDelegated,
		})
	}
	return byVoter
}

// sumLamportsDelegated totals a validator's delegations, failing fatally on
// overflow rather than wrapping.
func sumLamportsDelegated(delegations []Delegation) (uint64, error) {
	const op = "stakemeta.sumLamportsDelegated"
	var total uint64
	for _, d := range delegations {
		sum := total + d.LamportsDelegated
		if sum < total {
			return 0, errors.E(op, errors.ArithmeticOverflow, errors.Errorf("total_delegated overflowed summing %d delegations", len(delegations)))
		}
		total = sum
	}
	return total, nil
}

// tipReceiverFromBank reads the tip-payment program's Config account off
// the bank and returns its configured tip_receiver.
func tipReceiverFromBank(b bank.Bank, tipPaymentProgramID pdas.Pubkey) (pdas.Pubkey, error) {
	const op = "stakemeta.tipReceiverFromBank"
	addrs, err := pdas.DeriveTipPaymentAddresses(tipPaymentProgramID)
	if err != nil {
		return pdas.Pubkey{}, errors.E(op, err)
	}
	acct, ok := b.GetAccount(addrs.ConfigPDA)
	if !ok {
		return pdas.Pubkey{}, errors.E(op, errors.TipConfigMissing)
	}
	cfg, err := decodeTipPaymentConfig(acct.Data)
	if err != nil {
		return pdas.Pubkey{}, errors.E(op, err)
	}
	return cfg.TipReceiver, nil
}

// excessTipPaymentBalance sums the 8 tip accounts' balances and subtracts
// what rent exemption requires each to hold, failing fatally on underflow
// since that would indicate a program-state inconsistency.
func excessTipPaymentBalance(b bank.Bank, addrs pdas.TipPaymentAddresses) (uint64, error) {
	const op = "stakemeta.excessTipPaymentBalance"
	var totalBalance uint64
	for _, tipPDA := range addrs.TipPDAs {
		acct, ok := b.GetAccount(tipPDA)
		if !ok {
			return 0, errors.E(op, errors.TipAccountMissing, errors.Errorf("tip account %s absent from bank", tipPDA))
		}
		sum := totalBalance + acct.Lamports
		if sum < totalBalance {
			return 0, errors.E(op, errors.ArithmeticOverflow, errors.Str("tip account balance sum overflowed"))
		}
		totalBalance = sum
	}

	rentExemptMinimum := b.MinimumBalanceForRentExemption(0) * uint64(len(addrs.TipPDAs))
	if totalBalance < rentExemptMinimum {
		return 0, errors.E(op, errors.ArithmeticOverflow, errors.Str("tip account balances below aggregate rent-exempt minimum"))
	}
	return totalBalance - rentExemptMinimum, nil
}

// tipDistributionMetaFor derives, looks up and decodes a validator's
// TipDistributionAccount for the epoch. If the account happens to be the
// tip-payment program's current tip_receiver, the tip-payment program's
// excess balance (excessTipLamports, computed once per generation by
// excessTipPaymentBalance) is credited to it, routing leftover tip-account
// lamports to whichever TipDistributionAccount is the receiver of record.
// A validator with no TipDistributionAccount for the epoch gets a nil
// TipDistributionMeta.
func tipDistributionMetaFor(b bank.Bank, tipDistributionProgramID, votePubkey pdas.Pubkey, epoch, excessTipLamports uint64, tipReceiver pdas.Pubkey) (*TipDistributionMeta, error) {
	const op = "stakemeta.tipDistributionMetaFor"
	tdaAddr, _, err := pdas.DeriveTipDistributionAccountAddress(tipDistributionProgramID, votePubkey, epoch)
	if err != nil {
		return nil, errors.E(op, err)
	}

	acct, ok := b.GetAccount(tdaAddr)
	if !ok {
		return nil, nil
	}
	tda, err := decodeTipDistributionAccount(acct.Data)
	if err != nil {
		return nil, errors.E(op, err)
	}
	if tda.ValidatorVoteAccount != votePubkey {
		return nil, errors.E(op, errors.TipDistributionAccountInvalid, errors.Errorf("tda %s vote account %s does not match %s", tdaAddr, tda.ValidatorVoteAccount, votePubkey))
	}

	rentExempt := b.MinimumBalanceForRentExemption(len(acct.Data))
	if acct.Lamports < rentExempt {
		return nil, errors.E(op, errors.ArithmeticOverflow, errors.Errorf("tda %s balance %d below rent-exempt minimum %d", tdaAddr, acct.Lamports, rentExempt))
	}
	totalTips := acct.Lamports - rentExempt
	if tdaAddr == tipReceiver {
		sum := totalTips + excessTipLamports
		if sum < totalTips {
			return nil, errors.E(op, errors.ArithmeticOverflow, errors.Errorf("crediting excess tip balance to %s overflowed total_tips", tdaAddr))
		}
		totalTips = sum
	}

	return &TipDistributionMeta{
		MerkleRootUploadAuthority: tda.MerkleRootUploadAuthority,
		TipDistributionAccount:    tdaAddr,
		TotalTips:                 totalTips,
		ValidatorFeeBps:           tda.ValidatorCommissionBps,
	}, nil
}
