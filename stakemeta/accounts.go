package stakemeta

import (
	"encoding/binary"

	"github.com/relayerproxy/client/errors"
	"github.com/relayerproxy/client/stakemeta/pdas"
)

// accountDiscriminatorLen is the 8-byte Anchor account discriminator that
// precedes every account's field data; this generator only ever reads
// fields after it.
const accountDiscriminatorLen = 8

// tipPaymentConfigData is the subset of the tip-payment program's Config
// account this generator reads: the currently configured tip_receiver, the
// account an on-chain admin instruction can redirect tips to.
type tipPaymentConfigData struct {
	TipReceiver pdas.Pubkey
}

// decodeTipPaymentConfig parses the tip_receiver field out of a tip-payment
// Config account.
func decodeTipPaymentConfig(data []byte) (tipPaymentConfigData, error) {
	const op = "stakemeta.decodeTipPaymentConfig"
	const want = accountDiscriminatorLen + 32
	if len(data) < want {
		return tipPaymentConfigData{}, errors.E(op, errors.TipConfigMissing, errors.Errorf("config account data is %d bytes, want at least %d", len(data), want))
	}
	var cfg tipPaymentConfigData
	copy(cfg.TipReceiver[:], data[accountDiscriminatorLen:accountDiscriminatorLen+32])
	return cfg, nil
}

// tipDistributionAccountData is the subset of a TipDistributionAccount's
// fields this generator reads, in on-chain field order (skipping the
// variable-length merkle_root, which carries no information this generator
// needs).
type tipDistributionAccountData struct {
	ValidatorVoteAccount      pdas.Pubkey
	MerkleRootUploadAuthority pdas.Pubkey
	ValidatorCommissionBps    uint16
}

const (
	tdaVoteAccountOffset   = accountDiscriminatorLen
	tdaUploadAuthOffset    = tdaVoteAccountOffset + 32
	tdaCommissionBpsOffset = tdaUploadAuthOffset + 32
	tdaMinLen              = tdaCommissionBpsOffset + 2
)

// decodeTipDistributionAccount parses a TipDistributionAccount. It
// deliberately does not decode merkle_root, epoch_created_at or bump, none
// of which feed into a StakeMeta.
func decodeTipDistributionAccount(data []byte) (tipDistributionAccountData, error) {
	const op = "stakemeta.decodeTipDistributionAccount"
	if len(data) < tdaMinLen {
		return tipDistributionAccountData{}, errors.E(op, errors.TipDistributionAccountInvalid, errors.Errorf("tip distribution account data is %d bytes, want at least %d", len(data), tdaMinLen))
	}
	var tda tipDistributionAccountData
	copy(tda.ValidatorVoteAccount[:], data[tdaVoteAccountOffset:tdaVoteAccountOffset+32])
	copy(tda.MerkleRootUploadAuthority[:], data[tdaUploadAuthOffset:tdaUploadAuthOffset+32])
	tda.ValidatorCommissionBps = binary.LittleEndian.Uint16(data[tdaCommissionBpsOffset : tdaCommissionBpsOffset+2])
	return tda, nil
}

// EncodeTipDistributionAccountForTest serializes a TipDistributionAccount
// the same way a test fixture's fake bank would store it. It is exported
// for use by other packages' tests that need to seed a fake Bank.
func EncodeTipDistributionAccountForTest(vote, uploadAuthority pdas.Pubkey, commissionBps uint16) []byte {
	data := make([]byte, tdaMinLen)
	copy(data[tdaVoteAccountOffset:], vote[:])
	copy(data[tdaUploadAuthOffset:], uploadAuthority[:])
	binary.LittleEndian.PutUint16(data[tdaCommissionBpsOffset:], commissionBps)
	return data
}

// EncodeTipPaymentConfigForTest serializes a tip-payment Config account
// holding only the tip_receiver field this generator reads.
func EncodeTipPaymentConfigForTest(tipReceiver pdas.Pubkey) []byte {
	data := make([]byte, accountDiscriminatorLen+32)
	copy(data[accountDiscriminatorLen:], tipReceiver[:])
	return data
}
