package stakemeta

import (
	"encoding/json"
	"os"

	"github.com/relayerproxy/client/bank"
	"github.com/relayerproxy/client/errors"
	"github.com/relayerproxy/client/log"
	"github.com/relayerproxy/client/stakemeta/pdas"
)

// BankLoader loads a frozen bank at the given ledger path for the given
// slot. Loading an actual ledger snapshot from disk is an external
// collaborator this generator does not implement; a real deployment
// supplies one, and tests supply a fake.
type BankLoader func(ledgerPath string, slot uint64) (bank.Bank, error)

// RunConfig names the inputs the generator's command-line entry point
// needs to load a bank and produce a StakeMetaCollection file.
type RunConfig struct {
	LedgerPath               string
	Slot                     uint64
	TipPaymentProgramID      pdas.Pubkey
	TipDistributionProgramID pdas.Pubkey
	OutPath                  string
}

// Run loads the bank named by cfg, generates its StakeMetaCollection, and
// writes it as pretty-printed JSON to cfg.OutPath.
func Run(load BankLoader, cfg RunConfig) error {
	const op = "stakemeta.Run"

	b, err := load(cfg.LedgerPath, cfg.Slot)
	if err != nil {
		return errors.E(op, err)
	}
	if b.Slot() != cfg.Slot {
		return errors.E(op, errors.Errorf("working bank slot %d does not match requested slot %d", b.Slot(), cfg.Slot))
	}

	collection, err := Generate(b, cfg.TipPaymentProgramID, cfg.TipDistributionProgramID)
	if err != nil {
		return errors.E(op, err)
	}

	out, err := json.MarshalIndent(collection, "", "  ")
	if err != nil {
		return errors.E(op, err)
	}
	if err := os.WriteFile(cfg.OutPath, out, 0644); err != nil {
		return errors.E(op, err)
	}

	log.Printf("stakemeta: wrote %d stake metas for epoch %d, slot %d to %s", len(collection.StakeMetas), collection.Epoch, collection.Slot, cfg.OutPath)
	return nil
}
