// Command stake-meta-generator loads a frozen ledger snapshot, computes
// every active validator's delegated stake and tip-distribution standing
// for the snapshot's epoch, and writes the result as a JSON
// StakeMetaCollection.
package main

import (
	"flag"

	"github.com/relayerproxy/client/flags"
	"github.com/relayerproxy/client/log"
	"github.com/relayerproxy/client/stakemeta"
	"github.com/relayerproxy/client/stakemeta/pdas"
)

func main() {
	flags.Enable("log_level", "ledger", "out", "tip_payment_program", "tip_distribution_program", "slot")
	flag.Parse()

	if err := log.SetLevel(flags.LogLevel()); err != nil {
		log.Fatalf("stake-meta-generator: %v", err)
	}

	tipPaymentProgramID, err := pdas.PubkeyFromBase58(flags.TipPaymentProgram())
	if err != nil {
		log.Fatalf("stake-meta-generator: -tip_payment_program: %v", err)
	}
	tipDistributionProgramID, err := pdas.PubkeyFromBase58(flags.TipDistributionProgram())
	if err != nil {
		log.Fatalf("stake-meta-generator: -tip_distribution_program: %v", err)
	}

	cfg := stakemeta.RunConfig{
		LedgerPath:               flags.Ledger(),
		Slot:                     uint64(flags.Slot()),
		TipPaymentProgramID:      tipPaymentProgramID,
		TipDistributionProgramID: tipDistributionProgramID,
		OutPath:                  flags.Out(),
	}
	if err := stakemeta.Run(loadSnapshotBank, cfg); err != nil {
		log.Fatalf("stake-meta-generator: %v", err)
	}
}
