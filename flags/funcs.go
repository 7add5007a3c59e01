package flags

import "flag"

// LogLevel returns the value of the -log_level flag, defined as:
//
//	-log_level: the level of logging: debug, info, error, or disabled; default "info"
func LogLevel() string { return _log_level }

// Identity returns the value of the -identity flag, defined as:
//
//	-identity: path to the validator's ed25519 keypair file; default "identity.json"
func Identity() string { return _identity }

// Config returns the value of the -config flag, defined as:
//
//	-config: path to the relayer YAML configuration file; default "config.yaml"
func Config() string { return _config }

// Ledger returns the value of the -ledger flag, defined as:
//
//	-ledger: path to the ledger snapshot the stake meta generator loads; default "ledger"
func Ledger() string { return _ledger }

// Out returns the value of the -out flag, defined as:
//
//	-out: path to write the generated stake meta collection; default "stake-meta.json"
func Out() string { return _out }

// TipPaymentProgram returns the value of the -tip_payment_program flag, defined as:
//
//	-tip_payment_program: base58 address of the tip-payment program; default "unset"
func TipPaymentProgram() string { return _tip_payment_program }

// TipDistributionProgram returns the value of the -tip_distribution_program flag, defined as:
//
//	-tip_distribution_program: base58 address of the tip-distribution program; default "unset"
func TipDistributionProgram() string { return _tip_distribution_program }

// Slot returns the value of the -slot flag, defined as:
//
//	-slot: the target slot to load from the ledger snapshot; default 0
func Slot() int { return _slot }

var all = [...]string{
	"log_level",
	"identity",
	"config",
	"ledger",
	"out",
	"tip_payment_program",
	"tip_distribution_program",
	"slot",
}

// Enable enables the command-line interface for the named flags.
// If no flags are named, it enables the full set.
// Enable panics if the flag name is not recognized.
func Enable(flags ...string) {
	if len(flags) == 0 && len(all) != 0 {
		Enable(all[:]...)
		return
	}
	for _, f := range flags {
		switch f {
		case "log_level":
			flag.StringVar(&_log_level, "log_level", "info", "the level of logging: debug, info, error, or disabled")
		case "identity":
			flag.StringVar(&_identity, "identity", "identity.json", "path to the validator's ed25519 keypair file")
		case "config":
			flag.StringVar(&_config, "config", "config.yaml", "path to the relayer YAML configuration file")
		case "ledger":
			flag.StringVar(&_ledger, "ledger", "ledger", "path to the ledger snapshot the stake meta generator loads")
		case "out":
			flag.StringVar(&_out, "out", "stake-meta.json", "path to write the generated stake meta collection")
		case "tip_payment_program":
			flag.StringVar(&_tip_payment_program, "tip_payment_program", "unset", "base58 address of the tip-payment program")
		case "tip_distribution_program":
			flag.StringVar(&_tip_distribution_program, "tip_distribution_program", "unset", "base58 address of the tip-distribution program")
		case "slot":
			flag.IntVar(&_slot, "slot", 0, "the target slot to load from the ledger snapshot")
		default:
			panic(`flags.Enable: unrecognized flag ` + f)
		}
	}
}
