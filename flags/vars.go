// Package flags provides a standard set of command-line flags that may be
// individually enabled. To use the package, call flags.Enable with a
// comma-separated list of flag names to have available on the command
// line. The empty list enables all flags.
// Call Enable before calling flag.Parse:
//
//	flags.Enable("log_level", "config")
//	flag.Parse()
//
// Flag values are retrieved by calling the function with the camel-cased
// name:
//
//	log.SetLevel(flags.LogLevel())
package flags

//go:generate go run gen.go

// To declare a flag for the package, give its full variable declaration,
// including the type, one per self-contained line, in the style of those
// listed below. The name of the variable should be all lower case,
// beginning with an underscore. Inner underscores are promoted to camel
// case: _foo_bar becomes the flag foo_bar and is available through the
// public function FooBar.
//
// Run "go generate" to recreate funcs.go, the file that provides the
// public interface.

var _log_level string = "info" // the level of logging: debug, info, error, or disabled

var _identity string = "identity.json" // path to the validator's ed25519 keypair file

var _config string = "config.yaml" // path to the relayer YAML configuration file

var _ledger string = "ledger" // path to the ledger snapshot the stake meta generator loads

var _out string = "stake-meta.json" // path to write the generated stake meta collection

var _tip_payment_program string = "unset" // base58 address of the tip-payment program

var _tip_distribution_program string = "unset" // base58 address of the tip-distribution program

var _slot int = 0 // the target slot to load from the ledger snapshot
