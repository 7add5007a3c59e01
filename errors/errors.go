// Package errors defines the error handling used throughout the relayer
// proxy client.
package errors

import (
	"bytes"
	"fmt"
	"runtime"
	"strings"

	"github.com/relayerproxy/client/log"
)

// Error is the type that implements the error interface.
// It contains a number of fields, each of different type.
// An Error value may leave some values unset.
type Error struct {
	// Op is the operation being performed, usually the name of the method
	// being invoked (Connect, Subscribe, Refresh, etc.).
	Op string
	// Kind is the class of error, such as an expired heartbeat or a
	// denied auth attempt, or Other if its class is unknown or irrelevant.
	Kind Kind
	// The underlying error that triggered this one, if any.
	Err error

	stack
}

var zeroErr Error

// Separator is the string used to separate nested errors.
var Separator = ":\n\t"

// Kind defines the kind of error this is, used by the connection
// supervisor and stream consumer to decide whether to back off, log at
// warning level only, or treat the failure as fatal for the session.
type Kind uint8

// Kinds of errors the relayer proxy client can produce.
const (
	Other                    Kind = iota // Unclassified error.
	InvalidConfig                        // RelayerConfig failed validation.
	AuthPermissionDenied                 // Auth service rejected the challenge.
	AuthTimeout                          // Auth RPC did not complete in time.
	AuthConnectionError                  // Could not dial the auth service.
	RelayerConnectionTimeout             // Could not dial the relayer backend in time.
	MethodTimeout                        // A unary RPC exceeded its deadline.
	MissingTPUSocket                     // GetTpuConfigs omitted a required socket.
	GrpcStreamDisconnected               // The packet stream ended unexpectedly.
	HeartbeatExpired                     // No heartbeat arrived within the allowed window.
	HeartbeatChannelError                // The heartbeat consumer channel rejected a send.
	PacketForwardError                   // The packet consumer channel rejected a send.
	IdentityChanged                      // The validator's identity no longer matches the session.
	ConfigChanged                        // RelayerConfig changed underneath an active session.
	TipConfigMissing                     // The tip-payment config account is absent or malformed.
	SnapshotSlotNotFound                 // The requested slot is absent from the bank.
	BankNotFrozen                        // StakeMetaGenerator was handed a bank that is not frozen.
	EpochVoteAccountsMissing             // The bank has no vote accounts recorded for its epoch.
	TipAccountMissing                    // One of the 8 tip-payment PDAs is absent from the bank.
	TipDistributionAccountInvalid        // A TipDistributionAccount's data could not be parsed.
	ArithmeticOverflow                   // A lamport computation over/underflowed; a program-state bug.
)

func (k Kind) String() string {
	switch k {
	case Other:
		return "unclassified error"
	case InvalidConfig:
		return "invalid relayer config"
	case AuthPermissionDenied:
		return "auth permission denied"
	case AuthTimeout:
		return "auth request timed out"
	case AuthConnectionError:
		return "auth connection error"
	case RelayerConnectionTimeout:
		return "relayer connection timed out"
	case MethodTimeout:
		return "method timed out"
	case MissingTPUSocket:
		return "missing tpu socket"
	case GrpcStreamDisconnected:
		return "grpc stream disconnected"
	case HeartbeatExpired:
		return "heartbeat expired"
	case HeartbeatChannelError:
		return "heartbeat channel error"
	case PacketForwardError:
		return "packet forward error"
	case IdentityChanged:
		return "identity changed"
	case ConfigChanged:
		return "config changed"
	case TipConfigMissing:
		return "tip config account missing"
	case SnapshotSlotNotFound:
		return "snapshot slot not found"
	case BankNotFrozen:
		return "bank is not frozen"
	case EpochVoteAccountsMissing:
		return "epoch vote accounts missing"
	case TipAccountMissing:
		return "tip account missing"
	case TipDistributionAccountInvalid:
		return "tip distribution account invalid"
	case ArithmeticOverflow:
		return "arithmetic overflow"
	}
	return "unknown error kind"
}

// E builds an error value from its arguments.
// The type of each argument determines its meaning.
// If more than one argument of a given type is presented,
// only the last one is recorded.
//
// The types are:
//
//	string
//		The operation being performed, usually the method being invoked.
//	errors.Kind
//		The class of error, such as a permission failure.
//	error
//		The underlying error that triggered this one.
//
// If Kind is not specified or Other, we set it to the Kind of
// the underlying error.
func E(args ...interface{}) error {
	if len(args) == 0 {
		return nil
	}
	e := &Error{}
	e.populateStack()
	for _, arg := range args {
		switch arg := arg.(type) {
		case string:
			e.Op = arg
		case Kind:
			e.Kind = arg
		case *Error:
			// Make a copy
			cp := *arg
			e.Err = &cp
		case error:
			e.Err = arg
		default:
			_, file, line, _ := runtime.Caller(1)
			log.Error.Printf("errors.E: bad call from %s:%d: %v", file, line, args)
			return Errorf("unknown type %T, value %v in error call", arg, arg)
		}
	}
	prev, ok := e.Err.(*Error)
	if !ok {
		return e
	}
	// The previous error was also one of ours. Suppress duplication so
	// the message won't contain the same kind twice.
	if prev.Kind == e.Kind {
		prev.Kind = Other
	}
	if e.Kind == Other {
		e.Kind = prev.Kind
		prev.Kind = Other
	}
	return e
}

// Op returns the operation component of an *Error, or "" if err is not one
// of our Error values or has no Op set.
func Op(err error) string {
	e, ok := err.(*Error)
	if !ok {
		return ""
	}
	if e.Op != "" {
		return e.Op
	}
	return Op(e.Err)
}

// KindOf returns the Kind of err, or Other if it is not, or does not wrap,
// one of our Error values.
func KindOf(err error) Kind {
	e, ok := err.(*Error)
	if !ok {
		return Other
	}
	if e.Kind != Other {
		return e.Kind
	}
	return KindOf(e.Err)
}

// Is reports whether err is, or wraps, an *Error of the given Kind.
func Is(kind Kind, err error) bool {
	return KindOf(err) == kind
}

// pad appends str to the buffer if the buffer already has some data.
func pad(b *bytes.Buffer, str string) {
	if b.Len() == 0 {
		return
	}
	b.WriteString(str)
}

func (e *Error) Error() string {
	b := new(bytes.Buffer)
	if e.Op != "" {
		b.WriteString(e.Op)
	}
	if e.Kind != 0 {
		pad(b, ": ")
		b.WriteString(e.Kind.String())
	}
	e.printStack(b)
	if e.Err != nil {
		if prevErr, ok := e.Err.(*Error); ok {
			if *prevErr != zeroErr {
				pad(b, Separator)
				b.WriteString(e.Err.Error())
			}
		} else {
			pad(b, ": ")
			b.WriteString(e.Err.Error())
		}
	}
	if b.Len() == 0 {
		return "no error"
	}
	return b.String()
}

// Str returns an error that formats as the given text. It is intended to
// be used as the error-typed argument to the E function.
func Str(text string) error {
	return &errorString{text}
}

// errorString is a trivial implementation of error.
type errorString struct {
	s string
}

func (e *errorString) Error() string {
	return e.s
}

// Errorf is equivalent to fmt.Errorf, but allows clients to import only
// this package for all error handling.
func Errorf(format string, args ...interface{}) error {
	return &errorString{fmt.Sprintf(format, args...)}
}

// Match reports whether err1 is equivalent to err2, for testing purposes.
// Fields of err2 that are zero values are not compared, so a test can
// check only the fields it cares about.
func Match(err1, err2 error) bool {
	e1, ok := err1.(*Error)
	if !ok {
		return err1 == err2 || (err1 != nil && err2 != nil && err1.Error() == err2.Error())
	}
	e2, ok := err2.(*Error)
	if !ok {
		return false
	}
	if e2.Op != "" && e2.Op != e1.Op {
		return false
	}
	if e2.Kind != Other && e2.Kind != e1.Kind {
		return false
	}
	if e2.Err != nil {
		if strings.Contains(e1.Error(), e2.Err.Error()) {
			return true
		}
		return Match(e1.Err, e2.Err)
	}
	return true
}
