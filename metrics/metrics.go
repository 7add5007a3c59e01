// Package metrics implements named-datapoint emission for the relayer
// proxy client and the stake meta generator, the Go equivalent of the
// datapoint_info!/datapoint_warn! macros the system's telemetry is built
// around. Unlike a span/trace metrics system, a datapoint here is a single
// named event with a flat set of fields, emitted and forgotten.
package metrics

import (
	"fmt"
	"sort"
	"sync"

	"github.com/relayerproxy/client/log"
)

// Emitter receives datapoints. Implementations must be safe for concurrent
// use, since ConnectionSupervisor and StreamConsumer may emit from
// different goroutines.
type Emitter interface {
	Emit(name string, fields map[string]interface{})
}

// Register installs e as the active emitter. Any number of calls may be
// made; the most recent registration wins. The zero value (no
// registration) uses a logging emitter.
func Register(e Emitter) {
	mu.Lock()
	defer mu.Unlock()
	active = e
}

// Emit sends a named datapoint to the registered Emitter.
func Emit(name string, fields map[string]interface{}) {
	mu.Lock()
	e := active
	mu.Unlock()
	e.Emit(name, fields)
}

// Warn emits a datapoint and additionally logs it through log.Error.
func Warn(name string, fields map[string]interface{}) {
	log.Error.Printf("%s %s", name, formatFields(fields))
	Emit(name, fields)
}

var (
	mu     sync.Mutex
	active Emitter = logEmitter{}
)

// logEmitter is the default Emitter: it writes every datapoint through the
// log package at Debug level, so metrics are visible even with no
// telemetry backend registered.
type logEmitter struct{}

func (logEmitter) Emit(name string, fields map[string]interface{}) {
	log.Debug.Printf("%s %s", name, formatFields(fields))
}

func formatFields(fields map[string]interface{}) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	s := ""
	for _, k := range keys {
		s += fmt.Sprintf(" %s=%v", k, fields[k])
	}
	return s
}
