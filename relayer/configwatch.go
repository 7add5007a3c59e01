package relayer

import "sync"

// ConfigWatch is a mutex-guarded cell holding the most recently published
// Config. It is written by whatever surface owns configuration (an admin
// RPC, a file watcher) and read by the running session so a change takes
// effect without a restart. The pattern mirrors the guarded tokenCell used
// for tokens: the whole value is replaced atomically, never mutated
// in place, so readers never observe a torn Config.
type ConfigWatch struct {
	mu      sync.Mutex
	current Config
}

// NewConfigWatch creates a watch seeded with the given initial config.
func NewConfigWatch(initial Config) *ConfigWatch {
	return &ConfigWatch{current: initial}
}

// Get returns the current config.
func (w *ConfigWatch) Get() Config {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Set replaces the current config.
func (w *ConfigWatch) Set(c Config) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.current = c
}

// Changed reports whether the current config differs from want.
func (w *ConfigWatch) Changed(want Config) bool {
	return w.Get() != want
}
