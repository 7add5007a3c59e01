// Package relayer implements the relayer proxy client: it authenticates to
// a relayer's auth service, opens a bidirectional packet-subscription
// stream to the relayer backend, demultiplexes stream messages, heartbeat
// liveness checks, and periodic auth refreshes, and degrades gracefully
// with bounded backoff when the connection is lost.
package relayer

import (
	"time"

	"github.com/relayerproxy/client/errors"
)

// Config describes where to find a relayer and how strictly to trust it.
// It is comparable with ==, so a ConfigWatch can detect changes by simple
// equality.
type Config struct {
	AuthServiceAddr           string
	BackendAddr               string
	ExpectedHeartbeatInterval time.Duration
	OldestAllowedHeartbeat    time.Duration
	// TrustPackets routes packets to the verified channel instead of the
	// ordinary one when true.
	TrustPackets bool
}

// Validate reports whether c is usable to open a session: addresses must
// be set and both durations must be positive.
func (c Config) Validate() error {
	const op = "relayer.Config.Validate"
	if c.AuthServiceAddr == "" {
		return errors.E(op, errors.InvalidConfig, errors.Str("auth_service_addr is empty"))
	}
	if c.BackendAddr == "" {
		return errors.E(op, errors.InvalidConfig, errors.Str("backend_addr is empty"))
	}
	if c.ExpectedHeartbeatInterval <= 0 {
		return errors.E(op, errors.InvalidConfig, errors.Str("expected_heartbeat_interval must be positive"))
	}
	if c.OldestAllowedHeartbeat <= 0 {
		return errors.E(op, errors.InvalidConfig, errors.Str("oldest_allowed_heartbeat must be positive"))
	}
	return nil
}
