package relayer

import (
	"context"
	"time"

	"github.com/relayerproxy/client/errors"
	"github.com/relayerproxy/client/identity"
	"github.com/relayerproxy/client/metrics"
	"github.com/relayerproxy/client/relayerpb"
)

// metricsTickInterval is how often the consumer reports stats, checks for
// an identity or config change, and considers refreshing auth tokens.
const metricsTickInterval = 1 * time.Second

// defaultRefreshWithin bounds how soon before expiry an access token is
// proactively refreshed: metricsTickInterval * 3 / 2. Duration arithmetic is
// in nanoseconds, so this is 1.5s rather than the 1s that whole-second
// arithmetic would give; StreamConsumer.RefreshWithin overrides it.
const defaultRefreshWithin = metricsTickInterval * 3 / 2

// streamMsg is either a decoded message from the relayer or the error that
// ended the stream, fed to the select loop by recvLoop.
type streamMsg struct {
	resp *relayerpb.SubscribePacketsResponse
	err  error
}

// StreamConsumer runs the three-way select loop over a single open
// packet-subscription stream: stream messages, heartbeat liveness checks,
// and the combined metrics-report/identity-check/config-check/auth-refresh
// tick. It returns when the stream ends, the heartbeat expires, the
// identity or config changes, or the context is cancelled. It does not read
// ConnectionSupervisor.Exit; a set exit flag takes effect only once the
// session has ended.
type StreamConsumer struct {
	Stream   relayerpb.Relayer_SubscribePacketsClient
	Auth     relayerpb.AuthServiceClient
	Identity *identity.Identity

	// ClusterIdentity, if set, is compared against Identity on every
	// metrics tick; a mismatch means the validator's identity has
	// rotated since this session authenticated, and the session ends
	// with IdentityChanged. Nil disables the check.
	ClusterIdentity *IdentityWatch

	Router        *Router
	Heartbeats    chan<- HeartbeatEvent
	Config        *ConfigWatch
	RefreshWithin time.Duration

	// CachedHeartbeat is the socket pair reported by GetTpuConfigs at
	// session start; it is re-sent to Heartbeats on every heartbeat
	// message, since it is cached once per session rather than
	// re-derived on each tick.
	CachedHeartbeat HeartbeatEvent

	tokens *tokenCell
}

// Run executes the select loop until ctx is cancelled or an unrecoverable
// condition is detected, returning the error that ended the session (nil
// only if ctx was cancelled deliberately).
func (c *StreamConsumer) Run(ctx context.Context, localConfig Config) error {
	const op = "relayer.StreamConsumer.Run"
	refreshWithin := c.RefreshWithin
	if refreshWithin <= 0 {
		refreshWithin = defaultRefreshWithin
	}

	msgs := make(chan streamMsg, 1)
	go recvLoop(c.Stream, msgs)

	heartbeatTicker := time.NewTicker(localConfig.ExpectedHeartbeatInterval)
	defer heartbeatTicker.Stop()
	metricsTicker := time.NewTicker(metricsTickInterval)
	defer metricsTicker.Stop()

	gate := newHeartbeatGate(time.Now())
	stats := Stats{}

	for {
		select {
		case <-ctx.Done():
			return nil

		case m := <-msgs:
			if m.err != nil {
				return errors.E(op, errors.GrpcStreamDisconnected, m.err)
			}
			if err := c.handle(m.resp, localConfig.TrustPackets, gate, &stats); err != nil {
				return errors.E(op, err)
			}

		case <-heartbeatTicker.C:
			if gate.expired(time.Now(), localConfig.OldestAllowedHeartbeat) {
				return errors.E(op, errors.HeartbeatExpired)
			}

		case <-metricsTicker.C:
			stats = stats.Report(metrics.Emit)

			if c.ClusterIdentity != nil && c.ClusterIdentity.Changed(c.Identity) {
				return errors.E(op, errors.IdentityChanged)
			}

			if c.Config != nil && c.Config.Changed(localConfig) {
				return errors.E(op, errors.ConfigChanged)
			}

			updated, refreshed, err := maybeRefreshAuthTokens(ctx, c.Auth, c.Identity, c.tokens.get(), refreshWithin, time.Now())
			if err != nil {
				return errors.E(op, err)
			}
			if refreshed {
				c.tokens.set(updated)
				metrics.Emit("relayer_stage-refresh_access_token", map[string]interface{}{"count": 1})
			}
		}
	}
}

// handle dispatches a single decoded stream message.
func (c *StreamConsumer) handle(resp *relayerpb.SubscribePacketsResponse, trustPackets bool, gate *heartbeatGate, stats *Stats) error {
	const op = "relayer.StreamConsumer.handle"
	switch {
	case resp == nil:
		stats.NumEmptyMessages++
		return nil

	case resp.Batch != nil:
		if len(resp.Batch.Packets) == 0 {
			stats.NumEmptyMessages++
			return nil
		}
		raw := make([][]byte, len(resp.Batch.Packets))
		for i, p := range resp.Batch.Packets {
			raw[i] = p.Data
		}
		stats.NumPackets += uint64(len(raw))
		if err := c.Router.Route(raw, trustPackets); err != nil {
			return errors.E(op, err)
		}
		return nil

	case resp.Heartbeat != nil:
		stats.NumHeartbeats++
		gate.touch(time.Now())
		select {
		case c.Heartbeats <- c.CachedHeartbeat:
			return nil
		default:
			return errors.E(op, errors.HeartbeatChannelError, errors.Str("heartbeat channel is full"))
		}

	default:
		stats.NumEmptyMessages++
		return nil
	}
}

// recvLoop pumps Stream.Recv() into msgs until it errors, so the blocking
// Recv call can participate in the select loop above.
func recvLoop(stream relayerpb.Relayer_SubscribePacketsClient, msgs chan<- streamMsg) {
	for {
		resp, err := stream.Recv()
		msgs <- streamMsg{resp: resp, err: err}
		if err != nil {
			return
		}
	}
}
