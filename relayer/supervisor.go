package relayer

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/relayerproxy/client/errors"
	"github.com/relayerproxy/client/identity"
	"github.com/relayerproxy/client/log"
	"github.com/relayerproxy/client/metrics"
	"github.com/relayerproxy/client/relayerpb"
)

// ConnectionBackoff is how long ConnectionSupervisor waits after a failed
// session before retrying.
const ConnectionBackoff = 5 * time.Second

// ConnectionSupervisor owns the outer reconnect loop: it validates the
// current Config, dials the auth service and the relayer backend,
// authenticates, opens the packet stream, and hands off to a
// StreamConsumer until the session ends, then backs off and tries again.
type ConnectionSupervisor struct {
	Config   *ConfigWatch
	Identity *identity.Identity

	// ClusterIdentity, if set, is threaded through to every session's
	// StreamConsumer so a validator identity rotation is detected even
	// though Identity itself is fixed for the supervisor's lifetime.
	ClusterIdentity *IdentityWatch

	Packets    chan<- PacketBatch
	Verified   chan<- VerifiedPacketBatch
	Heartbeats chan<- HeartbeatEvent

	// Exit, when set to true, stops Run after the current session ends.
	Exit *atomic.Bool

	errorCount uint64
}

// Run loops until Exit is set, running one session at a time and backing
// off ConnectionBackoff between attempts.
func (s *ConnectionSupervisor) Run(ctx context.Context) {
	if s.Exit == nil {
		s.Exit = &atomic.Bool{}
	}
	for !s.Exit.Load() {
		cfg := s.Config.Get()
		if err := cfg.Validate(); err != nil {
			log.Error.Printf("relayer_stage: invalid config, backing off: %v", err)
			sleepOrExit(ctx, ConnectionBackoff)
			continue
		}

		err := s.connectAndConsume(ctx, cfg)
		if err == nil || ctxDone(ctx) {
			continue
		}

		if errors.Is(errors.AuthPermissionDenied, err) {
			log.Error.Printf("relayer_stage: auth permission denied: %v", err)
		} else {
			s.errorCount++
			metrics.Warn("relayer_stage-proxy_error", map[string]interface{}{
				"count": s.errorCount,
				"error": err.Error(),
			})
		}
		sleepOrExit(ctx, ConnectionBackoff)
	}
}

// connectAndConsume performs one full session: dial, authenticate,
// subscribe, and run the consumer loop until it returns.
func (s *ConnectionSupervisor) connectAndConsume(ctx context.Context, cfg Config) error {
	const op = "relayer.ConnectionSupervisor.connectAndConsume"

	authConn, err := dial(ctx, cfg.AuthServiceAddr, false)
	if err != nil {
		return errors.E(op, errors.AuthConnectionError, err)
	}
	defer authConn.Close()
	authClient := relayerpb.NewAuthServiceClient(authConn)

	tokens, err := generateAuthTokens(ctx, authClient, s.Identity)
	if err != nil {
		return errors.E(op, err)
	}
	cell := &tokenCell{}
	cell.set(tokens)

	backendCtx, cancel := context.WithTimeout(ctx, connectionTimeout)
	backendConn, err := grpcDialWithAuth(backendCtx, cfg.BackendAddr, cell)
	cancel()
	if err != nil {
		return errors.E(op, errors.RelayerConnectionTimeout, err)
	}
	defer backendConn.Close()
	relayerClient := relayerpb.NewRelayerClient(backendConn)

	tpuCtx, cancel := context.WithTimeout(ctx, connectionTimeout)
	tpuConfigs, err := relayerClient.GetTpuConfigs(tpuCtx, &relayerpb.GetTpuConfigsRequest{})
	cancel()
	if err != nil {
		return errors.E(op, errors.MethodTimeout, err)
	}
	tpu, err := parseTPUSocket("tpu", tpuConfigs.TPU)
	if err != nil {
		return errors.E(op, err)
	}
	tpuFwd, err := parseTPUSocket("tpu_fwd", tpuConfigs.TPUForward)
	if err != nil {
		return errors.E(op, err)
	}

	stream, err := relayerClient.SubscribePackets(ctx, &relayerpb.SubscribePacketsRequest{})
	if err != nil {
		return errors.E(op, errors.RelayerConnectionTimeout, err)
	}

	consumer := &StreamConsumer{
		Stream:          stream,
		Auth:            authClient,
		Identity:        s.Identity,
		ClusterIdentity: s.ClusterIdentity,
		Router:          &Router{Packets: s.Packets, VerifiedPackets: s.Verified},
		Heartbeats:      s.Heartbeats,
		Config:          s.Config,
		CachedHeartbeat: HeartbeatEvent{TPU: tpu, TPUForward: tpuFwd},
		tokens:          cell,
	}
	return consumer.Run(ctx, cfg)
}

func ctxDone(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

func sleepOrExit(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
